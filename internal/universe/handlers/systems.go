package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
	"freelancer-server/internal/universe"
)

type SystemsHandler struct {
	service *universe.Service
}

func NewSystemsHandler(service *universe.Service) *SystemsHandler {
	return &SystemsHandler{service: service}
}

type systemListResponse struct {
	Success bool                  `json:"success"`
	Count   int                   `json:"count"`
	Systems []universe.StarSystem `json:"systems"`
}

func (h *SystemsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_star_systems")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	typeFilter := r.URL.Query().Get("type")
	showAll := r.URL.Query().Get("show_all") == "true"

	systems, err := h.service.ListSystems(ctx, typeFilter, showAll)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, systemListResponse{
		Success: true,
		Count:   len(systems),
		Systems: systems,
	})
}

func (h *SystemsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_star_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	systemIDStr := r.PathValue("id")
	if systemIDStr == "" {
		response.Error(w, r, logger, errors.Validation("system ID is required"))
		return
	}

	systemID, err := strconv.Atoi(systemIDStr)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid system ID format", err))
		return
	}

	detail, err := h.service.GetSystemDetail(ctx, systemID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, struct {
		Success bool                   `json:"success"`
		System  *universe.SystemDetail `json:"system"`
	}{
		Success: true,
		System:  detail,
	})
}
