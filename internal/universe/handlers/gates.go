package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
	"freelancer-server/internal/universe"
)

type GatesHandler struct {
	service *universe.Service
}

func NewGatesHandler(service *universe.Service) *GatesHandler {
	return &GatesHandler{service: service}
}

type gateListResponse struct {
	Success   bool                `json:"success"`
	Count     int                 `json:"count"`
	JumpGates []universe.JumpGate `json:"jumpgates"`
}

func (h *GatesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_jump_gates")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	showAll := r.URL.Query().Get("show_all") == "true"

	var systemID *int
	if raw := r.URL.Query().Get("system_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid system ID format", err))
			return
		}
		systemID = &id
	}

	gates, err := h.service.ListGates(ctx, systemID, showAll)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, gateListResponse{
		Success:   true,
		Count:     len(gates),
		JumpGates: gates,
	})
}
