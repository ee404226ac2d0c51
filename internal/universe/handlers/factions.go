package handlers

import (
	"log/slog"
	"net/http"

	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
	"freelancer-server/internal/universe"
)

type FactionsHandler struct {
	service *universe.Service
}

func NewFactionsHandler(service *universe.Service) *FactionsHandler {
	return &FactionsHandler{service: service}
}

func (h *FactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_factions")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	factions, err := h.service.ListFactions(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, struct {
		Success  bool               `json:"success"`
		Count    int                `json:"count"`
		Factions []universe.Faction `json:"factions"`
	}{
		Success:  true,
		Count:    len(factions),
		Factions: factions,
	})
}
