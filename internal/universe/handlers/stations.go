package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
	"freelancer-server/internal/universe"
)

type StationsHandler struct {
	service *universe.Service
}

func NewStationsHandler(service *universe.Service) *StationsHandler {
	return &StationsHandler{service: service}
}

type stationListResponse struct {
	Success  bool                    `json:"success"`
	Count    int                     `json:"count"`
	Stations []universe.SpaceStation `json:"stations"`
}

func (h *StationsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_space_stations")

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

	stations, err := h.service.ListStations(ctx, systemID, showAll)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, stationListResponse{
		Success:  true,
		Count:    len(stations),
		Stations: stations,
	})
}

func (h *StationsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_space_station")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	stationIDStr := r.PathValue("id")
	if stationIDStr == "" {
		response.Error(w, r, logger, errors.Validation("station ID is required"))
		return
	}

	stationID, err := strconv.Atoi(stationIDStr)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid station ID format", err))
		return
	}

	detail, err := h.service.GetStationDetail(ctx, stationID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, struct {
		Success bool                    `json:"success"`
		Station *universe.StationDetail `json:"station"`
	}{
		Success: true,
		Station: detail,
	})
}
