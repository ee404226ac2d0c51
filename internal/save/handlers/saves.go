package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/middleware"
	"freelancer-server/internal/save"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
)

type SavesHandler struct {
	service *save.Service
}

func NewSavesHandler(service *save.Service) *SavesHandler {
	return &SavesHandler{service: service}
}

type saveResponse struct {
	Status   string         `json:"status"`
	Message  string         `json:"message,omitempty"`
	GameSave *save.GameSave `json:"game_save"`
}

// Collection handles the list and create operations on the save collection.
func (h *SavesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		logger := slog.With("handler", "game_saves")
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
	}
}

func (h *SavesHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_game_saves")

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	saves, err := h.service.List(ctx, claims.UserID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if saves == nil {
		saves = []save.GameSave{}
	}

	response.Success(w, http.StatusOK, struct {
		Status    string          `json:"status"`
		GameSaves []save.GameSave `json:"game_saves"`
	}{
		Status:    "success",
		GameSaves: saves,
	})
}

func (h *SavesHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_game_save")

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	var req struct {
		SaveName string `json:"save_name"`
	}
	// An empty body is fine, the service picks a default name.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	gs, err := h.service.Create(ctx, claims.UserID, req.SaveName)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, saveResponse{
		Status:   "success",
		Message:  "game save created",
		GameSave: gs,
	})
}

// Item handles fetch, rename and delete on a single save.
func (h *SavesHandler) Item(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "game_save")

	gameID, claims, err := h.requireSave(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, gameID, claims.UserID)
	case http.MethodPut:
		h.rename(w, r, gameID, claims.UserID)
	case http.MethodDelete:
		h.delete(w, r, gameID, claims.UserID)
	default:
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
	}
}

func (h *SavesHandler) get(w http.ResponseWriter, r *http.Request, gameID, userID int) {
	logger := slog.With("handler", "get_game_save", "game_id", gameID)

	gs, err := h.service.Get(r.Context(), gameID, userID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, saveResponse{
		Status:   "success",
		GameSave: gs,
	})
}

func (h *SavesHandler) rename(w http.ResponseWriter, r *http.Request, gameID, userID int) {
	logger := slog.With("handler", "rename_game_save", "game_id", gameID)

	var req struct {
		SaveName string `json:"save_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	gs, err := h.service.Rename(r.Context(), gameID, userID, req.SaveName)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, saveResponse{
		Status:   "success",
		Message:  "game save updated",
		GameSave: gs,
	})
}

func (h *SavesHandler) delete(w http.ResponseWriter, r *http.Request, gameID, userID int) {
	logger := slog.With("handler", "delete_game_save", "game_id", gameID)

	if err := h.service.Delete(r.Context(), gameID, userID); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}{
		Status:  "success",
		Message: "game save deleted",
	})
}

// Load stamps a save as the active one and returns its state.
func (h *SavesHandler) Load(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "load_game_save")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	gameID, claims, err := h.requireSave(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	gs, err := h.service.Load(r.Context(), gameID, claims.UserID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, saveResponse{
		Status:   "success",
		Message:  "game save loaded",
		GameSave: gs,
	})
}

func (h *SavesHandler) requireSave(r *http.Request) (int, *auth.Claims, error) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		return 0, nil, errors.Unauthorized("authentication required")
	}

	idStr := r.PathValue("id")
	if idStr == "" {
		return 0, nil, errors.Validation("game save ID is required")
	}

	gameID, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, nil, errors.WrapValidation("invalid game save ID format", err)
	}

	return gameID, claims, nil
}
