package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"freelancer-server/internal/middleware"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
	"freelancer-server/internal/user"
)

type UsersHandler struct {
	repo *user.Repository
}

func NewUsersHandler(repo *user.Repository) *UsersHandler {
	return &UsersHandler{repo: repo}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_users")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	users, err := h.repo.GetAllUsers(ctx)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to fetch users", err))
		return
	}

	if users == nil {
		users = []user.User{}
	}

	response.Success(w, http.StatusOK, struct {
		Status string      `json:"status"`
		Users  []user.User `json:"users"`
	}{
		Status: "success",
		Users:  users,
	})
}

// GetByID serves a single user record. Users may only read their own.
func (h *UsersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_user")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid user ID format", err))
		return
	}

	if claims.UserID != userID {
		response.Error(w, r, logger, errors.Forbidden("cannot view another user's information"))
		return
	}

	u, err := h.repo.GetByID(ctx, userID)
	if err != nil {
		if err == user.ErrUserNotFound {
			response.Error(w, r, logger, errors.NotFoundf("user not found with id: %d", userID))
			return
		}
		response.Error(w, r, logger, errors.WrapInternal("failed to fetch user", err))
		return
	}

	response.Success(w, http.StatusOK, struct {
		Status string     `json:"status"`
		User   *user.User `json:"user"`
	}{
		Status: "success",
		User:   u,
	})
}
