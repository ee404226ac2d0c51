package handlers

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/middleware"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
	"freelancer-server/internal/user"
)

// Profile serves the authenticated user's own record and accepts updates to
// its mutable fields.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "profile")

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getProfile(w, r, claims.UserID)
	case http.MethodPut:
		h.updateProfile(w, r, claims.UserID)
	default:
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
	}
}

func (h *AuthHandler) getProfile(w http.ResponseWriter, r *http.Request, userID int) {
	logger := slog.With("handler", "get_profile", "user_id", userID)

	u, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		response.Error(w, r, logger, mapAuthError(err))
		return
	}

	response.Success(w, http.StatusOK, u)
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request, userID int) {
	logger := slog.With("handler", "update_profile", "user_id", userID)

	var req struct {
		Email     *string `json:"email"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), userID, user.ProfileUpdate{
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		response.Error(w, r, logger, mapAuthError(err))
		return
	}

	logger.Info("Profile updated")
	response.Success(w, http.StatusOK, updated)
}

// ChangePassword verifies the current password before accepting a new one.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "change_password")

	if r.Method != http.MethodPut {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		response.Error(w, r, logger, errors.Validation("current and new passwords are required"))
		return
	}

	if err := h.service.ChangePassword(ctx, claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		if stderrors.Is(err, auth.ErrInvalidCredentials) {
			response.Error(w, r, logger, errors.Unauthorized("current password is incorrect"))
			return
		}
		response.Error(w, r, logger, mapAuthError(err))
		return
	}

	logger.Info("Password changed", "user_id", claims.UserID)

	response.Success(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{
		Message: "password changed successfully",
	})
}
