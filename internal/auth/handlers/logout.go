package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/shared/cookies"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
)

// Logout clears the auth cookie. A refresh token included in the body is
// revoked so it cannot mint further access tokens.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "logout")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	if req.RefreshToken != "" {
		claims, err := auth.ValidateRefreshToken(req.RefreshToken)
		if err == nil && claims.ID != "" && claims.ExpiresAt != nil {
			if err := h.revocation.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
				logger.Error("Failed to revoke refresh token", "error", err)
			} else {
				logger.Info("Refresh token revoked", "user_id", claims.UserID)
			}
		}
	}

	cookies.ClearAuthCookie(w)

	response.Success(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{
		Message: "logged out successfully",
	})
}
