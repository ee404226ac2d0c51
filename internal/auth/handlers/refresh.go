package handlers

import (
	"log/slog"
	"net/http"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/middleware"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
)

// Refresh mints a new access token from a valid refresh token. Revoked
// refresh tokens are rejected even before their expiry.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "refresh")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenMissing, "refresh token required"))
		return
	}

	if claims.ID != "" {
		revoked, err := h.revocation.IsRevoked(ctx, claims.ID)
		if err != nil {
			response.Error(w, r, logger, errors.WrapInternal("failed to check token revocation", err))
			return
		}
		if revoked {
			response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenInvalid, "refresh token has been revoked"))
			return
		}
	}

	u, err := h.service.GetUser(ctx, claims.UserID)
	if err != nil {
		response.Error(w, r, logger, mapAuthError(err))
		return
	}

	accessToken, err := auth.GenerateAccessToken(u)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to generate access token", err))
		return
	}

	logger.Info("Access token refreshed", "user_id", u.ID)

	response.Success(w, http.StatusOK, struct {
		AccessToken string `json:"access_token"`
	}{
		AccessToken: accessToken,
	})
}
