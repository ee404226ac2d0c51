package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/shared/cookies"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
)

// Login exchanges a username/password pair for a token pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "login")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	if req.Username == "" || req.Password == "" {
		response.Error(w, r, logger, errors.Validation("username and password are required"))
		return
	}

	u, err := h.service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		response.Error(w, r, logger, mapAuthError(err))
		return
	}

	tokens, err := auth.GenerateTokenPair(u)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to generate tokens", err))
		return
	}

	cookies.SetAuthCookie(w, tokens.AccessToken)

	logger.Info("User logged in", "user_id", u.ID, "username", u.Username)

	response.Success(w, http.StatusOK, tokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         u,
	})
}
