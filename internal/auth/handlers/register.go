package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/shared/config"
	"freelancer-server/internal/shared/cookies"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
	"freelancer-server/internal/user"
)

type AuthHandler struct {
	service    *auth.Service
	revocation *auth.RevocationStore
	game       config.GameConfig
}

func NewAuthHandler(service *auth.Service, revocation *auth.RevocationStore, game config.GameConfig) *AuthHandler {
	return &AuthHandler{
		service:    service,
		revocation: revocation,
		game:       game,
	}
}

type tokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         *user.User `json:"user"`
}

// Register creates a new account and signs it in immediately, returning a
// token pair alongside the created user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "register")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FactionID *int   `json:"faction_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	factionID := h.game.DefaultFactionID
	if req.FactionID != nil {
		factionID = *req.FactionID
	}
	startingSystem := h.game.StartingSystemID

	created, err := h.service.Register(ctx, auth.RegisterParams{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Credits:         h.game.InitialCredits,
		FactionID:       &factionID,
		CurrentSystemID: &startingSystem,
	})
	if err != nil {
		response.Error(w, r, logger, mapAuthError(err))
		return
	}

	tokens, err := auth.GenerateTokenPair(created)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to generate tokens", err))
		return
	}

	cookies.SetAuthCookie(w, tokens.AccessToken)

	logger.Info("User registered", "user_id", created.ID, "username", created.Username)

	response.Success(w, http.StatusCreated, tokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         created,
	})
}
