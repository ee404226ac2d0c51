package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"freelancer-server/internal/shared/config"
	"freelancer-server/internal/shared/database"
	"freelancer-server/internal/shared/response"
)

type HealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	Database      string `json:"database"`
	GameVersion   string `json:"game_version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type HealthHandler struct {
	db      *database.DB
	started time.Time
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{
		db:      db,
		started: time.Now(),
	}
}

// ServeHTTP reports liveness plus the database state and the game version
// clients should expect in save payloads.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	dbStatus := "disconnected"
	if err := h.db.Ping(); err == nil {
		dbStatus = "connected"
	} else {
		logger.Warn("Database ping failed", "error", err)
	}

	resp := HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().Format(time.RFC3339),
		Database:      dbStatus,
		GameVersion:   config.GlobalConfig.Game.Version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}

	response.Success(w, http.StatusOK, resp)
}
