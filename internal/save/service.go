package save

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"freelancer-server/internal/shared/config"
	apperrors "freelancer-server/internal/shared/errors"
)

const maxSaveNameLength = 50

// SaveStore is the persistence surface the service depends on.
type SaveStore interface {
	CreateSave(ctx context.Context, params CreateParams) (*GameSave, error)
	GetSavesByUser(ctx context.Context, userID int) ([]GameSave, error)
	GetSaveForUser(ctx context.Context, gameID, userID int) (*GameSave, error)
	TouchLastPlayed(ctx context.Context, gameID, userID int) (*GameSave, error)
	RenameSave(ctx context.Context, gameID, userID int, saveName string) (*GameSave, error)
	DeleteSave(ctx context.Context, gameID, userID int) error
}

type Service struct {
	store  SaveStore
	game   config.GameConfig
	logger *slog.Logger
}

func NewService(store SaveStore, game config.GameConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing game save service")

	return &Service{
		store:  store,
		game:   game,
		logger: logger,
	}
}

// Create starts a fresh save slot for the user. An empty name gets a
// timestamped default, and progress fields start from the configured
// new-game values.
func (s *Service) Create(ctx context.Context, userID int, saveName string) (*GameSave, error) {
	logger := s.logger.With(
		"component", "save_service",
		"operation", "create",
		"user_id", userID,
	)

	if saveName == "" {
		saveName = "Save " + time.Now().Format("2006-01-02 15:04")
	}
	if len(saveName) > maxSaveNameLength {
		return nil, apperrors.Validationf("save name must be at most %d characters", maxSaveNameLength)
	}

	startingSystem := s.game.StartingSystemID
	faction := s.game.DefaultFactionID

	gs, err := s.store.CreateSave(ctx, CreateParams{
		UserID:          userID,
		SaveName:        saveName,
		GameVersion:     s.game.Version,
		Credits:         s.game.InitialCredits,
		Reputation:      1,
		CurrentSystemID: &startingSystem,
		FactionID:       &faction,
		Status:          StatusActive,
	})
	if err != nil {
		return nil, apperrors.WrapInternal("failed to create game save", err)
	}

	logger.Info("Game save created", "game_id", gs.ID)
	return gs, nil
}

func (s *Service) List(ctx context.Context, userID int) ([]GameSave, error) {
	saves, err := s.store.GetSavesByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list game saves", err)
	}
	return saves, nil
}

func (s *Service) Get(ctx context.Context, gameID, userID int) (*GameSave, error) {
	gs, err := s.store.GetSaveForUser(ctx, gameID, userID)
	if err != nil {
		return nil, mapSaveError(err, gameID)
	}
	return gs, nil
}

// Load marks the save as the one being played and returns its state.
func (s *Service) Load(ctx context.Context, gameID, userID int) (*GameSave, error) {
	logger := s.logger.With(
		"component", "save_service",
		"operation", "load",
		"game_id", gameID,
		"user_id", userID,
	)

	gs, err := s.store.TouchLastPlayed(ctx, gameID, userID)
	if err != nil {
		return nil, mapSaveError(err, gameID)
	}

	logger.Info("Game save loaded")
	return gs, nil
}

func (s *Service) Rename(ctx context.Context, gameID, userID int, saveName string) (*GameSave, error) {
	if saveName == "" {
		return nil, apperrors.Validation("save name is required")
	}
	if len(saveName) > maxSaveNameLength {
		return nil, apperrors.Validationf("save name must be at most %d characters", maxSaveNameLength)
	}

	gs, err := s.store.RenameSave(ctx, gameID, userID, saveName)
	if err != nil {
		return nil, mapSaveError(err, gameID)
	}
	return gs, nil
}

func (s *Service) Delete(ctx context.Context, gameID, userID int) error {
	logger := s.logger.With(
		"component", "save_service",
		"operation", "delete",
		"game_id", gameID,
		"user_id", userID,
	)

	if err := s.store.DeleteSave(ctx, gameID, userID); err != nil {
		return mapSaveError(err, gameID)
	}

	logger.Info("Game save deleted")
	return nil
}

func mapSaveError(err error, gameID int) error {
	if errors.Is(err, ErrSaveNotFound) {
		return apperrors.NotFoundf("game save not found with id: %d", gameID)
	}
	return apperrors.WrapInternal("game save storage error", err)
}
