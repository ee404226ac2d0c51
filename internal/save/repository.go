package save

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

const saveColumns = `game_id, user_id, save_name, created_at, last_played_at, game_version,
		total_playtime, credits, current_system_id, reputation, faction_id,
		discovered_systems_count, completed_missions_count, thumbnail_path, status`

type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing game save repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateSave(ctx context.Context, params CreateParams) (*GameSave, error) {
	logger := r.logger.With(
		"component", "save_repository",
		"operation", "create",
		"user_id", params.UserID,
	)
	logger.Info("Creating game save")

	query := `
		INSERT INTO game_saves (user_id, save_name, game_version, credits, reputation,
			current_system_id, faction_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + saveColumns

	row := r.db.QueryRowContext(ctx, query,
		params.UserID,
		params.SaveName,
		params.GameVersion,
		params.Credits,
		params.Reputation,
		params.CurrentSystemID,
		params.FactionID,
		params.Status,
	)

	gs, err := scanSave(row)
	if err != nil {
		logger.Error("Failed to create game save", "error", err)
		return nil, fmt.Errorf("failed to create game save: %w", err)
	}

	logger.Info("Game save created successfully", "game_id", gs.ID)
	return gs, nil
}

// GetSavesByUser returns the user's saves, most recently played first.
func (r *Repository) GetSavesByUser(ctx context.Context, userID int) ([]GameSave, error) {
	logger := r.logger.With(
		"component", "save_repository",
		"operation", "list_by_user",
		"user_id", userID,
	)
	logger.Debug("Listing game saves")

	query := `SELECT ` + saveColumns + ` FROM game_saves WHERE user_id = $1 ORDER BY last_played_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Error("Failed to query game saves", "error", err)
		return nil, fmt.Errorf("failed to query game saves: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var saves []GameSave
	for rows.Next() {
		gs, err := scanSave(rows)
		if err != nil {
			logger.Error("Failed to scan game save row", "error", err)
			return nil, fmt.Errorf("failed to scan game save: %w", err)
		}
		saves = append(saves, *gs)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating game saves: %w", err)
	}

	logger.Debug("Game saves retrieved successfully", "count", len(saves))
	return saves, nil
}

// GetSaveForUser fetches one save only if it belongs to the given user.
// A save owned by someone else is indistinguishable from a missing one.
func (r *Repository) GetSaveForUser(ctx context.Context, gameID, userID int) (*GameSave, error) {
	logger := r.logger.With(
		"component", "save_repository",
		"operation", "get_for_user",
		"game_id", gameID,
		"user_id", userID,
	)
	logger.Debug("Getting game save")

	query := `SELECT ` + saveColumns + ` FROM game_saves WHERE game_id = $1 AND user_id = $2`

	gs, err := scanSave(r.db.QueryRowContext(ctx, query, gameID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("No matching game save")
			return nil, ErrSaveNotFound
		}
		logger.Error("Database error finding game save", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return gs, nil
}

// TouchLastPlayed stamps the save as just played and returns the updated row.
func (r *Repository) TouchLastPlayed(ctx context.Context, gameID, userID int) (*GameSave, error) {
	logger := r.logger.With(
		"component", "save_repository",
		"operation", "touch_last_played",
		"game_id", gameID,
	)
	logger.Debug("Updating last played timestamp")

	query := `
		UPDATE game_saves
		SET last_played_at = NOW()
		WHERE game_id = $1 AND user_id = $2
		RETURNING ` + saveColumns

	gs, err := scanSave(r.db.QueryRowContext(ctx, query, gameID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSaveNotFound
		}
		logger.Error("Failed to update last played", "error", err)
		return nil, fmt.Errorf("failed to update last played: %w", err)
	}

	return gs, nil
}

func (r *Repository) RenameSave(ctx context.Context, gameID, userID int, saveName string) (*GameSave, error) {
	logger := r.logger.With(
		"component", "save_repository",
		"operation", "rename",
		"game_id", gameID,
	)
	logger.Info("Renaming game save")

	query := `
		UPDATE game_saves
		SET save_name = $1
		WHERE game_id = $2 AND user_id = $3
		RETURNING ` + saveColumns

	gs, err := scanSave(r.db.QueryRowContext(ctx, query, saveName, gameID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSaveNotFound
		}
		logger.Error("Failed to rename game save", "error", err)
		return nil, fmt.Errorf("failed to rename game save: %w", err)
	}

	return gs, nil
}

func (r *Repository) DeleteSave(ctx context.Context, gameID, userID int) error {
	logger := r.logger.With(
		"component", "save_repository",
		"operation", "delete",
		"game_id", gameID,
		"user_id", userID,
	)
	logger.Info("Deleting game save")

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM game_saves WHERE game_id = $1 AND user_id = $2`, gameID, userID)
	if err != nil {
		logger.Error("Failed to delete game save", "error", err)
		return fmt.Errorf("failed to delete game save: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrSaveNotFound
	}

	logger.Info("Game save deleted successfully")
	return nil
}

func scanSave(row interface{ Scan(...interface{}) error }) (*GameSave, error) {
	var gs GameSave
	err := row.Scan(
		&gs.ID,
		&gs.UserID,
		&gs.SaveName,
		&gs.CreatedAt,
		&gs.LastPlayedAt,
		&gs.GameVersion,
		&gs.TotalPlaytime,
		&gs.Credits,
		&gs.CurrentSystemID,
		&gs.Reputation,
		&gs.FactionID,
		&gs.DiscoveredSystemsCount,
		&gs.CompletedMissionsCount,
		&gs.ThumbnailPath,
		&gs.Status,
	)
	if err != nil {
		return nil, err
	}
	return &gs, nil
}
