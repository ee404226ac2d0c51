package user

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
)

const userColumns = `id, username, email, password_hash, avatar_url, credits, reputation,
		faction_id, current_system_id, created_at, last_login`

type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing user repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts a new user row. Uniqueness of username and email is
// enforced by the database; a constraint violation is mapped back onto
// ErrDuplicateUsername / ErrDuplicateEmail so concurrent registrations for
// the same name lose cleanly instead of surfacing a raw driver error.
func (r *Repository) CreateUser(ctx context.Context, params CreateParams) (*User, error) {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "create",
		"username", params.Username,
	)
	logger.Info("Creating new user")

	query := `
		INSERT INTO users (username, email, password_hash, credits, reputation, faction_id, current_system_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	var u User
	err := r.db.QueryRowContext(ctx, query,
		params.Username,
		params.Email,
		params.PasswordHash,
		params.Credits,
		params.Reputation,
		params.FactionID,
		params.CurrentSystemID,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.AvatarURL,
		&u.Credits,
		&u.Reputation,
		&u.FactionID,
		&u.CurrentSystemID,
		&u.CreatedAt,
		&u.LastLogin,
	)

	if err != nil {
		if dupErr := mapUniqueViolation(err); dupErr != nil {
			logger.Warn("Duplicate user on insert", "error", dupErr)
			return nil, dupErr
		}
		logger.Error("Failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created successfully", "user_id", u.ID)
	return &u, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "find_by_username",
		"username", username,
	)
	logger.Debug("Finding user by username")

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(ctx, logger, query, username)
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "find_by_email",
	)
	logger.Debug("Finding user by email")

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(ctx, logger, query, email)
}

func (r *Repository) GetByID(ctx context.Context, id int) (*User, error) {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "get_by_id",
		"user_id", id,
	)
	logger.Debug("Getting user by ID")

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(ctx, logger, query, id)
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]User, error) {
	logger := r.logger.With("component", "user_repository", "operation", "get_all")
	logger.Debug("Retrieving all users")

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query users", "error", err)
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var users []User
	for rows.Next() {
		var u User
		err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.PasswordHash,
			&u.AvatarURL,
			&u.Credits,
			&u.Reputation,
			&u.FactionID,
			&u.CurrentSystemID,
			&u.CreatedAt,
			&u.LastLogin,
		)
		if err != nil {
			logger.Error("Failed to scan user row", "error", err)
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	logger.Debug("Users retrieved successfully", "count", len(users))
	return users, nil
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id int) error {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "update_last_login",
		"user_id", id,
	)
	logger.Debug("Stamping last login")

	result, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to update last login", "error", err)
		return fmt.Errorf("failed to update last login: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "update_password",
		"user_id", id,
	)
	logger.Info("Updating password hash")

	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		logger.Error("Failed to update password hash", "error", err)
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateProfile applies the mutable profile fields. Nil pointers leave the
// stored value untouched.
func (r *Repository) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (*User, error) {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "update_profile",
		"user_id", id,
	)
	logger.Debug("Updating user profile")

	query := `
		UPDATE users
		SET email = COALESCE($1, email),
		    avatar_url = COALESCE($2, avatar_url)
		WHERE id = $3
		RETURNING ` + userColumns

	var u User
	err := r.db.QueryRowContext(ctx, query, update.Email, update.AvatarURL, id).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.AvatarURL,
		&u.Credits,
		&u.Reputation,
		&u.FactionID,
		&u.CurrentSystemID,
		&u.CreatedAt,
		&u.LastLogin,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("No user found with ID")
			return nil, ErrUserNotFound
		}
		if dupErr := mapUniqueViolation(err); dupErr != nil {
			logger.Warn("Duplicate email on profile update", "error", dupErr)
			return nil, dupErr
		}
		logger.Error("Database error updating profile", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	logger.Info("Profile updated successfully")
	return &u, nil
}

func (r *Repository) scanOne(ctx context.Context, logger *slog.Logger, query string, arg interface{}) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.AvatarURL,
		&u.Credits,
		&u.Reputation,
		&u.FactionID,
		&u.CurrentSystemID,
		&u.CreatedAt,
		&u.LastLogin,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("No matching user")
			return nil, ErrUserNotFound
		}
		logger.Error("Database error finding user", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &u, nil
}

// mapUniqueViolation translates a Postgres unique-constraint violation into
// the matching domain error, or returns nil for unrelated errors.
func mapUniqueViolation(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23505" {
		return nil
	}

	switch pqErr.Constraint {
	case "users_username_key":
		return ErrDuplicateUsername
	case "users_email_key":
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}
