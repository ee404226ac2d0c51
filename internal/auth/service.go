package auth

import (
	"context"
	"errors"
	"log/slog"

	apperrors "freelancer-server/internal/shared/errors"
	"freelancer-server/internal/user"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the user repository the auth service depends on.
type UserStore interface {
	CreateUser(ctx context.Context, params user.CreateParams) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id int) error
	UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error
	UpdateProfile(ctx context.Context, id int, update user.ProfileUpdate) (*user.User, error)
}

type Service struct {
	store  UserStore
	logger *slog.Logger
}

func NewService(store UserStore, logger *slog.Logger) *Service {
	logger.Debug("Initializing auth service")

	return &Service{
		store:  store,
		logger: logger,
	}
}

// RegisterParams is the full field set for a new registration. The starting
// faction, system and credits are decided by the caller, not by this service.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	Credits         int
	FactionID       *int
	CurrentSystemID *int
}

// Register validates the new identity and persists it. Validation order:
// field presence, username format, email format, password policy, then
// uniqueness (username before email). The database unique indexes remain
// the final arbiter for concurrent registrations.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*user.User, error) {
	logger := s.logger.With(
		"component", "auth_service",
		"operation", "register",
		"username", params.Username,
	)
	logger.Debug("Registering new user")

	if params.Username == "" || params.Email == "" || params.Password == "" {
		return nil, apperrors.Validation("username, email and password are required")
	}

	if err := ValidateUsername(params.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(params.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(params.Password); err != nil {
		return nil, err
	}

	if existing, err := s.store.FindByUsername(ctx, params.Username); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		logger.Error("Database error checking username", "error", err)
		return nil, apperrors.WrapInternal("failed to check username", err)
	} else if existing != nil {
		return nil, user.ErrDuplicateUsername
	}

	if existing, err := s.store.FindByEmail(ctx, params.Email); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		logger.Error("Database error checking email", "error", err)
		return nil, apperrors.WrapInternal("failed to check email", err)
	} else if existing != nil {
		return nil, user.ErrDuplicateEmail
	}

	passwordHash, err := hashPassword(params.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, apperrors.WrapInternal("failed to hash password", err)
	}

	created, err := s.store.CreateUser(ctx, user.CreateParams{
		Username:        params.Username,
		Email:           params.Email,
		PasswordHash:    passwordHash,
		Credits:         params.Credits,
		Reputation:      0,
		FactionID:       params.FactionID,
		CurrentSystemID: params.CurrentSystemID,
	})
	if err != nil {
		// A duplicate here means we lost a race; the constraint violation
		// maps to the same errors the pre-checks produce.
		if errors.Is(err, user.ErrDuplicateUsername) || errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("Registration lost uniqueness race", "error", err)
			return nil, err
		}
		logger.Error("Failed to create user", "error", err)
		return nil, apperrors.WrapInternal("failed to create user", err)
	}

	logger.Info("User registered successfully", "user_id", created.ID)
	return created, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords fail identically so the endpoint cannot be used to probe
// for registered names. On success the last-login timestamp is stamped.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	logger := s.logger.With(
		"component", "auth_service",
		"operation", "authenticate",
		"username", username,
	)
	logger.Debug("Authenticating user")

	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			logger.Warn("Login attempt for unknown username")
			return nil, ErrInvalidCredentials
		}
		logger.Error("Database error finding user", "error", err)
		return nil, apperrors.WrapInternal("failed to look up user", err)
	}

	if !checkPassword(password, u.PasswordHash) {
		logger.Warn("Login attempt with wrong password", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	if err := s.store.UpdateLastLogin(ctx, u.ID); err != nil {
		logger.Error("Failed to stamp last login", "error", err, "user_id", u.ID)
		return nil, apperrors.WrapInternal("failed to update last login", err)
	}

	logger.Info("User authenticated successfully", "user_id", u.ID)
	return u, nil
}

// GetUser fetches a user by ID, mapping a missing row to ErrUserNotFound.
func (s *Service) GetUser(ctx context.Context, userID int) (*user.User, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrUserNotFound
		}
		s.logger.Error("Database error finding user", "error", err, "user_id", userID)
		return nil, apperrors.WrapInternal("failed to look up user", err)
	}
	return u, nil
}

// ChangePassword requires the current password and rejects a new password
// that fails policy or matches the current one.
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	logger := s.logger.With(
		"component", "auth_service",
		"operation", "change_password",
		"user_id", userID,
	)
	logger.Debug("Changing password")

	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		logger.Error("Database error finding user", "error", err)
		return apperrors.WrapInternal("failed to look up user", err)
	}

	if !checkPassword(currentPassword, u.PasswordHash) {
		logger.Warn("Password change with wrong current password")
		return ErrInvalidCredentials
	}

	if err := ValidatePassword(newPassword); err != nil {
		return ErrWeakPassword
	}

	if newPassword == currentPassword {
		return ErrSamePassword
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", "error", err)
		return apperrors.WrapInternal("failed to hash password", err)
	}

	if err := s.store.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		logger.Error("Failed to update password hash", "error", err)
		return apperrors.WrapInternal("failed to update password", err)
	}

	logger.Info("Password changed successfully")
	return nil
}

// UpdateProfile mutates the only two fields the API allows: email and
// avatar URL. A changed email re-runs format and uniqueness validation.
func (s *Service) UpdateProfile(ctx context.Context, userID int, update user.ProfileUpdate) (*user.User, error) {
	logger := s.logger.With(
		"component", "auth_service",
		"operation", "update_profile",
		"user_id", userID,
	)
	logger.Debug("Updating profile")

	current, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrUserNotFound
		}
		logger.Error("Database error finding user", "error", err)
		return nil, apperrors.WrapInternal("failed to look up user", err)
	}

	if update.Email != nil && *update.Email != current.Email {
		if err := ValidateEmail(*update.Email); err != nil {
			return nil, err
		}

		if existing, err := s.store.FindByEmail(ctx, *update.Email); err != nil && !errors.Is(err, user.ErrUserNotFound) {
			logger.Error("Database error checking email", "error", err)
			return nil, apperrors.WrapInternal("failed to check email", err)
		} else if existing != nil {
			return nil, user.ErrDuplicateEmail
		}
	}

	updated, err := s.store.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrDuplicateEmail) {
			return nil, err
		}
		logger.Error("Failed to update profile", "error", err)
		return nil, apperrors.WrapInternal("failed to update profile", err)
	}

	logger.Info("Profile updated successfully")
	return updated, nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
