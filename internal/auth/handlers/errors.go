package handlers

import (
	"errors"

	"freelancer-server/internal/auth"
	apperrors "freelancer-server/internal/shared/errors"
	"freelancer-server/internal/user"
)

// mapAuthError lifts the auth and user sentinel errors into API errors.
// Anything already typed, or unknown, passes through untouched.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, user.ErrDuplicateUsername):
		return apperrors.Conflictf("username is already taken")
	case errors.Is(err, user.ErrDuplicateEmail):
		return apperrors.Conflictf("email is already registered")
	case errors.Is(err, user.ErrUserNotFound):
		return apperrors.NotFoundf("user not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperrors.Unauthorized("invalid username or password")
	case errors.Is(err, auth.ErrWeakPassword):
		return apperrors.Validation("new password does not meet the password policy")
	case errors.Is(err, auth.ErrSamePassword):
		return apperrors.Validation("new password must differ from the current password")
	default:
		return err
	}
}
