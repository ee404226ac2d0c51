package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

// JWTMiddleware authenticates requests with an access token. The three
// failure modes carry distinct sub-codes: expired (42), invalid (43),
// missing (44).
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "jwt",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing JWT authentication")

		tokenString, malformed := extractToken(r)
		if malformed {
			response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenInvalid, "invalid authorization header"))
			return
		}
		if tokenString == "" {
			response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenMissing, "authentication required"))
			return
		}

		claims, err := auth.ValidateAccessToken(tokenString)
		if err != nil {
			if err == auth.ErrTokenExpired {
				response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenExpired, "token has expired"))
				return
			}
			response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenInvalid, "invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		logger.Debug("JWT authentication successful",
			"user_id", claims.UserID,
			"username", claims.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RefreshJWTMiddleware authenticates requests with a refresh token. Access
// tokens are rejected so a stolen access token cannot mint new credentials.
func RefreshJWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "jwt_refresh",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing refresh token authentication")

		tokenString, malformed := extractToken(r)
		if malformed {
			response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenInvalid, "invalid authorization header"))
			return
		}
		if tokenString == "" {
			response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenMissing, "refresh token required"))
			return
		}

		claims, err := auth.ValidateRefreshToken(tokenString)
		if err != nil {
			if err == auth.ErrTokenExpired {
				response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenExpired, "refresh token has expired"))
				return
			}
			response.Error(w, r, logger, errors.UnauthorizedCode(errors.CodeTokenInvalid, "invalid refresh token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		logger.Debug("Refresh token accepted", "user_id", claims.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken prefers the Authorization header; browser clients fall back
// to the auth cookie. An Authorization header that is present but does not
// carry a Bearer credential is malformed, not missing.
func extractToken(r *http.Request) (token string, malformed bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return "", true
		}
		return token, false
	}

	if cookie, err := r.Cookie("auth_token"); err == nil {
		return cookie.Value, false
	}
	return "", false
}

// GetUserFromContext returns the authenticated claims, nil if absent.
func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
