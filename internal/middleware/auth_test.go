package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/shared/config"
	"freelancer-server/internal/shared/errors"
	"freelancer-server/internal/shared/response"
	"freelancer-server/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T, accessExpiry time.Duration) {
	t.Helper()

	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-key-that-is-long-enough!",
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
	}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetUserFromContext(r)
		require.NotNil(t, claims)
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/game-saves", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	token, err := auth.GenerateAccessToken(&user.User{ID: 1, Username: "pilot", Email: "pilot@example.com"})
	require.NoError(t, err)

	rec := doRequest(JWTMiddleware(okHandler(t)), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	rec := doRequest(JWTMiddleware(okHandler(t)), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.CodeTokenMissing, decodeError(t, rec).ErrorCode)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	setTestConfig(t, -time.Minute)

	token, err := auth.GenerateAccessToken(&user.User{ID: 1, Username: "pilot"})
	require.NoError(t, err)

	rec := doRequest(JWTMiddleware(okHandler(t)), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.CodeTokenExpired, decodeError(t, rec).ErrorCode)
}

func TestJWTMiddleware_MalformedToken(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	rec := doRequest(JWTMiddleware(okHandler(t)), "Bearer garbage")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.CodeTokenInvalid, decodeError(t, rec).ErrorCode)
}

func TestJWTMiddleware_NonBearerAuthorization(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	rec := doRequest(JWTMiddleware(okHandler(t)), "Basic cGlsb3Q6aHVudGVyMg==")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.CodeTokenInvalid, decodeError(t, rec).ErrorCode)
}

func TestJWTMiddleware_EmptyBearerCredential(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	rec := doRequest(JWTMiddleware(okHandler(t)), "Bearer ")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.CodeTokenInvalid, decodeError(t, rec).ErrorCode)
}

func TestJWTMiddleware_RejectsRefreshToken(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	token, err := auth.GenerateRefreshToken(1)
	require.NoError(t, err)

	rec := doRequest(JWTMiddleware(okHandler(t)), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.CodeTokenInvalid, decodeError(t, rec).ErrorCode)
}

func TestJWTMiddleware_CookieFallback(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	token, err := auth.GenerateAccessToken(&user.User{ID: 1, Username: "pilot"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/game-saves", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()
	JWTMiddleware(okHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshJWTMiddleware_RejectsAccessToken(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	token, err := auth.GenerateAccessToken(&user.User{ID: 1, Username: "pilot"})
	require.NoError(t, err)

	rec := doRequest(RefreshJWTMiddleware(okHandler(t)), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.CodeTokenInvalid, decodeError(t, rec).ErrorCode)
}

func TestRefreshJWTMiddleware_ValidRefreshToken(t *testing.T) {
	setTestConfig(t, 30*time.Minute)

	token, err := auth.GenerateRefreshToken(1)
	require.NoError(t, err)

	rec := doRequest(RefreshJWTMiddleware(okHandler(t)), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}
