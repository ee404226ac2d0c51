package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelancer-server/internal/auth"
	"freelancer-server/internal/save"
	"freelancer-server/internal/shared/config"
	"freelancer-server/internal/universe"
	"freelancer-server/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserStore struct {
	mock.Mock
}

func (m *stubUserStore) CreateUser(ctx context.Context, params user.CreateParams) (*user.User, error) {
	args := m.Called(ctx, params)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserStore) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserStore) GetByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserStore) UpdateLastLogin(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *stubUserStore) UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *stubUserStore) UpdateProfile(ctx context.Context, id int, update user.ProfileUpdate) (*user.User, error) {
	args := m.Called(ctx, id, update)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubSaveStore struct {
	mock.Mock
}

func (m *stubSaveStore) CreateSave(ctx context.Context, params save.CreateParams) (*save.GameSave, error) {
	args := m.Called(ctx, params)
	if gs := args.Get(0); gs != nil {
		return gs.(*save.GameSave), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubSaveStore) GetSavesByUser(ctx context.Context, userID int) ([]save.GameSave, error) {
	args := m.Called(ctx, userID)
	if saves := args.Get(0); saves != nil {
		return saves.([]save.GameSave), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubSaveStore) GetSaveForUser(ctx context.Context, gameID, userID int) (*save.GameSave, error) {
	args := m.Called(ctx, gameID, userID)
	if gs := args.Get(0); gs != nil {
		return gs.(*save.GameSave), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubSaveStore) TouchLastPlayed(ctx context.Context, gameID, userID int) (*save.GameSave, error) {
	args := m.Called(ctx, gameID, userID)
	if gs := args.Get(0); gs != nil {
		return gs.(*save.GameSave), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubSaveStore) RenameSave(ctx context.Context, gameID, userID int, saveName string) (*save.GameSave, error) {
	args := m.Called(ctx, gameID, userID, saveName)
	if gs := args.Get(0); gs != nil {
		return gs.(*save.GameSave), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubSaveStore) DeleteSave(ctx context.Context, gameID, userID int) error {
	return m.Called(ctx, gameID, userID).Error(0)
}

func setFlowConfig(t *testing.T) {
	t.Helper()

	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "flow-test-secret-key-long-enough!!",
			AccessTokenExpiry:  30 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Game: config.GameConfig{
			Version:          "0.3.1",
			InitialCredits:   1000,
			StartingSystemID: 1,
			DefaultFactionID: 1,
		},
	}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func newTestMux(userStore *stubUserStore, saveStore *stubSaveStore) *http.ServeMux {
	logger := slog.Default()

	authService := auth.NewService(userStore, logger)
	saveService := save.NewService(saveStore, config.GlobalConfig.Game, logger)
	universeService := universe.NewService(nil, logger)
	revocation := auth.NewRevocationStore(nil, logger)

	routes := NewRoutes(nil, authService, saveService, universeService, nil, revocation, logger)
	return routes.Setup()
}

func doJSON(mux *http.ServeMux, method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// Walks a full player lifecycle through the HTTP surface: register, log in,
// create a save, list it back, delete it, and confirm the list is empty.
func TestPlayerLifecycleFlow(t *testing.T) {
	setFlowConfig(t)

	userStore := new(stubUserStore)
	saveStore := new(stubSaveStore)
	mux := newTestMux(userStore, saveStore)

	const password = "GoodPass1"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	factionID := 1
	systemID := 1
	pilot := &user.User{
		ID:              7,
		Username:        "pilot",
		Email:           "pilot@example.com",
		PasswordHash:    string(hash),
		Credits:         1000,
		FactionID:       &factionID,
		CurrentSystemID: &systemID,
	}

	userStore.On("FindByUsername", mock.Anything, "pilot").Return(nil, user.ErrUserNotFound).Once()
	userStore.On("FindByEmail", mock.Anything, "pilot@example.com").Return(nil, user.ErrUserNotFound).Once()
	userStore.On("CreateUser", mock.Anything, mock.MatchedBy(func(p user.CreateParams) bool {
		return p.Username == "pilot" && p.Credits == 1000 &&
			p.FactionID != nil && *p.FactionID == 1 &&
			p.CurrentSystemID != nil && *p.CurrentSystemID == 1
	})).Return(pilot, nil).Once()

	rec := doJSON(mux, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "pilot",
		"email":    "pilot@example.com",
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	userStore.On("FindByUsername", mock.Anything, "pilot").Return(pilot, nil).Once()
	userStore.On("UpdateLastLogin", mock.Anything, 7).Return(nil).Once()

	rec = doJSON(mux, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "pilot",
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		AccessToken  string     `json:"access_token"`
		RefreshToken string     `json:"refresh_token"`
		User         *user.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.AccessToken)
	require.NotNil(t, session.User)
	assert.Equal(t, 7, session.User.ID)

	created := save.GameSave{
		ID:              3,
		UserID:          7,
		SaveName:        "First Run",
		GameVersion:     "0.3.1",
		Credits:         1000,
		Reputation:      1,
		CurrentSystemID: &systemID,
		FactionID:       &factionID,
		Status:          save.StatusActive,
	}
	saveStore.On("CreateSave", mock.Anything, mock.MatchedBy(func(p save.CreateParams) bool {
		return p.UserID == 7 && p.SaveName == "First Run" &&
			p.GameVersion == "0.3.1" && p.Status == save.StatusActive
	})).Return(&created, nil).Once()

	rec = doJSON(mux, http.MethodPost, "/api/game-saves", map[string]string{
		"save_name": "First Run",
	}, session.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	saveStore.On("GetSavesByUser", mock.Anything, 7).Return([]save.GameSave{created}, nil).Once()

	rec = doJSON(mux, http.MethodGet, "/api/game-saves", nil, session.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Status    string          `json:"status"`
		GameSaves []save.GameSave `json:"game_saves"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.GameSaves, 1)
	assert.Equal(t, created.ID, listing.GameSaves[0].ID)
	assert.Equal(t, 7, listing.GameSaves[0].UserID)
	assert.Equal(t, "First Run", listing.GameSaves[0].SaveName)
	assert.Equal(t, "0.3.1", listing.GameSaves[0].GameVersion)
	assert.Equal(t, 1000, listing.GameSaves[0].Credits)

	saveStore.On("DeleteSave", mock.Anything, 3, 7).Return(nil).Once()

	rec = doJSON(mux, http.MethodDelete, "/api/game-saves/3", nil, session.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	saveStore.On("GetSavesByUser", mock.Anything, 7).Return([]save.GameSave{}, nil).Once()

	rec = doJSON(mux, http.MethodGet, "/api/game-saves", nil, session.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Empty(t, listing.GameSaves)

	userStore.AssertExpectations(t)
	saveStore.AssertExpectations(t)
}

// The save routes must reject requests without a token before any service
// code runs.
func TestGameSaveRoutesRequireAuth(t *testing.T) {
	setFlowConfig(t)

	mux := newTestMux(new(stubUserStore), new(stubSaveStore))

	rec := doJSON(mux, http.MethodGet, "/api/game-saves", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(mux, http.MethodPost, "/api/game-saves", map[string]string{"save_name": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
