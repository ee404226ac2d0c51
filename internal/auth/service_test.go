package auth

import (
	"context"
	"log/slog"
	"testing"

	"freelancer-server/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CreateUser(ctx context.Context, params user.CreateParams) (*user.User, error) {
	args := m.Called(ctx, params)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserStore) UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id int, update user.ProfileUpdate) (*user.User, error) {
	args := m.Called(ctx, id, update)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func registerParams() RegisterParams {
	return RegisterParams{
		Username: "newpilot",
		Email:    "newpilot@example.com",
		Password: "GoodPass1",
		Credits:  1000,
	}
}

func TestRegister_Success(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	store.On("FindByUsername", ctx, "newpilot").Return(nil, user.ErrUserNotFound).Once()
	store.On("FindByEmail", ctx, "newpilot@example.com").Return(nil, user.ErrUserNotFound).Once()
	store.On("CreateUser", ctx, mock.MatchedBy(func(params user.CreateParams) bool {
		assert.Equal(t, "newpilot", params.Username)
		assert.Equal(t, "newpilot@example.com", params.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(params.PasswordHash), []byte("GoodPass1")))
		return true
	})).Return(&user.User{ID: 7, Username: "newpilot", Email: "newpilot@example.com"}, nil).Once()

	created, err := service.Register(ctx, registerParams())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 7, created.ID)
	store.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	store.On("FindByUsername", ctx, "newpilot").
		Return(&user.User{ID: 1, Username: "newpilot"}, nil).Once()

	_, err := service.Register(ctx, registerParams())

	assert.ErrorIs(t, err, user.ErrDuplicateUsername)
	store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	store.On("FindByUsername", ctx, "newpilot").Return(nil, user.ErrUserNotFound).Once()
	store.On("FindByEmail", ctx, "newpilot@example.com").
		Return(&user.User{ID: 2, Email: "newpilot@example.com"}, nil).Once()

	_, err := service.Register(ctx, registerParams())

	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_LostUniquenessRace(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	store.On("FindByUsername", ctx, "newpilot").Return(nil, user.ErrUserNotFound).Once()
	store.On("FindByEmail", ctx, "newpilot@example.com").Return(nil, user.ErrUserNotFound).Once()
	store.On("CreateUser", ctx, mock.AnythingOfType("user.CreateParams")).
		Return(nil, user.ErrDuplicateUsername).Once()

	_, err := service.Register(ctx, registerParams())

	assert.ErrorIs(t, err, user.ErrDuplicateUsername)
	store.AssertExpectations(t)
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"missing username", func(p *RegisterParams) { p.Username = "" }},
		{"bad username", func(p *RegisterParams) { p.Username = "no spaces!" }},
		{"bad email", func(p *RegisterParams) { p.Email = "not-an-email" }},
		{"weak password", func(p *RegisterParams) { p.Password = "weak" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := registerParams()
			tt.mutate(&params)

			_, err := service.Register(ctx, params)
			assert.Error(t, err)
		})
	}

	store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthenticate_Success(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("GoodPass1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	store.On("FindByUsername", ctx, "pilot").
		Return(&user.User{ID: 3, Username: "pilot", PasswordHash: string(hash)}, nil).Once()
	store.On("UpdateLastLogin", ctx, 3).Return(nil).Once()

	u, err := service.Authenticate(ctx, "pilot", "GoodPass1")

	require.NoError(t, err)
	assert.Equal(t, 3, u.ID)
	store.AssertExpectations(t)
}

func TestAuthenticate_UniformFailure(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("GoodPass1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	store.On("FindByUsername", ctx, "ghost").Return(nil, user.ErrUserNotFound).Once()
	store.On("FindByUsername", ctx, "pilot").
		Return(&user.User{ID: 3, Username: "pilot", PasswordHash: string(hash)}, nil).Once()

	// Unknown username and wrong password must be indistinguishable.
	_, unknownErr := service.Authenticate(ctx, "ghost", "GoodPass1")
	_, wrongPassErr := service.Authenticate(ctx, "pilot", "WrongPass1")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPassErr)
	store.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
}

func TestChangePassword_Success(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("OldPass1x"), bcrypt.DefaultCost)
	require.NoError(t, err)

	store.On("GetByID", ctx, 5).
		Return(&user.User{ID: 5, PasswordHash: string(hash)}, nil).Once()
	store.On("UpdatePasswordHash", ctx, 5, mock.MatchedBy(func(newHash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(newHash), []byte("NewPass2y")) == nil
	})).Return(nil).Once()

	err = service.ChangePassword(ctx, 5, "OldPass1x", "NewPass2y")

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("OldPass1x"), bcrypt.DefaultCost)
	require.NoError(t, err)

	store.On("GetByID", ctx, 5).
		Return(&user.User{ID: 5, PasswordHash: string(hash)}, nil).Once()

	err = service.ChangePassword(ctx, 5, "NotTheOldPass1", "NewPass2y")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	store.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_WeakNewPassword(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("OldPass1x"), bcrypt.DefaultCost)
	require.NoError(t, err)

	store.On("GetByID", ctx, 5).
		Return(&user.User{ID: 5, PasswordHash: string(hash)}, nil).Once()

	err = service.ChangePassword(ctx, 5, "OldPass1x", "weak")

	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestChangePassword_SamePassword(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("OldPass1x"), bcrypt.DefaultCost)
	require.NoError(t, err)

	store.On("GetByID", ctx, 5).
		Return(&user.User{ID: 5, PasswordHash: string(hash)}, nil).Once()

	err = service.ChangePassword(ctx, 5, "OldPass1x", "OldPass1x")

	assert.ErrorIs(t, err, ErrSamePassword)
}

func TestUpdateProfile_DuplicateEmail(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	newEmail := "taken@example.com"
	store.On("GetByID", ctx, 5).
		Return(&user.User{ID: 5, Email: "mine@example.com"}, nil).Once()
	store.On("FindByEmail", ctx, newEmail).
		Return(&user.User{ID: 9, Email: newEmail}, nil).Once()

	_, err := service.UpdateProfile(ctx, 5, user.ProfileUpdate{Email: &newEmail})

	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	store.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_Success(t *testing.T) {
	store := new(mockUserStore)
	service := NewService(store, slog.Default())
	ctx := context.Background()

	avatar := "https://cdn.example.com/a.png"
	update := user.ProfileUpdate{AvatarURL: &avatar}

	store.On("GetByID", ctx, 5).
		Return(&user.User{ID: 5, Email: "mine@example.com"}, nil).Once()
	store.On("UpdateProfile", ctx, 5, update).
		Return(&user.User{ID: 5, Email: "mine@example.com", AvatarURL: &avatar}, nil).Once()

	updated, err := service.UpdateProfile(ctx, 5, update)

	require.NoError(t, err)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, avatar, *updated.AvatarURL)
	store.AssertExpectations(t)
}
