package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"notekeep/internal/config"
	"notekeep/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	testEmail    = "a@x.com"
	testPassword = "pw123456"
)

func testConfig() config.Config {
	return config.Config{
		BcryptCost:   4,
		JWTSecret:    "test-secret-key-with-32-plus-characters!",
		TokenTTLDays: 7,
	}
}

// MockUsersRepo is a mock implementation of UsersRepo
type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestServiceRegister(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		setup   func(*MockUsersRepo)
		wantErr error
	}{
		{
			name: "successful registration",
			req:  RegisterRequest{Username: "ada", Email: testEmail, Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, ErrUserNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)
			},
		},
		{
			name: "email already taken",
			req:  RegisterRequest{Username: "ada", Email: testEmail, Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(&User{Email: testEmail}, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "duplicate surfaced by unique index",
			req:  RegisterRequest{Username: "ada", Email: testEmail, Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, ErrUserNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(ErrDuplicate)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "insert failure",
			req:  RegisterRequest{Username: "ada", Email: testEmail, Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, ErrUserNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(errors.New("db down"))
			},
			wantErr: ErrCreateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			tt.setup(repo)

			service := NewService(repo, testConfig(), silentLogger)
			resp, err := service.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, testEmail, resp.User.Email)
				assert.Equal(t, "ada", resp.User.Username)
				assert.NotEmpty(t, resp.Token)
				assert.NotEmpty(t, resp.User.PasswordHash)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestServiceRegisterNormalizesEmail(t *testing.T) {
	repo := new(MockUsersRepo)
	repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Email == testEmail
	})).Return(nil)

	service := NewService(repo, testConfig(), silentLogger)
	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "ada",
		Email:    "  A@X.com ",
		Password: testPassword,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestServiceLogin(t *testing.T) {
	hash, err := crypto.HashPassword(testPassword, 4)
	require.NoError(t, err)

	storedUser := &User{
		ID:           bson.NewObjectID(),
		Username:     "ada",
		Email:        testEmail,
		PasswordHash: hash,
	}

	tests := []struct {
		name    string
		req     LoginRequest
		setup   func(*MockUsersRepo)
		wantErr error
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: testEmail, Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser, nil)
			},
		},
		{
			name: "unknown email",
			req:  LoginRequest{Email: testEmail, Password: testPassword},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, ErrUserNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  LoginRequest{Email: testEmail, Password: "not-the-password"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			tt.setup(repo)

			service := NewService(repo, testConfig(), silentLogger)
			resp, err := service.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, storedUser.ID, resp.User.ID)
				assert.NotEmpty(t, resp.Token)
			}
			repo.AssertExpectations(t)
		})
	}
}

// The token returned by login must encode the identifier of the user that
// registered with those credentials.
func TestTokenEncodesUserID(t *testing.T) {
	hash, err := crypto.HashPassword(testPassword, 4)
	require.NoError(t, err)

	storedUser := &User{
		ID:           bson.NewObjectID(),
		Username:     "ada",
		Email:        testEmail,
		PasswordHash: hash,
	}

	repo := new(MockUsersRepo)
	repo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser, nil)

	cfg := testConfig()
	service := NewService(repo, cfg, silentLogger)
	resp, err := service.Login(context.Background(), LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	parsed, err := jwt.Parse(resp.Token, func(t *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, storedUser.ID.Hex(), claims["user_id"])
	assert.Equal(t, testEmail, claims["email"])
}
