package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/config"
	"github.com/impulse-lab/lab-booking-service/internal/domain"
	"github.com/impulse-lab/lab-booking-service/internal/events"
	"github.com/impulse-lab/lab-booking-service/internal/provider"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret",
			AccessTokenTTLHours:    24,
			FederatedTokenTTLHours: 168,
			BcryptCost:             bcrypt.MinCost,
		},
	}
}

func TestRegisterUserIssuesToken(t *testing.T) {
	users := new(mockUserRepo)
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users, Dispatcher: dispatcher})

	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = "user-1"
	}).Return(nil)

	user, token, _, err := svc.RegisterUser(context.Background(), "Jane", "jane@example.com", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.ProviderLocal, user.Provider)
	assert.NotEqual(t, "pass1234", user.PasswordHash)

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	assert.Equal(t, []events.EventType{events.EventUserRegistered}, dispatcher.eventTypes())
	users.AssertExpectations(t)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})

	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domain.User{ID: "user-1", Email: "jane@example.com"}, nil)

	_, _, _, err := svc.RegisterUser(context.Background(), "Jane", "jane@example.com", "pass1234")
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginUserSuccess(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})

	hash, err := auth.HashPassword("pass1234", bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domain.User{ID: "user-1", Email: "jane@example.com", PasswordHash: hash, Role: domain.RoleUser}, nil)

	user, token, _, err := svc.LoginUser(context.Background(), "jane@example.com", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)
}

// Unknown email and wrong password must produce the same response so the
// endpoint cannot be used to probe which accounts exist.
func TestLoginUserErrorsAreIndistinguishable(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})

	hash, err := auth.HashPassword("pass1234", bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "missing@example.com").Return(nil, pgx.ErrNoRows)
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domain.User{ID: "user-1", PasswordHash: hash}, nil)

	_, _, _, errMissing := svc.LoginUser(context.Background(), "missing@example.com", "pass1234")
	_, _, _, errWrongPass := svc.LoginUser(context.Background(), "jane@example.com", "nope")

	require.Error(t, errMissing)
	require.Error(t, errWrongPass)
	missing := apperrors.ToDomainError(errMissing)
	wrongPass := apperrors.ToDomainError(errWrongPass)
	assert.Equal(t, missing.Message, wrongPass.Message)
	assert.Equal(t, missing.HTTPStatus, wrongPass.HTTPStatus)
	assert.Equal(t, 400, missing.HTTPStatus)
}

func TestLoginWithGoogleCreatesAccount(t *testing.T) {
	users := new(mockUserRepo)
	google := new(mockGoogleExchanger)
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users, Google: google, Dispatcher: dispatcher})

	google.On("Exchange", mock.Anything, "auth-code").Return(&provider.GoogleIdentity{
		Email:   "jane@example.com",
		Name:    "Jane",
		Subject: "google-sub-1",
	}, nil)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = "user-1"
	}).Return(nil)

	user, token, _, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGoogle, user.Provider)
	require.NotNil(t, user.ProviderID)
	assert.Equal(t, "google-sub-1", *user.ProviderID)
	assert.NotEmpty(t, token)
	assert.Equal(t, []events.EventType{events.EventUserRegistered}, dispatcher.eventTypes())
}

func TestLoginWithGoogleExistingAccount(t *testing.T) {
	users := new(mockUserRepo)
	google := new(mockGoogleExchanger)
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users, Google: google})

	google.On("Exchange", mock.Anything, "auth-code").Return(&provider.GoogleIdentity{
		Email: "jane@example.com",
	}, nil)
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domain.User{ID: "user-1", Email: "jane@example.com", Role: domain.RoleUser}, nil)

	user, token, _, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginWithGoogleExchangeFailure(t *testing.T) {
	users := new(mockUserRepo)
	google := new(mockGoogleExchanger)
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users, Google: google})

	google.On("Exchange", mock.Anything, "bad-code").Return(nil, assert.AnError)

	_, _, _, err := svc.LoginWithGoogle(context.Background(), "bad-code")
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCurrentUserGone(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users})

	users.On("GetByID", mock.Anything, "user-1").Return(nil, pgx.ErrNoRows)

	_, err := svc.CurrentUser(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
