package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/config"
	"github.com/impulse-lab/lab-booking-service/internal/domain"
	"github.com/impulse-lab/lab-booking-service/internal/events"
	"github.com/impulse-lab/lab-booking-service/internal/provider"
	"github.com/impulse-lab/lab-booking-service/internal/repository"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

// invalidCredentials is returned for both an unknown email and a wrong
// password so responses cannot be used to enumerate accounts.
func invalidCredentials() error {
	return apperrors.NewDomainError("INVALID_CREDENTIALS", "invalid email or password", http.StatusBadRequest)
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users        repository.UserRepository
	google       provider.GoogleExchanger
	dispatcher   events.Dispatcher
	tokenMgr     *auth.TokenManager
	bcryptCost   int
	accessTTL    time.Duration
	federatedTTL time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Google     provider.GoogleExchanger
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		google:       deps.Google,
		dispatcher:   deps.Dispatcher,
		tokenMgr:     auth.NewTokenManager(cfg.Auth.JWTSecret),
		bcryptCost:   cfg.Auth.BcryptCost,
		accessTTL:    cfg.Auth.AccessTokenTTL(),
		federatedTTL: cfg.Auth.FederatedTokenTTL(),
	}
}

// RegisterUser creates a new account and issues a token straight away.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("user already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Provider:     domain.ProviderLocal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	s.publishRegistered(ctx, user)

	token, exp, err := s.tokenMgr.Generate(user.ID, user.Role, s.accessTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginUser authenticates an account by email and password.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, invalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, invalidCredentials()
	}

	token, exp, err := s.tokenMgr.Generate(user.ID, user.Role, s.accessTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginWithGoogle trades an authorization code for a provider identity,
// finds or creates the local account, and issues a local token with the
// longer federated lifetime.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*domain.User, string, time.Time, error) {
	identity, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUpstreamFailure("google login failed", err)
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		user = &domain.User{
			Name:            identity.Name,
			Email:           identity.Email,
			Role:            domain.RoleUser,
			Provider:        domain.ProviderGoogle,
			ProviderID:      &identity.Subject,
			ProfileImageURL: optionalString(identity.Picture),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", time.Time{}, err
		}
		s.publishRegistered(ctx, user)
	} else if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Generate(user.ID, user.Role, s.federatedTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// CurrentUser loads the profile behind a verified token. The record can
// vanish between token issuance and use.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publishRegistered(ctx context.Context, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		SubjectID: user.ID,
		Timestamp: time.Now(),
		Payload: events.UserRegisteredPayload{
			Name:     user.Name,
			Email:    user.Email,
			Provider: user.Provider,
		},
	})
}

func optionalString(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}
