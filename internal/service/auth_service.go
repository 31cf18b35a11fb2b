package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/motorline/car-catalog/internal/auth"
	"github.com/motorline/car-catalog/internal/events"
	"github.com/motorline/car-catalog/internal/repository"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

// AuthService coordinates the login flow: credential check, cached
// token reuse and fresh issuance.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	store      auth.TokenStore
	authn      *auth.BearerAuthenticator
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, store auth.TokenStore, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		store:      store,
		authn:      auth.NewBearerAuthenticator(tokens),
		dispatcher: dispatcher,
	}
}

// Login authenticates the credentials and returns a token pair. A
// cached token that has not expired is returned unchanged instead of
// minting a new one; two concurrent logins may each mint a token, in
// which case the later cache write wins and both tokens stay valid
// until their own expiry.
func (s *AuthService) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.TokenPair{}, apperrors.NewInvalidCredentials()
		}
		return auth.TokenPair{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return auth.TokenPair{}, apperrors.NewInvalidCredentials()
	}

	if cached, err := s.store.Get(ctx, user.Username); err == nil && cached != "" && !s.tokens.HasExpired(cached) {
		s.publishLogin(ctx, user.Username, true)
		return auth.TokenPair{Username: user.Username, Token: cached}, nil
	}

	pair, err := s.tokens.Issue(auth.IdentityFromUser(user))
	if err != nil {
		return auth.TokenPair{}, err
	}
	if err := s.store.Save(ctx, pair.Username, pair.Token); err != nil {
		return auth.TokenPair{}, err
	}

	s.publishLogin(ctx, user.Username, false)
	return pair, nil
}

// Authenticate validates a bearer token into a principal.
func (s *AuthService) Authenticate(token string) (*auth.Principal, error) {
	return s.authn.Authenticate(token)
}

// Logout drops the cached token for the user. Already-issued tokens
// remain valid until they expire.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	return s.store.Delete(ctx, username)
}

// Authenticator exposes the bearer authenticator for middleware usage.
func (s *AuthService) Authenticator() *auth.BearerAuthenticator {
	return s.authn
}

func (s *AuthService) publishLogin(ctx context.Context, username string, reused bool) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserLoggedIn,
		Actor:     username,
		Timestamp: time.Now(),
		Payload:   events.LoginPayload{Username: username, Reused: reused},
	})
}
