package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorline/car-catalog/internal/auth"
	"github.com/motorline/car-catalog/internal/domain"
	"github.com/motorline/car-catalog/internal/events"
	apperrors "github.com/motorline/car-catalog/pkg/util"
)

type stubUserRepo struct {
	seq   int64
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = r.seq
	r.users[user.Username] = user
	return nil
}

func (r *stubUserRepo) DeleteByUsername(_ context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, username)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *stubUserRepo) AddRole(context.Context, int64, int64) error     { return nil }
func (r *stubUserRepo) RemoveRole(context.Context, int64, int64) error  { return nil }
func (r *stubUserRepo) AddGroup(context.Context, int64, int64) error    { return nil }
func (r *stubUserRepo) RemoveGroup(context.Context, int64, int64) error { return nil }

type loginCapture struct {
	payloads []events.LoginPayload
}

func (c *loginCapture) handle(_ context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.LoginPayload); ok {
		c.payloads = append(c.payloads, payload)
	}
	return nil
}

func newAuthFixture(t *testing.T, ttl time.Duration) (*AuthService, *stubUserRepo, *loginCapture) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens, err := auth.NewTokenManager("service-test-key", ttl)
	require.NoError(t, err)
	store := auth.NewRedisTokenStore(client, 240*time.Hour)

	hash, err := auth.HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"bob": {
			ID:           9,
			Username:     "bob",
			PasswordHash: hash,
			Roles: []domain.Role{{Name: "ADMIN", Permissions: []domain.Permission{
				{Name: domain.PermissionGetCar},
			}}},
			Groups: []domain.Group{{Name: "sales"}},
		},
	}}

	dispatcher := events.NewInMemoryDispatcher()
	capture := &loginCapture{}
	dispatcher.Subscribe(events.EventUserLoggedIn, capture.handle)

	return NewAuthService(repo, tokens, store, dispatcher), repo, capture
}

func TestLoginIssuesAndCachesToken(t *testing.T) {
	svc, _, capture := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	pair, err := svc.Login(ctx, "bob", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "bob", pair.Username)
	require.NotEmpty(t, pair.Token)

	principal, err := svc.Authenticate(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), principal.UserID)
	assert.Equal(t, []string{"ADMIN"}, principal.Roles)
	assert.Equal(t, []string{domain.PermissionGetCar}, principal.Permissions)
	assert.Equal(t, []string{"sales"}, principal.Groups)

	require.Len(t, capture.payloads, 1)
	assert.False(t, capture.payloads[0].Reused)
}

func TestLoginReusesCachedToken(t *testing.T) {
	svc, _, capture := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	first, err := svc.Login(ctx, "bob", "s3cret-pass")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "bob", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token)
	require.Len(t, capture.payloads, 2)
	assert.False(t, capture.payloads[0].Reused)
	assert.True(t, capture.payloads[1].Reused)
}

func TestLoginReissuesWhenCachedTokenExpired(t *testing.T) {
	svc, _, capture := newAuthFixture(t, time.Nanosecond)
	ctx := context.Background()

	_, err := svc.Login(ctx, "bob", "s3cret-pass")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// The cached token is already past its expiry, so this login mints
	// a fresh one instead of reusing the cache entry.
	_, err = svc.Login(ctx, "bob", "s3cret-pass")
	require.NoError(t, err)
	require.Len(t, capture.payloads, 2)
	assert.False(t, capture.payloads[1].Reused)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, capture := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob", "wrong-pass")
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "s3cret-pass")
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	assert.Empty(t, capture.payloads)
}

func TestLogoutDropsCachedToken(t *testing.T) {
	svc, _, capture := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Login(ctx, "bob", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, "bob"))

	// With the cache entry gone the next login cannot reuse anything.
	_, err = svc.Login(ctx, "bob", "s3cret-pass")
	require.NoError(t, err)
	require.Len(t, capture.payloads, 2)
	assert.False(t, capture.payloads[1].Reused)
}
