package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/motorline/car-catalog/pkg/util"
)

func newTestApp(t *testing.T, tm *TokenManager, guards ...fiber.Handler) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}})
		},
	})

	middleware := NewMiddleware(NewBearerAuthenticator(tm), zap.NewNop())
	app.Use(middleware.Handle)

	chain := append(guards, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/probe", chain...)
	return app
}

func probe(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMiddlewareInstallsPrincipal(t *testing.T) {
	tm := newTestManager(t, time.Hour)

	var captured *Principal
	app := fiber.New()
	middleware := NewMiddleware(NewBearerAuthenticator(tm), zap.NewNop())
	app.Use(middleware.Handle)
	app.Get("/probe", func(c *fiber.Ctx) error {
		captured, _ = PrincipalFromContext(c)
		return c.SendStatus(http.StatusOK)
	})

	pair, err := tm.Issue(adminIdentity())
	require.NoError(t, err)

	resp := probe(t, app, pair.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, captured)
	assert.Equal(t, "alice", captured.Username)
	assert.Equal(t, int64(42), captured.UserID)
	assert.Equal(t, []string{"ADMIN"}, captured.Roles)
	assert.True(t, captured.HasPermission("PERMISSON_CREATE_CAR"))
}

func TestMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	tm := newTestManager(t, time.Hour)
	app := newTestApp(t, tm)

	resp := probe(t, app, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareIgnoresNonBearerHeader(t *testing.T) {
	tm := newTestManager(t, time.Hour)
	app := newTestApp(t, tm)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejectsTamperedToken(t *testing.T) {
	tm := newTestManager(t, time.Hour)
	app := newTestApp(t, tm)

	pair, err := tm.Issue(adminIdentity())
	require.NoError(t, err)
	flipped := byte('A')
	if pair.Token[len(pair.Token)-1] == 'A' {
		flipped = 'B'
	}

	resp := probe(t, app, pair.Token[:len(pair.Token)-1]+string(flipped))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	tm := newTestManager(t, time.Hour)
	expired := &TokenManager{secret: tm.secret, ttl: -time.Minute}
	app := newTestApp(t, tm)

	pair, err := expired.Issue(adminIdentity())
	require.NoError(t, err)

	resp := probe(t, app, pair.Token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuardsWithoutPrincipal(t *testing.T) {
	tm := newTestManager(t, time.Hour)

	t.Run("require authenticated", func(t *testing.T) {
		app := newTestApp(t, tm, RequireAuthenticated())
		resp := probe(t, app, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("require authority", func(t *testing.T) {
		app := newTestApp(t, tm, RequireAuthority("ADMIN"))
		resp := probe(t, app, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGuardsWithPrincipal(t *testing.T) {
	tm := newTestManager(t, time.Hour)
	pair, err := tm.Issue(adminIdentity())
	require.NoError(t, err)

	t.Run("authority satisfied by role", func(t *testing.T) {
		app := newTestApp(t, tm, RequireAuthority("ADMIN"))
		resp := probe(t, app, pair.Token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("authority satisfied by permission", func(t *testing.T) {
		app := newTestApp(t, tm, RequireAuthority("PERMISSON_CREATE_CAR"))
		resp := probe(t, app, pair.Token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing authority is forbidden", func(t *testing.T) {
		app := newTestApp(t, tm, RequireAuthority("PERMISSON_DELETE_USER"))
		resp := probe(t, app, pair.Token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("permission guard ignores role names", func(t *testing.T) {
		app := newTestApp(t, tm, RequirePermission("ADMIN"))
		resp := probe(t, app, pair.Token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
