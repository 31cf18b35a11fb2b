package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestTimeoutMiddlewareSetsHandlerDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(requestTimeoutMiddleware(time.Minute))

	var deadline time.Time
	var ok bool
	app.Get("/", func(c *fiber.Ctx) error {
		deadline, ok = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.True(t, ok, "handler context carries the request deadline")
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestRequestTimeoutMiddlewareCancelsHandlerContext(t *testing.T) {
	app := fiber.New()
	app.Use(requestTimeoutMiddleware(5 * time.Millisecond))

	var ctxErr error
	app.Get("/", func(c *fiber.Ctx) error {
		<-c.UserContext().Done()
		ctxErr = c.UserContext().Err()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.ErrorIs(t, ctxErr, context.DeadlineExceeded)
}
