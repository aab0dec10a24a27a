package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	httpapi "github.com/caterkit/caterkit-api/internal/interfaces/http"
)

type stubLimiter struct {
	ok  bool
	err error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.ok, s.err }

func limitedApp(store stubLimiter) *fiber.App {
	app := fiber.New()
	app.Post("/login", httpapi.RateLimitMiddleware(store, testLogger()), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimit_AllowedPassesThrough(t *testing.T) {
	app := limitedApp(stubLimiter{ok: true})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimit_ExceededRefused(t *testing.T) {
	app := limitedApp(stubLimiter{ok: false})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "RATE_LIMITED", out.Code)
}

// A broken store must not become an unlimited endpoint.
func TestRateLimit_StoreErrorFailsClosed(t *testing.T) {
	app := limitedApp(stubLimiter{ok: true, err: errors.New("redis down")})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
