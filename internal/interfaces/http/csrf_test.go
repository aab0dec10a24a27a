package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	httpapi "github.com/caterkit/caterkit-api/internal/interfaces/http"
)

func csrfApp() *fiber.App {
	app := fiber.New()
	app.Use(httpapi.CSRFMiddleware(testMetrics()))
	app.Get("/read", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/write", func(c *fiber.Ctx) error { return c.SendString("written") })
	return app
}

func TestCSRF_ReadsPassWithoutToken(t *testing.T) {
	app := csrfApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/read", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCSRF_WriteWithoutTokenRefused(t *testing.T) {
	app := csrfApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/write", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "CSRF_MISMATCH", out.Code)
}

// Cookie and header must both be present and equal; either half alone fails.
func TestCSRF_DoubleSubmit(t *testing.T) {
	app := csrfApp()
	token := "a-known-token-value"

	req := httptest.NewRequest(http.MethodPost, "/write", nil)
	req.AddCookie(&http.Cookie{Name: httpapi.CSRFCookie, Value: token})
	req.Header.Set(httpapi.HeaderCSRF, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/write", nil)
	req.AddCookie(&http.Cookie{Name: httpapi.CSRFCookie, Value: token})
	req.Header.Set(httpapi.HeaderCSRF, "some-other-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/write", nil)
	req.Header.Set(httpapi.HeaderCSRF, token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestIssueCSRFToken_SetsStrictCookie(t *testing.T) {
	app := fiber.New()
	app.Post("/issue", func(c *fiber.Ctx) error {
		token, err := httpapi.IssueCSRFToken(c, false)
		if err != nil {
			return err
		}
		return c.SendString(token)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/issue", nil), -1)
	require.NoError(t, err)

	token := bodyString(t, resp)
	assert.Len(t, token, 64) // 32 random bytes, hex encoded

	ck := respCookie(resp, httpapi.CSRFCookie)
	require.NotNil(t, ck)
	assert.Equal(t, token, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
}
