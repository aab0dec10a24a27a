package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/pkg/metrics"
)

// CSRF cookie and header names.
const (
	CSRFCookie = "ck_csrf"
	HeaderCSRF = "X-CSRF-Token"
)

const csrfTTL = 24 * time.Hour

// IssueCSRFToken sets a fresh CSRF cookie and returns the token. Issued at
// login; the admin UI echoes it back in the X-CSRF-Token header.
func IssueCSRFToken(c *fiber.Ctx, secure bool) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	c.Cookie(&fiber.Cookie{
		Name:     CSRFCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(csrfTTL.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return token, nil
}

// ClearCSRFToken deletes the CSRF cookie.
func ClearCSRFToken(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CSRFCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// CSRFMiddleware enforces the double-submit check on state-changing methods.
// A valid session without a matching token is still refused.
func CSRFMiddleware(met *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		cookie := c.Cookies(CSRFCookie)
		header := c.Get(HeaderCSRF)
		if cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			met.IncAuthFailure("csrf")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "CSRF_MISMATCH",
				Message: "missing or invalid CSRF token",
			})
		}
		return c.Next()
	}
}
