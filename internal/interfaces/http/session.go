package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/securecookie"

	"github.com/caterkit/caterkit-api/internal/domain"
)

// LegacySessionCookie is the name of the legacy admin session cookie.
const LegacySessionCookie = "ck_admin_session"

const legacySessionTTL = 24 * time.Hour

// LegacySession is the signed cookie payload for the single-tenant admin
// flow. The tenant id is trusted as-is; membership is not re-verified, which
// is only acceptable while exactly one tenant shares the deployment.
type LegacySession struct {
	Authenticated bool      `json:"authenticated"`
	TenantID      string    `json:"tenantId"`
	TenantSlug    string    `json:"tenantSlug"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// SessionStore encodes and decodes the legacy session cookie.
type SessionStore struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewSessionStore builds the store. hashKey signs the cookie; blockKey is
// optional and adds AES encryption when present.
func NewSessionStore(hashKey, blockKey []byte, secure bool) *SessionStore {
	if len(blockKey) == 0 {
		blockKey = nil
	}
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(legacySessionTTL.Seconds()))
	return &SessionStore{codec: codec, secure: secure}
}

// Create issues a 24h session cookie for the tenant.
func (s *SessionStore) Create(c *fiber.Ctx, tenantID, tenantSlug string) error {
	sess := LegacySession{
		Authenticated: true,
		TenantID:      tenantID,
		TenantSlug:    tenantSlug,
		ExpiresAt:     time.Now().Add(legacySessionTTL),
	}
	encoded, err := s.codec.Encode(LegacySessionCookie, sess)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     LegacySessionCookie,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(legacySessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Read returns the session or nil. Parse failures are "no session", never an
// error; an expired session clears the cookie before reporting no session.
func (s *SessionStore) Read(c *fiber.Ctx) *LegacySession {
	raw := c.Cookies(LegacySessionCookie)
	if raw == "" {
		return nil
	}
	var sess LegacySession
	if err := s.codec.Decode(LegacySessionCookie, raw, &sess); err != nil {
		return nil
	}
	if !sess.Authenticated || !time.Now().Before(sess.ExpiresAt) {
		s.Clear(c)
		return nil
	}
	return &sess
}

// RequireTenantID returns the session's tenant id or ErrUnauthorized.
func (s *SessionStore) RequireTenantID(c *fiber.Ctx) (string, error) {
	sess := s.Read(c)
	if sess == nil {
		return "", domain.ErrUnauthorized
	}
	return sess.TenantID, nil
}

// Clear deletes the session cookie (logout).
func (s *SessionStore) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     LegacySessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
