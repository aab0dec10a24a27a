package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/auth"
	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/pkg/logger"
	"github.com/caterkit/caterkit-api/pkg/metrics"
)

// AuthHandler serves both session modes: the JWT admin session and the
// legacy signed-cookie session.
type AuthHandler struct {
	uc       *auth.UseCase
	sessions *SessionStore
	jwtCfg   auth.JWTConfig
	met      *metrics.Metrics
	log      *logger.Logger
	secure   bool
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.UseCase, sessions *SessionStore, jwtCfg auth.JWTConfig, met *metrics.Metrics, log *logger.Logger, secure bool) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions, jwtCfg: jwtCfg, met: met, log: log, secure: secure}
}

// Login handles POST /api/admin/auth/login. A correct password with zero
// memberships is refused with 403 and no session cookie survives the
// response.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email and password are required"})
	}

	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			h.met.IncAuthFailure("401")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"})
		case errors.Is(err, domain.ErrNoMembership):
			// Authenticated but not an admin anywhere; invalidate any
			// session material before refusing.
			h.clearAuthCookies(c)
			h.sessions.Clear(c)
			h.met.IncAuthFailure("403")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User is not authorized as admin"})
		case errors.Is(err, domain.ErrTenantSelection):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TENANT_SELECTION_REQUIRED", Message: "more than one membership; pass tenantSlug"})
		}
		return internalError(c, h.log, err)
	}

	h.setAuthCookies(c, out.AccessToken, out.RefreshToken)
	if _, err := IssueCSRFToken(c, h.secure); err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(out)
}

// Logout handles DELETE /api/admin/auth/login (behind CSRF).
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearAuthCookies(c)
	ClearCSRFToken(c, h.secure)
	return c.JSON(fiber.Map{"success": true})
}

// Session handles GET /api/admin/auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	user, claims, err := h.uc.GetUser(c.UserContext(), c.Cookies(AccessTokenCookie))
	if err != nil {
		return internalError(c, h.log, err)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.SessionResponse{Authenticated: false})
	}
	return c.JSON(dto.SessionResponse{
		Authenticated: true,
		TenantSlug:    claims.TenantSlug,
		Role:          claims.Role,
		User: &dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Refresh handles POST /api/admin/auth/refresh: rotates the token pair,
// re-verifying the membership on the way.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.uc.Refresh(c.UserContext(), c.Cookies(RefreshTokenCookie))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNoMembership) {
			h.clearAuthCookies(c)
			h.met.IncAuthFailure("401")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "session expired"})
		}
		return internalError(c, h.log, err)
	}
	h.setAuthCookies(c, out.AccessToken, out.RefreshToken)
	return c.JSON(out)
}

// LegacyLoginRequest credentials for the legacy single-tenant flow.
type LegacyLoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	TenantSlug string `json:"tenantSlug"`
}

// LegacyLogin handles POST /api/admin/auth/legacy/login: a bare password
// check followed by the signed cookie. No membership verification, by the
// legacy trust model.
func (h *AuthHandler) LegacyLogin(c *fiber.Ctx) error {
	var in LegacyLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Email == "" || in.Password == "" || in.TenantSlug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password and tenantSlug are required"})
	}

	if _, err := h.uc.VerifyPassword(c.UserContext(), in.Email, in.Password); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.met.IncAuthFailure("401")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"})
		}
		return internalError(c, h.log, err)
	}

	tenant, err := h.uc.TenantBySlug(c.UserContext(), in.TenantSlug)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "no active tenant for this slug"})
		}
		return internalError(c, h.log, err)
	}

	if err := h.sessions.Create(c, tenant.ID, tenant.Slug); err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "tenantSlug": tenant.Slug})
}

// LegacyLogout handles DELETE /api/admin/auth/legacy/login.
func (h *AuthHandler) LegacyLogout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, access, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    access,
		Path:     "/",
		MaxAge:   h.jwtCfg.AccessExpMinutes * 60,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refresh,
		Path:     "/api/admin/auth",
		MaxAge:   h.jwtCfg.RefreshExpMinutes * 60,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, ck := range []struct{ name, path string }{
		{AccessTokenCookie, "/"},
		{RefreshTokenCookie, "/api/admin/auth"},
	} {
		c.Cookie(&fiber.Cookie{
			Name:     ck.name,
			Value:    "",
			Path:     ck.path,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   h.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}
