package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/auth"
	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	"github.com/caterkit/caterkit-api/pkg/logger"
	"github.com/caterkit/caterkit-api/pkg/metrics"
)

// JWT session cookie names.
const (
	AccessTokenCookie  = "ck_access_token"
	RefreshTokenCookie = "ck_refresh_token"
)

// LocalAdmin is the Locals key holding the authenticated AdminIdentity.
const LocalAdmin = "admin_identity"

// AdminIdentity is the capability both session modes produce. Authorization
// code downstream never needs to know which mode authenticated the caller.
type AdminIdentity interface {
	UserID() string
	TenantID() string
	TenantSlug() string
	Role() string
}

// jwtIdentity wraps the membership-verified JWT identity (Mode B).
type jwtIdentity struct{ id *auth.Identity }

func (j jwtIdentity) UserID() string     { return j.id.User.ID }
func (j jwtIdentity) TenantID() string   { return j.id.TenantID }
func (j jwtIdentity) TenantSlug() string { return j.id.TenantSlug }
func (j jwtIdentity) Role() string       { return j.id.Role }

// legacyIdentity wraps the signed-cookie session (Mode A). The cookie carries
// no user or role; the legacy back-office acts as admin on its one tenant.
type legacyIdentity struct{ sess *LegacySession }

func (l legacyIdentity) UserID() string     { return "" }
func (l legacyIdentity) TenantID() string   { return l.sess.TenantID }
func (l legacyIdentity) TenantSlug() string { return l.sess.TenantSlug }
func (l legacyIdentity) Role() string       { return rbac.RoleAdmin }

// JWTAuthMiddleware authenticates via the access-token cookie (Bearer header
// accepted as a fallback for API clients) and re-verifies the membership.
func JWTAuthMiddleware(uc *auth.UseCase, met *metrics.Metrics, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AccessTokenCookie)
		if token == "" {
			token = bearerToken(c)
		}
		identity, err := uc.RequireAdmin(c.UserContext(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnauthorized):
				met.IncAuthFailure("401")
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
			case errors.Is(err, domain.ErrNoMembership):
				met.IncAuthFailure("403")
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_MEMBERSHIP", Message: "no membership for this tenant"})
			}
			return internalError(c, log, err)
		}
		c.Locals(LocalAdmin, AdminIdentity(jwtIdentity{id: identity}))
		return c.Next()
	}
}

// LegacyAuthMiddleware authenticates via the signed legacy cookie (Mode A).
func LegacyAuthMiddleware(store *SessionStore, met *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := store.Read(c)
		if sess == nil {
			met.IncAuthFailure("401")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		c.Locals(LocalAdmin, AdminIdentity(legacyIdentity{sess: sess}))
		return c.Next()
	}
}

// GetAdmin returns the authenticated identity, nil before auth middleware.
func GetAdmin(c *fiber.Ctx) AdminIdentity {
	id, _ := c.Locals(LocalAdmin).(AdminIdentity)
	return id
}

// RequirePermission guards a route with the fixed permission table.
// No identity is 401; an insufficient role is 403, naming the required role.
func RequirePermission(resource, action string, met *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetAdmin(c)
		if id == nil {
			met.IncAuthFailure("401")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		if !rbac.HasPermission(id.Role(), resource, action) {
			met.IncAuthFailure("403")
			msg := "insufficient role"
			if min, ok := rbac.MinRole(resource, action); ok {
				msg = fmt.Sprintf("requires role %s or higher", min)
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: msg})
		}
		return c.Next()
	}
}

// RequireRole guards a route with a plain hierarchical role check, for
// operations not covered by the permission table.
func RequireRole(minRole string, met *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetAdmin(c)
		if id == nil {
			met.IncAuthFailure("401")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		if !rbac.Satisfies(id.Role(), minRole) {
			met.IncAuthFailure("403")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: fmt.Sprintf("requires role %s or higher", minRole)})
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// internalError logs the failure with its trace and tenant context and
// surfaces a generic 500; database details never reach the client.
func internalError(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().Err(err).
		Str("trace_id", GetTraceID(c)).
		Str("tenant_id", GetTenantID(c)).
		Str("path", c.Path()).
		Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
}
