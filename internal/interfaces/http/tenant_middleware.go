package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/tenantctx"
	"github.com/caterkit/caterkit-api/pkg/logger"
	"github.com/caterkit/caterkit-api/pkg/metrics"
)

// Propagation headers stamped by the injector and read downstream.
const (
	HeaderTraceID    = "X-Trace-Id"
	HeaderPathname   = "X-Pathname"
	HeaderTenantSlug = "X-Tenant-Slug"
	HeaderTenantID   = "X-Tenant-Id"
)

// Locals keys for tenant context in Fiber.
const (
	LocalTraceID    = "trace_id"
	LocalTenantSlug = "tenant_slug"
	LocalTenantID   = "tenant_id"
)

// TenantNotFoundPath is the internal page served when an ordering request
// cannot be tied to an active tenant. The client-visible URL is preserved.
const TenantNotFoundPath = "/tenant-not-found"

// Sub-paths that get the ordering prefix prepended on the ordering subdomain.
var orderSubPaths = []string{"/cart", "/checkout", "/order-success"}

// TenantMiddleware is the request context injector for page routes. It runs
// the resolver once per request and decides the routing consequence: stamp
// tenant headers, rewrite to the ordering app, or rewrite to the not-found
// page. API routes and static assets bypass it and recover tenant context
// from the propagation headers instead.
func TenantMiddleware(resolver *tenantctx.Resolver, orderPrefix string, met *metrics.Metrics, log *logger.Logger) fiber.Handler {
	if orderPrefix == "" {
		orderPrefix = "/order"
	}
	return func(c *fiber.Ctx) error {
		path := c.Path()

		if isInjectorExempt(path) {
			return c.Next()
		}
		// RestartRouting re-enters the middleware chain; resolve once.
		if c.Locals(LocalTraceID) != nil {
			return c.Next()
		}

		traceID := uuid.New().String()
		c.Locals(LocalTraceID, traceID)
		c.Set(HeaderTraceID, traceID)
		c.Set(HeaderPathname, path)

		hostname := stripPort(strings.ToLower(c.Hostname()))
		// Slug overrides are for server-side callers of Resolve that already
		// know the tenant; nothing is read from the inbound request.
		res := resolver.Resolve(c.UserContext(), hostname, path, "")
		met.IncResolution(res.Outcome)

		switch res.Outcome {
		case tenantctx.OutcomeNone:
			// Tenant-agnostic marketing content is legal.
			return c.Next()

		case tenantctx.OutcomeUnresolved:
			log.Warn().
				Str("trace_id", traceID).
				Str("hostname", hostname).
				Str("path", path).
				Msg("no active tenant for request, serving not-found page")
			c.Path(TenantNotFoundPath)
			return c.RestartRouting()
		}

		c.Locals(LocalTenantSlug, res.Slug)
		c.Locals(LocalTenantID, res.TenantID)
		c.Set(HeaderTenantSlug, res.Slug)
		c.Set(HeaderTenantID, res.TenantID)
		c.Request().Header.Set(HeaderTenantSlug, res.Slug)
		c.Request().Header.Set(HeaderTenantID, res.TenantID)

		if tenantctx.HasOrderSubdomain(hostname) {
			switch {
			case path == "/":
				c.Path(orderPrefix)
				return c.RestartRouting()
			case isOrderSubPath(path) && !resolver.IsOrderPath(path):
				c.Path(orderPrefix + path)
				return c.RestartRouting()
			}
		}
		return c.Next()
	}
}

// TenantFromHeaders recovers tenant context from the propagation headers for
// API routes; they never run the resolver themselves.
func TenantFromHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderTenantID)
		slug := c.Get(HeaderTenantSlug)
		if id == "" || slug == "" {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_REQUIRED", Message: "tenant context missing"})
		}
		c.Locals(LocalTenantID, id)
		c.Locals(LocalTenantSlug, slug)
		return c.Next()
	}
}

// GetTraceID returns the request trace id, empty outside the injector.
func GetTraceID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTraceID).(string)
	return s
}

// GetTenantID returns the resolved tenant id from the context.
func GetTenantID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTenantID).(string)
	return s
}

// GetTenantSlug returns the resolved tenant slug from the context.
func GetTenantSlug(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTenantSlug).(string)
	return s
}

func isInjectorExempt(path string) bool {
	return strings.HasPrefix(path, "/api/") || path == "/api" ||
		path == "/metrics" || path == "/healthz" ||
		strings.HasPrefix(path, "/static/") ||
		path == TenantNotFoundPath
}

func isOrderSubPath(path string) bool {
	for _, p := range orderSubPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func stripPort(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}
