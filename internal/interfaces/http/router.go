package http

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/auth"
	"github.com/caterkit/caterkit-api/internal/application/checkout"
	"github.com/caterkit/caterkit-api/internal/application/tenantctx"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	"github.com/caterkit/caterkit-api/internal/infrastructure/ratelimit"
	"github.com/caterkit/caterkit-api/pkg/logger"
	"github.com/caterkit/caterkit-api/pkg/metrics"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Resolver     *tenantctx.Resolver
	AuthUC       *auth.UseCase
	MenuUC       *usecase.MenuUseCase
	OrderUC      *usecase.OrderUseCase
	QuoteUC      *usecase.QuoteUseCase
	TimeSlotUC   *usecase.TimeSlotUseCase
	SettingsUC   *usecase.SettingsUseCase
	MemberUC     *usecase.MemberUseCase
	CheckoutUC   *checkout.UseCase
	Sessions     *SessionStore
	LoginLimiter ratelimit.Store
	JWTCfg       auth.JWTConfig

	OrderPathPrefix string
	AppName         string
	Secure          bool

	Metrics *metrics.Metrics
	Log     *logger.Logger
}

// Router registers all routes: page routes behind the injector, the public
// ordering API and the admin API.
func Router(app *fiber.App, deps RouterDeps) {
	met := deps.Metrics
	log := deps.Log
	orderPrefix := deps.OrderPathPrefix
	if orderPrefix == "" {
		orderPrefix = "/order"
	}

	app.Use(observeRequests(met))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(met.Handler()))

	// Page routing policy: the injector resolves the tenant and rewrites.
	app.Use(TenantMiddleware(deps.Resolver, orderPrefix, met, log))

	menuHandler := NewMenuHandler(deps.MenuUC, log)
	orderHandler := NewOrderHandler(deps.OrderUC, log)
	quoteHandler := NewQuoteHandler(deps.QuoteUC, log)
	slotHandler := NewTimeSlotHandler(deps.TimeSlotUC, log)
	settingsHandler := NewSettingsHandler(deps.SettingsUC, log)
	memberHandler := NewMemberHandler(deps.MemberUC, log)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC, log)
	siteHandler := NewSiteHandler(deps.MenuUC, deps.TimeSlotUC, deps.SettingsUC, deps.AppName, log)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions, deps.JWTCfg, met, log, deps.Secure)

	// Pages
	app.Get("/", siteHandler.Home)
	app.Get(TenantNotFoundPath, siteHandler.TenantNotFound)
	app.Get(orderPrefix, siteHandler.Storefront)
	app.Get(orderPrefix+"/*", siteHandler.Storefront)

	api := app.Group("/api")

	// Public ordering API; tenant context comes from the propagation headers.
	public := api.Group("/public", TenantFromHeaders())
	public.Get("/menu", menuHandler.PublicList)
	public.Get("/time-slots", slotHandler.PublicList)
	public.Get("/settings", settingsHandler.PublicGet)
	public.Post("/quotes", quoteHandler.PublicCreate)
	public.Post("/checkout", checkoutHandler.Checkout)
	public.Get("/checkout/verify", checkoutHandler.Verify)

	admin := api.Group("/admin")

	// Auth endpoints (both session modes). Login is rate limited by IP.
	limited := RateLimitMiddleware(deps.LoginLimiter, log)
	csrf := CSRFMiddleware(met)
	authGroup := admin.Group("/auth")
	authGroup.Post("/login", limited, authHandler.Login)
	authGroup.Delete("/login", csrf, authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/legacy/login", limited, authHandler.LegacyLogin)
	authGroup.Delete("/legacy/login", authHandler.LegacyLogout)

	// Protected admin API: JWT session plus CSRF on state-changing calls.
	// The guards hang off each resource group, never off the bare admin
	// prefix; the legacy cookie routes below see no JWT middleware.
	jwtAuth := JWTAuthMiddleware(deps.AuthUC, met, log)

	orders := admin.Group("/orders", jwtAuth, csrf)
	orders.Get("/", RequirePermission(rbac.ResourceOrders, rbac.ActionRead, met), orderHandler.List)
	orders.Get("/:id", RequirePermission(rbac.ResourceOrders, rbac.ActionRead, met), orderHandler.GetByID)
	orders.Post("/", RequirePermission(rbac.ResourceOrders, rbac.ActionCreate, met), orderHandler.Create)
	orders.Patch("/:id", RequirePermission(rbac.ResourceOrders, rbac.ActionUpdate, met), orderHandler.Update)
	orders.Delete("/:id", RequirePermission(rbac.ResourceOrders, rbac.ActionDelete, met), orderHandler.Delete)

	menu := admin.Group("/menu", jwtAuth, csrf)
	menu.Get("/", RequirePermission(rbac.ResourceMenu, rbac.ActionRead, met), menuHandler.List)
	menu.Get("/:id", RequirePermission(rbac.ResourceMenu, rbac.ActionRead, met), menuHandler.GetByID)
	menu.Post("/", RequirePermission(rbac.ResourceMenu, rbac.ActionCreate, met), menuHandler.Create)
	menu.Put("/:id", RequirePermission(rbac.ResourceMenu, rbac.ActionUpdate, met), menuHandler.Update)
	menu.Delete("/:id", RequirePermission(rbac.ResourceMenu, rbac.ActionDelete, met), menuHandler.Delete)

	quotes := admin.Group("/quotes", jwtAuth, csrf)
	quotes.Get("/", RequireRole(rbac.RoleStaff, met), quoteHandler.List)
	quotes.Get("/:id", RequireRole(rbac.RoleStaff, met), quoteHandler.GetByID)
	quotes.Patch("/:id", RequireRole(rbac.RoleAdmin, met), quoteHandler.Update)
	quotes.Post("/:id/send", RequireRole(rbac.RoleAdmin, met), quoteHandler.Send)
	quotes.Delete("/:id", RequireRole(rbac.RoleAdmin, met), quoteHandler.Delete)

	slots := admin.Group("/time-slots", jwtAuth, csrf)
	slots.Get("/", RequireRole(rbac.RoleStaff, met), slotHandler.List)
	slots.Post("/", RequirePermission(rbac.ResourceSettings, rbac.ActionUpdate, met), slotHandler.Create)
	slots.Put("/:id", RequirePermission(rbac.ResourceSettings, rbac.ActionUpdate, met), slotHandler.Update)
	slots.Delete("/:id", RequirePermission(rbac.ResourceSettings, rbac.ActionUpdate, met), slotHandler.Delete)

	settings := admin.Group("/settings", jwtAuth, csrf)
	settings.Get("/", RequireRole(rbac.RoleStaff, met), settingsHandler.Get)
	settings.Patch("/", RequirePermission(rbac.ResourceSettings, rbac.ActionUpdate, met), settingsHandler.Update)

	members := admin.Group("/members", jwtAuth, csrf)
	members.Get("/", RequirePermission(rbac.ResourceMembers, rbac.ActionRead, met), memberHandler.List)
	members.Post("/", RequirePermission(rbac.ResourceMembers, rbac.ActionCreate, met), memberHandler.Add)
	members.Patch("/:id", RequirePermission(rbac.ResourceMembers, rbac.ActionUpdate, met), memberHandler.UpdateRole)
	members.Delete("/:id", RequirePermission(rbac.ResourceMembers, rbac.ActionDelete, met), memberHandler.Remove)

	// Legacy single-tenant back-office reads: Mode A cookie feeding the same
	// authorization path through the AdminIdentity capability.
	legacy := admin.Group("/legacy", LegacyAuthMiddleware(deps.Sessions, met))
	legacy.Get("/orders", RequirePermission(rbac.ResourceOrders, rbac.ActionRead, met), orderHandler.List)
	legacy.Get("/menu", RequirePermission(rbac.ResourceMenu, rbac.ActionRead, met), menuHandler.List)
	legacy.Get("/settings", RequireRole(rbac.RoleStaff, met), settingsHandler.Get)
}

// observeRequests records count and latency for every finished request.
func observeRequests(met *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		met.ObserveRequest(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
			time.Since(start).Seconds(),
		)
		return err
	}
}
