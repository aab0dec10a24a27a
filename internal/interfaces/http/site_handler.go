package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// SiteHandler serves the page routes behind the injector: marketing root,
// the ordering storefront and the tenant-not-found page.
type SiteHandler struct {
	menu     *usecase.MenuUseCase
	slots    *usecase.TimeSlotUseCase
	settings *usecase.SettingsUseCase
	appName  string
	log      *logger.Logger
}

// NewSiteHandler builds the site handler.
func NewSiteHandler(menu *usecase.MenuUseCase, slots *usecase.TimeSlotUseCase, settings *usecase.SettingsUseCase, appName string, log *logger.Logger) *SiteHandler {
	return &SiteHandler{menu: menu, slots: slots, settings: settings, appName: appName, log: log}
}

// Home is the tenant-agnostic marketing root.
func (h *SiteHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"name": h.appName, "status": "ok"})
}

// TenantNotFound is the internal page the injector rewrites to when an
// ordering request cannot be tied to an active tenant. The URL the client
// sees is the one they requested, not this path.
func (h *SiteHandler) TenantNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "No active catering business is configured for this address.",
	})
}

// Storefront serves the ordering application root: the tenant's public
// branding, available menu and active delivery windows in one payload.
// The injector guarantees a resolved tenant on this route.
func (h *SiteHandler) Storefront(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return h.TenantNotFound(c)
	}

	settings, err := h.settings.Get(c.UserContext(), tenantID, false)
	if err != nil {
		return internalError(c, h.log, err)
	}
	menu, err := h.menu.List(c.UserContext(), tenantID, true)
	if err != nil {
		return internalError(c, h.log, err)
	}
	slots, err := h.slots.List(c.UserContext(), tenantID, true)
	if err != nil {
		return internalError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"tenant":     GetTenantSlug(c),
		"settings":   settings,
		"menu":       menu,
		"time_slots": slots,
	})
}
