package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// SettingsHandler per-tenant business settings plus the public subset.
type SettingsHandler struct {
	uc  *usecase.SettingsUseCase
	log *logger.Logger
}

// NewSettingsHandler builds the settings handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, log: log}
}

// PublicGet serves branding and ordering policy to the ordering site,
// never the owner-only payout block.
func (h *SettingsHandler) PublicGet(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.UserContext(), GetTenantID(c), false)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant not found"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(s)
}

// Get serves the back-office. Owners see the payout block; staff and admin
// get the public subset.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	admin := GetAdmin(c)
	includeOwner := rbac.Satisfies(admin.Role(), rbac.RoleOwner)
	s, err := h.uc.Get(c.UserContext(), admin.TenantID(), includeOwner)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant not found"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(s)
}

// Update applies a partial settings update. The use case rejects owner-only
// fields for non-owners on top of the route's admin gate.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	admin := GetAdmin(c)
	s, err := h.uc.Update(c.UserContext(), admin.TenantID(), admin.Role(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "payment and contact settings require the owner role"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "minimum order must not be negative"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(s)
}
