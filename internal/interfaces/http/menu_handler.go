package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// MenuHandler admin menu management plus the public menu listing.
type MenuHandler struct {
	uc  *usecase.MenuUseCase
	log *logger.Logger
}

// NewMenuHandler builds the menu handler.
func NewMenuHandler(uc *usecase.MenuUseCase, log *logger.Logger) *MenuHandler {
	return &MenuHandler{uc: uc, log: log}
}

// PublicList serves the ordering site: only available items.
func (h *MenuHandler) PublicList(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext(), GetTenantID(c), true)
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(items)
}

// List serves the back-office: the full menu for the caller's tenant.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext(), GetAdmin(c).TenantID(), false)
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(items)
}

// GetByID returns one item.
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetByID(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, err)
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "menu item not found"})
	}
	return c.JSON(item)
}

// Create adds a menu item.
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	item, err := h.uc.Create(c.UserContext(), GetAdmin(c).TenantID(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required and price must not be negative"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update applies a partial update.
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	item, err := h.uc.Update(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "price must not be negative"})
		}
		return internalError(c, h.log, err)
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "menu item not found"})
	}
	return c.JSON(item)
}

// Delete removes an item.
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id")); err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
