package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// OrderHandler back-office order management.
type OrderHandler struct {
	uc  *usecase.OrderUseCase
	log *logger.Logger
}

// NewOrderHandler builds the order handler.
func NewOrderHandler(uc *usecase.OrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// List returns the tenant's orders, newest first.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	orders, err := h.uc.List(c.UserContext(), GetAdmin(c).TenantID(), page)
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(orders)
}

// GetByID returns one order.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	return c.JSON(order)
}

// Create records a manual order (phone or email orders entered by an admin).
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	order, err := h.uc.Create(c.UserContext(), GetAdmin(c).TenantID(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer name and at least one valid line are required"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// Update applies status/notes changes by staff.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	order, err := h.uc.Update(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown order status"})
		}
		return internalError(c, h.log, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	return c.JSON(order)
}

// Delete removes an order.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id")); err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
