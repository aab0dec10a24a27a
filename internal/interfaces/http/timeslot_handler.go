package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// TimeSlotHandler delivery-window management plus the public listing.
type TimeSlotHandler struct {
	uc  *usecase.TimeSlotUseCase
	log *logger.Logger
}

// NewTimeSlotHandler builds the time-slot handler.
func NewTimeSlotHandler(uc *usecase.TimeSlotUseCase, log *logger.Logger) *TimeSlotHandler {
	return &TimeSlotHandler{uc: uc, log: log}
}

// PublicList serves the ordering site: only active slots.
func (h *TimeSlotHandler) PublicList(c *fiber.Ctx) error {
	slots, err := h.uc.List(c.UserContext(), GetTenantID(c), true)
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(slots)
}

// List serves the back-office: all slots.
func (h *TimeSlotHandler) List(c *fiber.Ctx) error {
	slots, err := h.uc.List(c.UserContext(), GetAdmin(c).TenantID(), false)
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(slots)
}

// Create adds a delivery window.
func (h *TimeSlotHandler) Create(c *fiber.Ctx) error {
	var in dto.TimeSlotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	slot, err := h.uc.Create(c.UserContext(), GetAdmin(c).TenantID(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "label and HH:MM start/end times are required"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// Update replaces a delivery window's fields.
func (h *TimeSlotHandler) Update(c *fiber.Ctx) error {
	var in dto.TimeSlotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	slot, err := h.uc.Update(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "label and HH:MM start/end times are required"})
		}
		return internalError(c, h.log, err)
	}
	if slot == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "time slot not found"})
	}
	return c.JSON(slot)
}

// Delete removes a delivery window.
func (h *TimeSlotHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id")); err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
