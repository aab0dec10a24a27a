package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/checkout"
	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// CheckoutHandler customer checkout and payment verification.
type CheckoutHandler struct {
	uc  *checkout.UseCase
	log *logger.Logger
}

// NewCheckoutHandler builds the checkout handler.
func NewCheckoutHandler(uc *checkout.UseCase, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, log: log}
}

// Checkout handles POST /api/public/checkout.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Checkout(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderingPaused):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDERING_PAUSED", Message: "ordering is currently paused"})
		case errors.Is(err, domain.ErrBelowMinimumOrder):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BELOW_MINIMUM_ORDER", Message: "cart total is below the minimum order amount"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLOT_FULL", Message: "the selected time slot is fully booked"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid cart, contact details or time slot"})
		case errors.Is(err, domain.ErrTenantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant not found"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Verify handles GET /api/public/checkout/verify?session_id=...; called by
// the order-success page after the payment redirect.
func (h *CheckoutHandler) Verify(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "session_id is required"})
	}
	out, err := h.uc.VerifyPayment(c.UserContext(), GetTenantID(c), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no order for this checkout session"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(out)
}
