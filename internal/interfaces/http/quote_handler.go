package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// QuoteHandler public quote intake plus back-office quote management.
type QuoteHandler struct {
	uc  *usecase.QuoteUseCase
	log *logger.Logger
}

// NewQuoteHandler builds the quote handler.
func NewQuoteHandler(uc *usecase.QuoteUseCase, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{uc: uc, log: log}
}

// PublicCreate records a quote request submitted from the public site.
func (h *QuoteHandler) PublicCreate(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	quote, err := h.uc.Create(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name and email are required"})
		case errors.Is(err, domain.ErrTenantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant not found"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// List returns the tenant's quotes.
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	quotes, err := h.uc.List(c.UserContext(), GetAdmin(c).TenantID(), page)
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(quotes)
}

// GetByID returns one quote.
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	quote, err := h.uc.GetByID(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, err)
	}
	if quote == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "quote not found"})
	}
	return c.JSON(quote)
}

// Update prices a quote or changes its status.
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	quote, err := h.uc.Update(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown status or negative amount"})
		}
		return internalError(c, h.log, err)
	}
	if quote == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "quote not found"})
	}
	return c.JSON(quote)
}

// Send renders and emails the quote PDF, marking the quote sent.
func (h *QuoteHandler) Send(c *fiber.Ctx) error {
	quote, err := h.uc.Send(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quote must be priced before sending"})
		}
		return internalError(c, h.log, err)
	}
	if quote == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "quote not found"})
	}
	return c.JSON(quote)
}

// Delete removes a quote.
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id")); err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
