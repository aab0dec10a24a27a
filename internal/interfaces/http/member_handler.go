package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// MemberHandler tenant membership management.
type MemberHandler struct {
	uc  *usecase.MemberUseCase
	log *logger.Logger
}

// NewMemberHandler builds the member handler.
func NewMemberHandler(uc *usecase.MemberUseCase, log *logger.Logger) *MemberHandler {
	return &MemberHandler{uc: uc, log: log}
}

// List returns the tenant's members.
func (h *MemberHandler) List(c *fiber.Ctx) error {
	members, err := h.uc.List(c.UserContext(), GetAdmin(c).TenantID())
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(members)
}

// Add attaches a user to the tenant, creating the account when needed.
func (h *MemberHandler) Add(c *fiber.Ctx) error {
	var in dto.AddMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	member, err := h.uc.Add(c.UserContext(), GetAdmin(c).TenantID(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, a known role and an 8+ char password for new users are required"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_MEMBER", Message: "user is already a member of this tenant"})
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email already registered"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// UpdateRole changes a member's role.
func (h *MemberHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	err := h.uc.UpdateRole(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown role"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "membership not found"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Remove revokes a membership.
func (h *MemberHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), GetAdmin(c).TenantID(), c.Params("id")); err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
