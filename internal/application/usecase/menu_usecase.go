package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// MenuUseCase CRUD for a tenant's catering menu.
type MenuUseCase struct {
	repo repository.MenuRepository
}

// NewMenuUseCase builds the use case.
func NewMenuUseCase(repo repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{repo: repo}
}

// Create adds a menu item to the tenant's menu.
func (uc *MenuUseCase) Create(ctx context.Context, tenantID string, in dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	now := time.Now()
	item := &entity.MenuItem{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Available:   available,
		SortOrder:   in.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// List returns the tenant's menu. onlyAvailable hides unavailable items for
// the public ordering site.
func (uc *MenuUseCase) List(ctx context.Context, tenantID string, onlyAvailable bool) ([]*dto.MenuItemResponse, error) {
	items, err := uc.repo.ListByTenant(ctx, tenantID, onlyAvailable)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toMenuItemResponse(item))
	}
	return out, nil
}

// GetByID returns one item, scoped to the tenant.
func (uc *MenuUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toMenuItemResponse(item), nil
}

// Update applies a partial update to one item.
func (uc *MenuUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.SortOrder != nil {
		item.SortOrder = *in.SortOrder
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// Delete removes one item from the tenant's menu.
func (uc *MenuUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.repo.Delete(ctx, tenantID, id)
}

func toMenuItemResponse(item *entity.MenuItem) *dto.MenuItemResponse {
	return &dto.MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		Available:   item.Available,
		SortOrder:   item.SortOrder,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
