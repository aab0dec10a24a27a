package usecase

import (
	"context"
	"time"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// SettingsUseCase per-tenant business settings.
type SettingsUseCase struct {
	repo    repository.SettingsRepository
	tenants repository.TenantRepository
}

// NewSettingsUseCase builds the use case.
func NewSettingsUseCase(repo repository.SettingsRepository, tenants repository.TenantRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, tenants: tenants}
}

// Get returns the tenant's settings, falling back to defaults when the row
// does not exist yet. includeOwnerFields controls whether the payout block is
// included (staff reads get the public subset).
func (uc *SettingsUseCase) Get(ctx context.Context, tenantID string, includeOwnerFields bool) (*dto.SettingsResponse, error) {
	s, err := uc.repo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		tenant, err := uc.tenants.GetByID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, domain.ErrTenantNotFound
		}
		s = &entity.Settings{TenantID: tenantID, DisplayName: tenant.Name}
	}
	out := toSettingsResponse(s)
	if !includeOwnerFields {
		out.PayoutIBAN = ""
	}
	return out, nil
}

// Update applies a partial settings update. The owner-only block (contact,
// payout) is rejected with ErrForbidden unless the caller holds owner.
func (uc *SettingsUseCase) Update(ctx context.Context, tenantID, callerRole string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if in.HasOwnerOnlyFields() && !rbac.Satisfies(callerRole, rbac.RoleOwner) {
		return nil, domain.ErrForbidden
	}

	s, err := uc.repo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.Settings{TenantID: tenantID}
	}
	if in.DisplayName != nil {
		s.DisplayName = *in.DisplayName
	}
	if in.LogoURL != nil {
		s.LogoURL = *in.LogoURL
	}
	if in.PrimaryColor != nil {
		s.PrimaryColor = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		s.SecondaryColor = *in.SecondaryColor
	}
	if in.MinimumOrder != nil {
		if in.MinimumOrder.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		s.MinimumOrder = *in.MinimumOrder
	}
	if in.OrdersPausedMsg != nil {
		s.OrdersPausedMsg = *in.OrdersPausedMsg
	}
	if in.ContactEmail != nil {
		s.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		s.ContactPhone = *in.ContactPhone
	}
	if in.PayoutIBAN != nil {
		s.PayoutIBAN = *in.PayoutIBAN
	}
	s.UpdatedAt = time.Now()

	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		DisplayName:     s.DisplayName,
		LogoURL:         s.LogoURL,
		PrimaryColor:    s.PrimaryColor,
		SecondaryColor:  s.SecondaryColor,
		MinimumOrder:    s.MinimumOrder,
		ContactEmail:    s.ContactEmail,
		ContactPhone:    s.ContactPhone,
		PayoutIBAN:      s.PayoutIBAN,
		OrdersPausedMsg: s.OrdersPausedMsg,
		UpdatedAt:       s.UpdatedAt,
	}
}
