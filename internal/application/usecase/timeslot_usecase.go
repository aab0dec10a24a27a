package usecase

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// TimeSlotUseCase CRUD for a tenant's delivery windows.
type TimeSlotUseCase struct {
	repo repository.TimeSlotRepository
}

// NewTimeSlotUseCase builds the use case.
func NewTimeSlotUseCase(repo repository.TimeSlotRepository) *TimeSlotUseCase {
	return &TimeSlotUseCase{repo: repo}
}

// Create adds a delivery window.
func (uc *TimeSlotUseCase) Create(ctx context.Context, tenantID string, in dto.TimeSlotRequest) (*dto.TimeSlotResponse, error) {
	if in.Label == "" || !timeOfDay.MatchString(in.StartTime) || !timeOfDay.MatchString(in.EndTime) || in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	slot := &entity.TimeSlot{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Label:     in.Label,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Capacity:  in.Capacity,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return toTimeSlotResponse(slot), nil
}

// List returns the tenant's slots. onlyActive hides disabled slots for the
// public ordering site.
func (uc *TimeSlotUseCase) List(ctx context.Context, tenantID string, onlyActive bool) ([]*dto.TimeSlotResponse, error) {
	slots, err := uc.repo.ListByTenant(ctx, tenantID, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, toTimeSlotResponse(s))
	}
	return out, nil
}

// Update replaces a slot's fields.
func (uc *TimeSlotUseCase) Update(ctx context.Context, tenantID, id string, in dto.TimeSlotRequest) (*dto.TimeSlotResponse, error) {
	slot, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, nil
	}
	if in.Label != "" {
		slot.Label = in.Label
	}
	if in.StartTime != "" {
		if !timeOfDay.MatchString(in.StartTime) {
			return nil, domain.ErrInvalidInput
		}
		slot.StartTime = in.StartTime
	}
	if in.EndTime != "" {
		if !timeOfDay.MatchString(in.EndTime) {
			return nil, domain.ErrInvalidInput
		}
		slot.EndTime = in.EndTime
	}
	if in.Capacity >= 0 {
		slot.Capacity = in.Capacity
	}
	if in.Active != nil {
		slot.Active = *in.Active
	}
	slot.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return toTimeSlotResponse(slot), nil
}

// Delete removes a slot.
func (uc *TimeSlotUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.repo.Delete(ctx, tenantID, id)
}

func toTimeSlotResponse(s *entity.TimeSlot) *dto.TimeSlotResponse {
	return &dto.TimeSlotResponse{
		ID:        s.ID,
		Label:     s.Label,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Capacity:  s.Capacity,
		Active:    s.Active,
	}
}
