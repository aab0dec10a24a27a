package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/pricing"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// OrderUseCase back-office order management. Customer checkout lives in the
// checkout package; this covers staff reads/updates and admin manual orders.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase builds the use case.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// NextOrderNumber generates the per-tenant daily sequence number,
// e.g. CK-20260828-0042.
func NextOrderNumber(ctx context.Context, orders repository.OrderRepository, tenantID string, now time.Time) (string, error) {
	n, err := orders.CountForDay(ctx, tenantID, now)
	if err != nil {
		return "", fmt.Errorf("count orders for day: %w", err)
	}
	return fmt.Sprintf("CK-%s-%04d", now.Format("20060102"), n+1), nil
}

// Create records a manual order (phone/email orders entered by an admin).
// Payment is settled out of band, so the order starts confirmed.
func (uc *OrderUseCase) Create(ctx context.Context, tenantID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerName == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	subtotal := decimal.Zero
	for _, line := range in.Lines {
		if line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(pricing.LineTotal(line.UnitPrice, line.Quantity))
	}
	items, err := json.Marshal(in.Lines)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	number, err := NextOrderNumber(ctx, uc.orders, tenantID, now)
	if err != nil {
		return nil, err
	}
	order := &entity.Order{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Number:        number,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		DeliveryDate:  in.DeliveryDate,
		TimeSlotID:    in.TimeSlotID,
		Items:         items,
		Subtotal:      subtotal,
		Total:         subtotal,
		Status:        entity.OrderStatusConfirmed,
		PaymentStatus: entity.PaymentStatusPending,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List returns the tenant's orders, newest first.
func (uc *OrderUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orders.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// GetByID returns one order, scoped to the tenant.
func (uc *OrderUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// Update applies status/notes changes by staff.
func (uc *OrderUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if in.Status != nil {
		if !entity.ValidOrderStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		order.Status = *in.Status
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	order.UpdatedAt = time.Now()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete removes an order (admin only, per the permission table).
func (uc *OrderUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.orders.Delete(ctx, tenantID, id)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		DeliveryDate:  o.DeliveryDate,
		TimeSlotID:    o.TimeSlotID,
		Items:         o.Items,
		Subtotal:      o.Subtotal,
		Total:         o.Total,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
