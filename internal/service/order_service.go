package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

type OrderService interface {
	ListOrders(ctx context.Context, filter analytics.OrderFilter, page pagination.Params) ([]model.Order, int, error)
	GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
	GetStats(ctx context.Context) (model.OrderStats, error)
	UpdateStatus(ctx context.Context, actorID, userID, orderID string, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	repo     repository.OrderRepository
	revenue  RevenueService
	auditSvc AuditService
	now      func() time.Time
}

func NewOrderService(repo repository.OrderRepository, revenue RevenueService, auditSvc AuditService) OrderService {
	return &orderService{repo: repo, revenue: revenue, auditSvc: auditSvc, now: time.Now}
}

func (s *orderService) ListOrders(ctx context.Context, filter analytics.OrderFilter, page pagination.Params) ([]model.Order, int, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	filtered := analytics.FilterOrders(orders, filter)
	return pagination.Slice(filtered, page), len(filtered), nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := s.repo.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return order, nil
}

func (s *orderService) GetStats(ctx context.Context) (model.OrderStats, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return model.OrderStats{}, err
	}
	return analytics.GetOrderStats(orders), nil
}

// UpdateStatus moves an order to status. Orders that already reached a
// terminal state are left untouched and ErrConflict is returned. Delivering an
// order writes its line items to the revenue collection before the status.
func (s *orderService) UpdateStatus(ctx context.Context, actorID, userID, orderID string, status model.OrderStatus) (*model.Order, error) {
	status = status.Normalized()
	if !status.IsAssignable() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.repo.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}

	current := order.Status.Normalized()
	if current == status {
		return order, nil
	}
	if current.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is already %s", ErrConflict, orderID, current)
	}

	// Revenue goes first. Its rows have stable keys, so retrying a failed
	// delivery overwrites them.
	var records []model.RevenueRecord
	if status == model.OrderStatusDelivered {
		records, err = s.revenue.RecordDeliveredOrder(ctx, *order)
		if err != nil {
			return nil, fmt.Errorf("record revenue for order %s: %w", orderID, err)
		}
	}

	now := s.now()
	if err := s.repo.Update(ctx, userID, orderID, map[string]interface{}{
		"status":    string(status),
		"updatedAt": now.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionUpdateOrderStatus, orderID, order.Customer.DisplayName, map[string]interface{}{
		"userId": userID,
		"from":   current,
		"to":     status,
	})

	order.Status = status
	order.UpdatedAt = model.NewTimestamp(now)

	if status == model.OrderStatusDelivered {
		logger.WithModule("orders").WithFields(map[string]interface{}{
			"order_id": orderID,
			"rows":     len(records),
		}).Info("revenue recorded for delivered order")

		s.auditSvc.Record(ctx, actorID, model.ActionRecordRevenue, orderID, order.Customer.DisplayName, map[string]interface{}{
			"rows":        len(records),
			"totalAmount": order.TotalAmount,
		})
	}

	return order, nil
}
