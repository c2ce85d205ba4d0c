package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
)

const DefaultLabelBudget = 12

type ProductStatsQuery struct {
	Filter      analytics.RevenueFilter
	Limit       int
	LabelBudget int
}

type RevenueService interface {
	GetStats(ctx context.Context, filter analytics.RevenueFilter) (model.RevenueStats, error)
	GetDailyRevenue(ctx context.Context, month, year int) ([]model.DailyRevenue, error)
	GetProductStats(ctx context.Context, q ProductStatsQuery) ([]model.ProductStats, error)
	GetCategoryStats(ctx context.Context, filter analytics.RevenueFilter) ([]model.CategoryStats, error)
	ListRecords(ctx context.Context, filter analytics.RevenueFilter) ([]model.RevenueRecord, error)
	// RecordDeliveredOrder writes one revenue row per line item of a delivered
	// order. Rows are keyed by RevenueRecordID.
	RecordDeliveredOrder(ctx context.Context, order model.Order) ([]model.RevenueRecord, error)
}

type revenueService struct {
	repo repository.RevenueRepository
	now  func() time.Time
}

func NewRevenueService(repo repository.RevenueRepository) RevenueService {
	return &revenueService{repo: repo, now: time.Now}
}

func (s *revenueService) ListRecords(ctx context.Context, filter analytics.RevenueFilter) ([]model.RevenueRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.FilterRevenue(records, filter), nil
}

func (s *revenueService) GetStats(ctx context.Context, filter analytics.RevenueFilter) (model.RevenueStats, error) {
	records, err := s.ListRecords(ctx, filter)
	if err != nil {
		return model.RevenueStats{}, err
	}
	return analytics.CalculateStats(records), nil
}

func (s *revenueService) GetDailyRevenue(ctx context.Context, month, year int) ([]model.DailyRevenue, error) {
	if analytics.DaysInMonth(month, year) == 0 || year < 1 {
		return nil, invalid("month must be 1-12 and year positive")
	}
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.CalculateDailyRevenue(records, month, year), nil
}

func (s *revenueService) GetProductStats(ctx context.Context, q ProductStatsQuery) ([]model.ProductStats, error) {
	records, err := s.ListRecords(ctx, q.Filter)
	if err != nil {
		return nil, err
	}

	budget := q.LabelBudget
	if budget <= 0 {
		budget = DefaultLabelBudget
	}

	stats := analytics.TopProducts(analytics.CalculateProductStats(records), q.Limit)
	for i := range stats {
		stats[i].Label = analytics.ShortenLabel(stats[i].ProductName, budget)
	}
	return stats, nil
}

func (s *revenueService) GetCategoryStats(ctx context.Context, filter analytics.RevenueFilter) ([]model.CategoryStats, error) {
	records, err := s.ListRecords(ctx, filter)
	if err != nil {
		return nil, err
	}
	return analytics.CalculateCategoryStats(records), nil
}

// RevenueRecordID is the key of the revenue row for item index i of an order.
// Recording the same order twice overwrites its rows.
func RevenueRecordID(orderID string, i int) string {
	return fmt.Sprintf("%s-%d", orderID, i)
}

func (s *revenueService) RecordDeliveredOrder(ctx context.Context, order model.Order) ([]model.RevenueRecord, error) {
	completed := s.now().In(model.DefaultLocation)
	period := model.Period{Year: completed.Year(), Month: int(completed.Month())}

	customer := order.Customer
	customer.ID = order.UserID

	records := make([]model.RevenueRecord, 0, len(order.Items))
	for i, item := range order.Items {
		if item.Quantity <= 0 {
			continue
		}
		unit := item.Price
		if item.Variant != nil && item.Variant.Price > 0 {
			unit = item.Variant.Price
		}
		records = append(records, model.RevenueRecord{
			ID:              RevenueRecordID(order.ID, i),
			OrderID:         order.ID,
			ProductName:     item.Name,
			ProductImage:    item.Image,
			ProductCategory: item.Category,
			Quantity:        item.Quantity,
			UnitPrice:       unit,
			TotalPrice:      unit * int64(item.Quantity),
			CompletedAt:     model.NewTimestamp(completed),
			Period:          period,
			UserInfo:        customer,
		})
	}

	if err := s.repo.Append(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}
