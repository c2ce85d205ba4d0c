package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
)

const dashboardTopProducts = 5

type DashboardService interface {
	// GetDashboard summarizes the console home screen. Revenue and top products
	// cover the current calendar month; the other sections cover all data.
	GetDashboard(ctx context.Context) (*model.DashboardResponse, error)
}

type dashboardService struct {
	revenueRepo repository.RevenueRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	voucherRepo repository.VoucherRepository
	reviewRepo  repository.ReviewRepository
	now         func() time.Time
}

func NewDashboardService(
	revenueRepo repository.RevenueRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	voucherRepo repository.VoucherRepository,
	reviewRepo repository.ReviewRepository,
) DashboardService {
	return &dashboardService{
		revenueRepo: revenueRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		voucherRepo: voucherRepo,
		reviewRepo:  reviewRepo,
		now:         time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*model.DashboardResponse, error) {
	var (
		records  []model.RevenueRecord
		orders   []model.Order
		users    []model.User
		vouchers []model.Voucher
		reviews  []model.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		records, err = s.revenueRepo.List(gctx)
		return wrapFetch("revenue", err)
	})
	g.Go(func() (err error) {
		orders, err = s.orderRepo.List(gctx)
		return wrapFetch("orders", err)
	})
	g.Go(func() (err error) {
		users, err = s.userRepo.List(gctx)
		return wrapFetch("users", err)
	})
	g.Go(func() (err error) {
		vouchers, err = s.voucherRepo.List(gctx)
		return wrapFetch("vouchers", err)
	})
	g.Go(func() (err error) {
		reviews, err = s.reviewRepo.List(gctx)
		return wrapFetch("reviews", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now().In(model.DefaultLocation)
	month, year := int(now.Month()), now.Year()
	monthly := analytics.FilterRevenue(records, analytics.RevenueFilter{Month: month, Year: year})

	top := analytics.TopProducts(analytics.CalculateProductStats(monthly), dashboardTopProducts)
	for i := range top {
		top[i].Label = analytics.ShortenLabel(top[i].ProductName, DefaultLabelBudget)
	}

	return &model.DashboardResponse{
		Month:       month,
		Year:        year,
		Revenue:     analytics.CalculateStats(monthly),
		Orders:      analytics.GetOrderStats(orders),
		Users:       analytics.GetUserStats(users, now),
		Vouchers:    analytics.CalculateVoucherStats(vouchers, now),
		Reviews:     analytics.GetReviewStats(reviews),
		TopProducts: top,
	}, nil
}

func wrapFetch(collection string, err error) error {
	if err != nil {
		return fmt.Errorf("fetch %s: %w", collection, err)
	}
	return nil
}
