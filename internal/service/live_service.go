package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

// Live feed event names.
const (
	EventRevenueStats = "revenue.stats"
	EventOrderStats   = "orders.stats"
	EventUserStats    = "users.stats"
	EventVoucherStats = "vouchers.stats"
	EventReviewStats  = "reviews.stats"
)

// Broadcaster delivers an event to every connected console.
type Broadcaster interface {
	Publish(event string, data interface{})
}

// RevenueSnapshot is the payload of EventRevenueStats.
type RevenueSnapshot struct {
	Month int                  `json:"month"`
	Year  int                  `json:"year"`
	Stats model.RevenueStats   `json:"stats"`
	Daily []model.DailyRevenue `json:"daily"`
}

// LiveService keeps the consoles up to date: every store snapshot triggers a
// full recompute of the matching stats, which are then broadcast.
type LiveService struct {
	revenueRepo repository.RevenueRepository
	userRepo    repository.UserRepository
	voucherRepo repository.VoucherRepository
	reviewRepo  repository.ReviewRepository
	out         Broadcaster
	now         func() time.Time
	// rollover is how often the clock is checked for a new month.
	rollover time.Duration

	periodMu  sync.Mutex
	published model.Period

	mu     sync.Mutex
	cancel context.CancelFunc
	unsubs []store.Unsubscribe
}

func NewLiveService(
	revenueRepo repository.RevenueRepository,
	userRepo repository.UserRepository,
	voucherRepo repository.VoucherRepository,
	reviewRepo repository.ReviewRepository,
	out Broadcaster,
) *LiveService {
	return &LiveService{
		revenueRepo: revenueRepo,
		userRepo:    userRepo,
		voucherRepo: voucherRepo,
		reviewRepo:  reviewRepo,
		out:         out,
		now:         time.Now,
		rollover:    time.Minute,
	}
}

// Start subscribes to the collections. It is a no-op when already started.
func (s *LiveService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	var unsubs []store.Unsubscribe
	fail := func(what string, err error) error {
		cancel()
		for _, u := range unsubs {
			u()
		}
		return fmt.Errorf("subscribe %s: %w", what, err)
	}

	u, err := s.revenueRepo.Subscribe(ctx, s.onRevenue)
	if err != nil {
		return fail("revenue", err)
	}
	unsubs = append(unsubs, u)

	u, err = s.userRepo.Subscribe(ctx, s.onUsers)
	if err != nil {
		return fail("users", err)
	}
	unsubs = append(unsubs, u)

	u, err = s.voucherRepo.Subscribe(ctx, s.onVouchers)
	if err != nil {
		return fail("vouchers", err)
	}
	unsubs = append(unsubs, u)

	u, err = s.reviewRepo.Subscribe(ctx, s.onReviews)
	if err != nil {
		return fail("reviews", err)
	}
	unsubs = append(unsubs, u)

	go s.watchMonth(ctx)

	s.cancel = cancel
	s.unsubs = unsubs
	logger.WithModule("live").Info("live feed started")
	return nil
}

// Stop cancels every subscription. Snapshots delivered afterwards are not broadcast.
func (s *LiveService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	for _, u := range s.unsubs {
		u()
	}
	s.cancel()
	s.cancel = nil
	s.unsubs = nil
	logger.WithModule("live").Info("live feed stopped")
}

func (s *LiveService) currentPeriod() model.Period {
	now := s.now().In(model.DefaultLocation)
	return model.Period{Year: now.Year(), Month: int(now.Month())}
}

func (s *LiveService) watchMonth(ctx context.Context) {
	ticker := time.NewTicker(s.rollover)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshOnRollover(ctx)
		}
	}
}

// refreshOnRollover recomputes the month-scoped stats once the calendar month
// differs from the one last published.
func (s *LiveService) refreshOnRollover(ctx context.Context) {
	s.periodMu.Lock()
	published := s.published
	s.periodMu.Unlock()
	if published == s.currentPeriod() {
		return
	}

	log := logger.WithModule("live")
	records, err := s.revenueRepo.List(ctx)
	if err != nil {
		log.WithError(err).Warn("month rollover: reload revenue")
		return
	}
	s.onRevenue(records)

	users, err := s.userRepo.List(ctx)
	if err != nil {
		log.WithError(err).Warn("month rollover: reload users")
		return
	}
	s.out.Publish(EventUserStats, analytics.GetUserStats(users, s.now()))
}

func (s *LiveService) onRevenue(records []model.RevenueRecord) {
	period := s.currentPeriod()
	month, year := period.Month, period.Year
	s.periodMu.Lock()
	s.published = period
	s.periodMu.Unlock()

	monthly := analytics.FilterRevenue(records, analytics.RevenueFilter{Month: month, Year: year})

	s.out.Publish(EventRevenueStats, RevenueSnapshot{
		Month: month,
		Year:  year,
		Stats: analytics.CalculateStats(monthly),
		Daily: analytics.CalculateDailyRevenue(records, month, year),
	})
}

// onUsers feeds both order and user stats since orders are embedded in users.
func (s *LiveService) onUsers(users []model.User) {
	s.out.Publish(EventOrderStats, analytics.GetOrderStats(repository.FlattenOrders(users)))
	s.out.Publish(EventUserStats, analytics.GetUserStats(users, s.now()))
}

func (s *LiveService) onVouchers(vouchers []model.Voucher) {
	s.out.Publish(EventVoucherStats, analytics.CalculateVoucherStats(vouchers, s.now()))
}

func (s *LiveService) onReviews(reviews []model.Review) {
	s.out.Publish(EventReviewStats, analytics.GetReviewStats(reviews))
}
