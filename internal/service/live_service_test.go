package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
)

type capturedEvent struct {
	name string
	data interface{}
}

type captureBroadcaster struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (b *captureBroadcaster) Publish(event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, capturedEvent{name: event, data: data})
}

func (b *captureBroadcaster) last(name string) (interface{}, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var data interface{}
	count := 0
	for _, e := range b.events {
		if e.name == name {
			data = e.data
			count++
		}
	}
	return data, count
}

func TestLiveService_PublishesOnEverySnapshot(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, map[string]interface{}{
		"revenue": map[string]interface{}{
			"r1": map[string]interface{}{"orderId": "A", "productName": "Serum", "totalPrice": 100, "quantity": 1, "completedAt": "2025-09-05"},
		},
		"users": map[string]interface{}{
			"u1": map[string]interface{}{"displayName": "Lan", "orders": map[string]interface{}{
				"o1": map[string]interface{}{"status": "delivered", "totalAmount": 100},
			}},
		},
		"reviews": map[string]interface{}{
			"a": map[string]interface{}{"rating": 4, "shippingRating": 5},
		},
	})
	revenueRepo := repository.NewRevenueRepository(s)
	out := &captureBroadcaster{}
	live := NewLiveService(revenueRepo, repository.NewUserRepository(s), repository.NewVoucherRepository(s), repository.NewReviewRepository(s), out)
	live.now = fixedClock

	require.NoError(t, live.Start(ctx))
	require.NoError(t, live.Start(ctx), "starting twice is a no-op")

	data, count := out.last(EventRevenueStats)
	require.Equal(t, 1, count)
	snapshot := data.(RevenueSnapshot)
	assert.Equal(t, 9, snapshot.Month)
	assert.Equal(t, int64(100), snapshot.Stats.TotalRevenue)
	assert.Len(t, snapshot.Daily, 30)

	data, _ = out.last(EventOrderStats)
	assert.Equal(t, int64(100), data.(model.OrderStats).TotalRevenue)
	data, _ = out.last(EventUserStats)
	assert.Equal(t, 1, data.(model.UserStats).TotalUsers)
	data, _ = out.last(EventVoucherStats)
	assert.Equal(t, 0, data.(model.VoucherStats).TotalVouchers)
	data, _ = out.last(EventReviewStats)
	assert.Equal(t, 4.0, data.(model.ReviewStats).AverageRating)

	require.NoError(t, revenueRepo.Append(ctx, []model.RevenueRecord{{
		OrderID: "B", ProductName: "Toner", Quantity: 1, TotalPrice: 50,
		CompletedAt: model.NewTimestamp(testNow), Period: model.Period{Year: 2025, Month: 9},
	}}))
	data, count = out.last(EventRevenueStats)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(150), data.(RevenueSnapshot).Stats.TotalRevenue)

	live.Stop()
	live.Stop()
	require.NoError(t, revenueRepo.Append(ctx, []model.RevenueRecord{{OrderID: "C", ProductName: "Mask", Quantity: 1, TotalPrice: 10}}))
	_, count = out.last(EventRevenueStats)
	assert.Equal(t, 2, count)
}

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func TestLiveService_RecomputesOnMonthRollover(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, map[string]interface{}{
		"revenue": map[string]interface{}{
			"r1": map[string]interface{}{"orderId": "A", "productName": "Serum", "totalPrice": 100, "quantity": 1, "completedAt": "2025-09-05"},
		},
	})
	out := &captureBroadcaster{}
	clock := &manualClock{t: testNow}
	live := NewLiveService(repository.NewRevenueRepository(s), repository.NewUserRepository(s),
		repository.NewVoucherRepository(s), repository.NewReviewRepository(s), out)
	live.now = clock.Now

	require.NoError(t, live.Start(ctx))
	defer live.Stop()
	_, count := out.last(EventRevenueStats)
	require.Equal(t, 1, count)
	_, users := out.last(EventUserStats)

	live.refreshOnRollover(ctx)
	_, count = out.last(EventRevenueStats)
	assert.Equal(t, 1, count, "same month publishes nothing")

	clock.Set(time.Date(2025, time.October, 1, 0, 5, 0, 0, time.UTC))
	live.refreshOnRollover(ctx)

	data, count := out.last(EventRevenueStats)
	require.Equal(t, 2, count)
	snapshot := data.(RevenueSnapshot)
	assert.Equal(t, 10, snapshot.Month)
	assert.Equal(t, int64(0), snapshot.Stats.TotalRevenue)
	assert.Len(t, snapshot.Daily, 31)
	_, count = out.last(EventUserStats)
	assert.Equal(t, users+1, count)

	live.refreshOnRollover(ctx)
	_, count = out.last(EventRevenueStats)
	assert.Equal(t, 2, count)
}
