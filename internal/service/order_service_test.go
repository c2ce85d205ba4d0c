package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

func orderFixture(t *testing.T) (OrderService, repository.RevenueRepository, *recordingAudit) {
	t.Helper()
	s := seededStore(t, map[string]interface{}{
		"users": map[string]interface{}{
			"u1": map[string]interface{}{
				"displayName": "Lan", "email": "lan@example.com", "phone": "0901",
				"orders": map[string]interface{}{
					"o1": map[string]interface{}{
						"status": "shipped", "totalAmount": 350, "paymentMethod": "cod", "createdAt": "2025-09-01T08:00:00Z",
						"items": []interface{}{
							map[string]interface{}{"name": "Serum", "price": 150, "quantity": 2, "category": "skincare"},
							map[string]interface{}{"name": "Toner", "price": 50, "quantity": 1, "category": "skincare",
								"variant": map[string]interface{}{"name": "200ml", "price": 80}},
							map[string]interface{}{"name": "Gift", "price": 0, "quantity": 0},
						},
					},
					"o2": map[string]interface{}{"status": "cancelled", "totalAmount": 90, "paymentMethod": "vnpay", "createdAt": "2025-09-03T08:00:00Z"},
					"o3": map[string]interface{}{"status": "pending", "totalAmount": 120, "paymentMethod": "cod", "createdAt": "2025-09-05T08:00:00Z"},
				},
			},
		},
	})

	revenueRepo := repository.NewRevenueRepository(s)
	revenueSvc := &revenueService{repo: revenueRepo, now: fixedClock}
	audit := &recordingAudit{}
	svc := &orderService{repo: repository.NewOrderRepository(s), revenue: revenueSvc, auditSvc: audit, now: fixedClock}
	return svc, revenueRepo, audit
}

func TestOrderService_DeliverRecordsRevenue(t *testing.T) {
	ctx := context.Background()
	svc, revenueRepo, audit := orderFixture(t)

	order, err := svc.UpdateStatus(ctx, "admin-1", "u1", "o1", model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, order.Status)

	stored, err := svc.GetOrder(ctx, "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, stored.Status)

	records, err := revenueRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2, "zero-quantity items are not revenue")

	byName := map[string]model.RevenueRecord{}
	for _, r := range records {
		byName[r.ProductName] = r
	}
	assert.Equal(t, int64(300), byName["Serum"].TotalPrice)
	assert.Equal(t, int64(80), byName["Toner"].UnitPrice, "variant price wins")
	assert.Equal(t, "o1", byName["Serum"].OrderID)
	assert.Equal(t, "u1", byName["Serum"].UserInfo.ID)
	assert.Equal(t, "Lan", byName["Serum"].UserInfo.DisplayName)
	assert.True(t, byName["Serum"].Period.Matches(9, 2025))

	assert.Equal(t, []string{model.ActionUpdateOrderStatus, model.ActionRecordRevenue}, audit.actions())
}

// failingRevenueRepo writes the first `partial` rows of the next Append and
// then fails it, once.
type failingRevenueRepo struct {
	repository.RevenueRepository
	armed   bool
	partial int
}

func (r *failingRevenueRepo) Append(ctx context.Context, records []model.RevenueRecord) error {
	if !r.armed {
		return r.RevenueRepository.Append(ctx, records)
	}
	r.armed = false
	if err := r.RevenueRepository.Append(ctx, records[:r.partial]); err != nil {
		return err
	}
	return errors.New("store down")
}

func TestOrderService_DeliverRetriesAfterRevenueFailure(t *testing.T) {
	for _, partial := range []int{0, 1} {
		ctx := context.Background()
		svc, revenueRepo, audit := orderFixture(t)
		failing := &failingRevenueRepo{RevenueRepository: revenueRepo, armed: true, partial: partial}
		svc.(*orderService).revenue = &revenueService{repo: failing, now: fixedClock}

		_, err := svc.UpdateStatus(ctx, "admin-1", "u1", "o1", model.OrderStatusDelivered)
		require.Error(t, err)

		stored, err := svc.GetOrder(ctx, "u1", "o1")
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, stored.Status, "status is kept when revenue fails")
		assert.Empty(t, audit.actions())

		_, err = svc.UpdateStatus(ctx, "admin-1", "u1", "o1", model.OrderStatusDelivered)
		require.NoError(t, err)

		records, err := revenueRepo.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2, "rows written by the failed attempt are overwritten")
		ids := []string{records[0].ID, records[1].ID}
		assert.ElementsMatch(t, []string{RevenueRecordID("o1", 0), RevenueRecordID("o1", 1)}, ids)
	}
}

func TestOrderService_UpdateStatusRules(t *testing.T) {
	ctx := context.Background()
	svc, revenueRepo, audit := orderFixture(t)

	_, err := svc.UpdateStatus(ctx, "admin-1", "u1", "o3", "refunded")
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	_, err = svc.UpdateStatus(ctx, "admin-1", "u1", "o2", model.OrderStatusPending)
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = svc.UpdateStatus(ctx, "admin-1", "u1", "missing", model.OrderStatusPending)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.UpdateStatus(ctx, "admin-1", "nobody", "o1", model.OrderStatusPending)
	assert.True(t, errors.Is(err, ErrNotFound))

	// shipped and shipping are the same state
	order, err := svc.UpdateStatus(ctx, "admin-1", "u1", "o1", model.OrderStatusShipping)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, order.Status)
	assert.Empty(t, audit.actions())

	order, err = svc.UpdateStatus(ctx, "admin-1", "u1", "o3", model.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	assert.Equal(t, testNow, order.UpdatedAt.Time)

	records, err := revenueRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOrderService_ListAndStats(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := orderFixture(t)

	page, total, err := svc.ListOrders(ctx, analytics.OrderFilter{SortBy: analytics.OrderSortTotalAmount, SortOrder: "asc"}, pagination.New(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "o2", page[0].ID)
	assert.Equal(t, "o3", page[1].ID)

	page, total, err = svc.ListOrders(ctx, analytics.OrderFilter{PaymentMethod: "cod"}, pagination.New(1, 20))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 2)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 1, stats.Shipping)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, int64(0), stats.TotalRevenue)
}
