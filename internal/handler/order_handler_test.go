package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vileyy/admin-halora-app/internal/model"
)

type orderPage struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func TestOrderHandler_List(t *testing.T) {
	api, _ := newConsole(t)

	var page orderPage
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/orders?limit=1&sort_by=createdAt", nil, &page).Code)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "o2", page.Items[0].ID, "newest first")
	assert.Equal(t, "Lan", page.Items[0].Customer.DisplayName)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/orders?status=pending&search=lan", nil, &page).Code)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "o1", page.Items[0].ID)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/orders?start_date=2025-09-02&end_date=2025-09-10", nil, &page).Code)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "o2", page.Items[0].ID, "date-only end bound covers the whole day")

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/orders?end_date=2025-09-01", nil, &page).Code)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "o1", page.Items[0].ID)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/orders?start_date=yesterday", nil, nil).Code)

	var stats model.OrderStats
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/orders/stats", nil, &stats).Code)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 195.0, stats.AverageOrderValue)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	api, _ := newConsole(t)

	var order model.Order
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/orders/u1/o1", nil, &order).Code)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/orders/u1/nope", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, "/api/orders/u1/o1/status", map[string]string{}, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, "/api/orders/u1/o1/status", map[string]string{"status": "lost"}, nil).Code)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPatch, "/api/orders/u1/o2/status", map[string]string{"status": "pending"}, nil).Code)

	var before []model.RevenueRecord
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/revenue", nil, &before).Code)

	w := api.do(http.MethodPatch, "/api/orders/u1/o1/status", map[string]string{"status": "delivered"}, &order)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.OrderStatusDelivered, order.Status)

	var after []model.RevenueRecord
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/revenue", nil, &after).Code)
	assert.Len(t, after, len(before)+1)

	assert.Equal(t, http.StatusConflict, api.do(http.MethodPatch, "/api/orders/u1/o1/status", map[string]string{"status": "cancelled"}, nil).Code)
}
