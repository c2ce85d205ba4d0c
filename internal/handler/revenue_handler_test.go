package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vileyy/admin-halora-app/internal/model"
)

func TestRevenueHandler_RequiresAdmin(t *testing.T) {
	api, _ := newConsole(t)

	api.token = ""
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/revenue/stats", nil, nil).Code)

	api.token = adminToken(t, "u1", "user")
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/revenue/stats", nil, nil).Code)
}

func TestRevenueHandler_Stats(t *testing.T) {
	api, _ := newConsole(t)

	var stats model.RevenueStats
	w := api.do(http.MethodGet, "/api/revenue/stats?month=9&year=2025", nil, &stats)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.RevenueStats{TotalRevenue: 250, TotalOrders: 2, TotalProductsSold: 4}, stats)

	w = api.do(http.MethodGet, "/api/revenue/stats?month=9&year=2025&category=makeup", nil, &stats)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(50), stats.TotalRevenue)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/revenue/stats?month=13", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/revenue/stats?year=abc", nil, nil).Code)
}

func TestRevenueHandler_DailyAndRollups(t *testing.T) {
	api, _ := newConsole(t)

	var daily []model.DailyRevenue
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/revenue/daily?month=2&year=2024", nil, &daily).Code)
	assert.Len(t, daily, 29)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/revenue/daily?month=9&year=2025", nil, &daily).Code)
	require.Len(t, daily, 30)
	assert.Equal(t, model.DailyRevenue{Day: 5, Revenue: 150, Orders: 1}, daily[4])

	var products []model.ProductStats
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/revenue/products?limit=1&label_budget=4", nil, &products).Code)
	require.Len(t, products, 1)
	assert.Equal(t, "Serum", products[0].ProductName)
	assert.Equal(t, 2, products[0].TotalOrders)
	assert.Equal(t, "Seru...", products[0].Label)

	var categories []model.CategoryStats
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/revenue/categories", nil, &categories).Code)
	require.Len(t, categories, 2)
	assert.Equal(t, "skincare", categories[0].Category)
	assert.Equal(t, 1, categories[0].ProductCount)

	var records []model.RevenueRecord
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/revenue?category=all", nil, &records).Code)
	assert.Len(t, records, 3)
}

func TestRevenueHandler_Export(t *testing.T) {
	api, _ := newConsole(t)

	w := api.do(http.MethodGet, "/api/revenue/export?month=9&year=2025&format=pdf", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=revenue_report_2025-09.pdf", w.Header().Get("Content-Disposition"))

	w = api.do(http.MethodGet, "/api/revenue/export?month=9&year=2025", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/revenue/export?format=doc", nil, nil).Code)
}
