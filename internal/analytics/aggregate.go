package analytics

import "github.com/Vileyy/admin-halora-app/internal/model"

// CalculateDailyRevenue buckets the rows of one month by day of completion.
// The result always has one entry per day of the month, in day order.
func CalculateDailyRevenue(records []model.RevenueRecord, month, year int) []model.DailyRevenue {
	days := DaysInMonth(month, year)
	out := make([]model.DailyRevenue, days)
	orders := make([]map[string]struct{}, days)
	for i := range out {
		out[i].Day = i + 1
		orders[i] = make(map[string]struct{})
	}

	for _, r := range records {
		if !r.Period.Matches(month, year) || r.CompletedAt.IsZero() {
			continue
		}
		day := r.CompletedAt.InZone().Day()
		if day < 1 || day > days {
			continue
		}
		out[day-1].Revenue += r.TotalPrice
		orders[day-1][r.OrderID] = struct{}{}
	}

	for i := range out {
		out[i].Orders = len(orders[i])
	}
	return out
}

type productAccumulator struct {
	stats  model.ProductStats
	orders map[string]struct{}
}

// CalculateProductStats groups rows by product name, highest revenue first.
// Image and category come from the first row seen for a name.
func CalculateProductStats(records []model.RevenueRecord) []model.ProductStats {
	index := make(map[string]int)
	groups := make([]*productAccumulator, 0)

	for _, r := range records {
		i, ok := index[r.ProductName]
		if !ok {
			i = len(groups)
			index[r.ProductName] = i
			groups = append(groups, &productAccumulator{
				stats: model.ProductStats{
					ProductName:     r.ProductName,
					ProductImage:    r.ProductImage,
					ProductCategory: r.ProductCategory,
				},
				orders: make(map[string]struct{}),
			})
		}
		g := groups[i]
		g.stats.TotalRevenue += r.TotalPrice
		g.stats.TotalQuantity += r.Quantity
		g.orders[r.OrderID] = struct{}{}
	}

	out := make([]model.ProductStats, 0, len(groups))
	for _, g := range groups {
		g.stats.TotalOrders = len(g.orders)
		out = append(out, g.stats)
	}
	stableSort(out, SortDesc, func(a, b model.ProductStats) bool { return a.TotalRevenue < b.TotalRevenue })
	return out
}

type categoryAccumulator struct {
	stats    model.CategoryStats
	orders   map[string]struct{}
	products map[string]struct{}
}

// CalculateCategoryStats groups rows by category, highest revenue first.
func CalculateCategoryStats(records []model.RevenueRecord) []model.CategoryStats {
	index := make(map[string]int)
	groups := make([]*categoryAccumulator, 0)

	for _, r := range records {
		i, ok := index[r.ProductCategory]
		if !ok {
			i = len(groups)
			index[r.ProductCategory] = i
			groups = append(groups, &categoryAccumulator{
				stats:    model.CategoryStats{Category: r.ProductCategory},
				orders:   make(map[string]struct{}),
				products: make(map[string]struct{}),
			})
		}
		g := groups[i]
		g.stats.TotalRevenue += r.TotalPrice
		g.stats.TotalQuantity += r.Quantity
		g.orders[r.OrderID] = struct{}{}
		g.products[r.ProductName] = struct{}{}
	}

	out := make([]model.CategoryStats, 0, len(groups))
	for _, g := range groups {
		g.stats.TotalOrders = len(g.orders)
		g.stats.ProductCount = len(g.products)
		out = append(out, g.stats)
	}
	stableSort(out, SortDesc, func(a, b model.CategoryStats) bool { return a.TotalRevenue < b.TotalRevenue })
	return out
}

// TopProducts returns at most n leading entries. n <= 0 returns everything.
func TopProducts(stats []model.ProductStats, n int) []model.ProductStats {
	if n <= 0 || n >= len(stats) {
		return stats
	}
	return stats[:n]
}
