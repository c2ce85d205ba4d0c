package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vileyy/admin-halora-app/internal/model"
)

// CalculateStats totals revenue rows. Orders are counted by distinct order id.
func CalculateStats(records []model.RevenueRecord) model.RevenueStats {
	var stats model.RevenueStats
	orders := make(map[string]struct{})
	for _, r := range records {
		stats.TotalRevenue += r.TotalPrice
		stats.TotalProductsSold += r.Quantity
		orders[r.OrderID] = struct{}{}
	}
	stats.TotalOrders = len(orders)
	return stats
}

// GetOrderStats counts orders per status. Only delivered orders count as
// revenue, but the average order value is taken over all orders.
func GetOrderStats(orders []model.Order) model.OrderStats {
	stats := model.OrderStats{TotalOrders: len(orders)}
	var gross int64
	for _, o := range orders {
		gross += o.TotalAmount
		switch o.Status.Normalized() {
		case model.OrderStatusPending:
			stats.Pending++
		case model.OrderStatusProcessing:
			stats.Processing++
		case model.OrderStatusShipping:
			stats.Shipping++
		case model.OrderStatusDelivered:
			stats.Delivered++
			stats.TotalRevenue += o.TotalAmount
		case model.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	stats.AverageOrderValue = average(decimal.NewFromInt(gross), len(orders), 2)
	return stats
}

// GetUserStats summarizes accounts. now decides which accounts are new this
// month and is read in the configured location.
func GetUserStats(users []model.User, now time.Time) model.UserStats {
	stats := model.UserStats{TotalUsers: len(users)}
	current := now.In(model.DefaultLocation)

	for _, u := range users {
		switch u.EffectiveStatus() {
		case model.UserStatusActive:
			stats.ActiveUsers++
		case model.UserStatusInactive:
			stats.InactiveUsers++
		case model.UserStatusBanned:
			stats.BannedUsers++
		}

		if !u.CreatedAt.IsZero() {
			created := u.CreatedAt.InZone()
			if created.Year() == current.Year() && created.Month() == current.Month() {
				stats.NewUsersThisMonth++
			}
		}

		stats.TotalOrders += len(u.Orders)
		for _, o := range u.Orders {
			if o.Status == model.OrderStatusDelivered {
				stats.TotalRevenue += o.TotalAmount
			}
		}
	}
	return stats
}

// GetReviewStats averages ratings to one decimal. The breakdown always holds
// the keys 1 through 5.
func GetReviewStats(reviews []model.Review) model.ReviewStats {
	stats := model.ReviewStats{
		TotalReviews:    len(reviews),
		RatingBreakdown: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	var rating, shipping int64
	for _, r := range reviews {
		rating += int64(r.Rating)
		shipping += int64(r.ShippingRating)
		if _, ok := stats.RatingBreakdown[r.Rating]; ok {
			stats.RatingBreakdown[r.Rating]++
		}
	}
	stats.AverageRating = average(decimal.NewFromInt(rating), len(reviews), 1)
	stats.AverageShippingRating = average(decimal.NewFromInt(shipping), len(reviews), 1)
	return stats
}

// CalculateVoucherStats counts vouchers by effective status at now.
func CalculateVoucherStats(vouchers []model.Voucher, now time.Time) model.VoucherStats {
	stats := model.VoucherStats{TotalVouchers: len(vouchers)}
	for _, v := range vouchers {
		switch DeriveVoucherStatus(v.StartDate, v.EndDate, v.Status, now) {
		case model.VoucherStatusActive:
			stats.ActiveVouchers++
		case model.VoucherStatusInactive:
			stats.InactiveVouchers++
		case model.VoucherStatusExpired:
			stats.ExpiredVouchers++
		}
		stats.TotalUsage += v.UsageCount
	}
	return stats
}

func average(sum decimal.Decimal, count int, places int32) float64 {
	if count == 0 {
		return 0
	}
	return sum.Div(decimal.NewFromInt(int64(count))).Round(places).InexactFloat64()
}
