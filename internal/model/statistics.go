package model

// RevenueStats is the headline summary over a set of revenue rows.
type RevenueStats struct {
	TotalRevenue      int64 `json:"totalRevenue"`
	TotalOrders       int   `json:"totalOrders"`
	TotalProductsSold int   `json:"totalProductsSold"`
}

// DailyRevenue is one day bucket of a month series.
type DailyRevenue struct {
	Day     int   `json:"day"`
	Revenue int64 `json:"revenue"`
	Orders  int   `json:"orders"`
}

type ProductStats struct {
	ProductName     string `json:"productName"`
	Label           string `json:"label,omitempty"`
	ProductImage    string `json:"productImage,omitempty"`
	ProductCategory string `json:"productCategory"`
	TotalRevenue    int64  `json:"totalRevenue"`
	TotalQuantity   int    `json:"totalQuantity"`
	TotalOrders     int    `json:"totalOrders"`
}

type CategoryStats struct {
	Category      string `json:"category"`
	TotalRevenue  int64  `json:"totalRevenue"`
	TotalQuantity int    `json:"totalQuantity"`
	TotalOrders   int    `json:"totalOrders"`
	ProductCount  int    `json:"productCount"`
}

// OrderStats counts orders per status. TotalRevenue only includes delivered
// orders while AverageOrderValue is taken over every order.
type OrderStats struct {
	TotalOrders       int     `json:"totalOrders"`
	Pending           int     `json:"pending"`
	Processing        int     `json:"processing"`
	Shipping          int     `json:"shipping"`
	Delivered         int     `json:"delivered"`
	Cancelled         int     `json:"cancelled"`
	TotalRevenue      int64   `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

type UserStats struct {
	TotalUsers        int   `json:"totalUsers"`
	ActiveUsers       int   `json:"activeUsers"`
	InactiveUsers     int   `json:"inactiveUsers"`
	BannedUsers       int   `json:"bannedUsers"`
	NewUsersThisMonth int   `json:"newUsersThisMonth"`
	TotalOrders       int   `json:"totalOrders"`
	TotalRevenue      int64 `json:"totalRevenue"`
}

type ReviewStats struct {
	TotalReviews          int         `json:"totalReviews"`
	AverageRating         float64     `json:"averageRating"`
	AverageShippingRating float64     `json:"averageShippingRating"`
	RatingBreakdown       map[int]int `json:"ratingBreakdown"`
}

type VoucherStats struct {
	TotalVouchers    int `json:"totalVouchers"`
	ActiveVouchers   int `json:"activeVouchers"`
	InactiveVouchers int `json:"inactiveVouchers"`
	ExpiredVouchers  int `json:"expiredVouchers"`
	TotalUsage       int `json:"totalUsage"`
}

// DashboardResponse aggregates every summary shown on the console home screen.
type DashboardResponse struct {
	Month       int            `json:"month"`
	Year        int            `json:"year"`
	Revenue     RevenueStats   `json:"revenue"`
	Orders      OrderStats     `json:"orders"`
	Users       UserStats      `json:"users"`
	Vouchers    VoucherStats   `json:"vouchers"`
	Reviews     ReviewStats    `json:"reviews"`
	TopProducts []ProductStats `json:"topProducts"`
}
