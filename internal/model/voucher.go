package model

type VoucherStatus string

const (
	VoucherStatusActive   VoucherStatus = "active"
	VoucherStatusInactive VoucherStatus = "inactive"
	VoucherStatusExpired  VoucherStatus = "expired"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type VoucherType string

const (
	VoucherTypeShipping VoucherType = "shipping"
	VoucherTypeProduct  VoucherType = "product"
)

// Voucher is a discount code. StartDate and EndDate are epoch milliseconds.
type Voucher struct {
	ID            string        `json:"id"`
	Code          string        `json:"code"`
	Title         string        `json:"title"`
	DiscountType  DiscountType  `json:"discountType"`
	DiscountValue int64         `json:"discountValue"`
	Type          VoucherType   `json:"type"`
	MinOrder      int64         `json:"minOrder"`
	StartDate     int64         `json:"startDate"`
	EndDate       int64         `json:"endDate"`
	UsageLimit    int           `json:"usageLimit"`
	UsageCount    int           `json:"usageCount"`
	Status        VoucherStatus `json:"status"`
	CreatedAt     Timestamp     `json:"createdAt"`
	UpdatedAt     Timestamp     `json:"updatedAt"`
}
