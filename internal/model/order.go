package model

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Normalized folds the legacy "shipped" value into "shipping".
func (s OrderStatus) Normalized() OrderStatus {
	if s == OrderStatusShipped {
		return OrderStatusShipping
	}
	return s
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// IsAssignable reports whether an admin may move an order into s.
func (s OrderStatus) IsAssignable() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipping, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "cod"
	PaymentMethodVNPay   PaymentMethod = "vnpay"
	PaymentMethodZaloPay PaymentMethod = "zalopay"
)

type ItemVariant struct {
	Name  string `json:"name"`
	Price int64  `json:"price,omitempty"`
}

type OrderItem struct {
	ID       string       `json:"id,omitempty"`
	Name     string       `json:"name"`
	Price    int64        `json:"price"`
	Quantity int          `json:"quantity"`
	Image    string       `json:"image,omitempty"`
	Category string       `json:"category,omitempty"`
	Variant  *ItemVariant `json:"variant,omitempty"`
}

// Order is a purchase placed by the storefront and embedded under its user.
// UserID and Customer are filled when orders are flattened out of users.
type Order struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	Items          []OrderItem   `json:"items"`
	Subtotal       int64         `json:"subtotal"`
	ShippingCost   int64         `json:"shippingCost"`
	Discount       int64         `json:"discount"`
	TotalAmount    int64         `json:"totalAmount"`
	Status         OrderStatus   `json:"status"`
	PaymentMethod  PaymentMethod `json:"paymentMethod"`
	ShippingMethod string        `json:"shippingMethod,omitempty"`
	CouponCode     string        `json:"couponCode,omitempty"`
	Customer       UserInfo      `json:"userInfo"`
	CreatedAt      Timestamp     `json:"createdAt"`
	UpdatedAt      Timestamp     `json:"updatedAt"`
}
