package model

// Review is a customer rating of a purchased product.
type Review struct {
	ID             string    `json:"id"`
	Comment        string    `json:"comment"`
	Rating         int       `json:"rating"`
	ShippingRating int       `json:"shippingRating"`
	OrderID        string    `json:"orderId,omitempty"`
	ProductID      string    `json:"productId,omitempty"`
	ProductName    string    `json:"productName,omitempty"`
	ProductImage   string    `json:"productImage,omitempty"`
	UserID         string    `json:"userId,omitempty"`
	UserName       string    `json:"userName,omitempty"`
	CreatedAt      Timestamp `json:"createdAt"`
	UpdatedAt      Timestamp `json:"updatedAt"`
}
