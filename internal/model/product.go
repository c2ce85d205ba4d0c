package model

// Product is a catalog entry shown by the storefront.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Price       int64         `json:"price"`
	Category    string        `json:"category"`
	Image       string        `json:"image,omitempty"`
	Stock       int           `json:"stock"`
	Variants    []ItemVariant `json:"variants,omitempty"`
	CreatedAt   Timestamp     `json:"createdAt"`
	UpdatedAt   Timestamp     `json:"updatedAt"`
}
