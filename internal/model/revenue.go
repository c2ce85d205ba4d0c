package model

import "encoding/json"

// UserInfo is the contact snapshot attached to revenue rows and orders.
type UserInfo struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// RevenueRecord is one sold line item of a delivered order.
type RevenueRecord struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"orderId"`
	ProductName     string    `json:"productName"`
	ProductImage    string    `json:"productImage,omitempty"`
	ProductCategory string    `json:"productCategory"`
	Quantity        int       `json:"quantity"`
	UnitPrice       int64     `json:"unitPrice"`
	TotalPrice      int64     `json:"totalPrice"`
	CompletedAt     Timestamp `json:"completedAt"`
	Period          Period    `json:"-"`
	UserInfo        UserInfo  `json:"userInfo"`
}

type revenueRecordAlias RevenueRecord

func (r *RevenueRecord) UnmarshalJSON(data []byte) error {
	aux := struct {
		*revenueRecordAlias
		Month json.RawMessage `json:"month"`
		Year  json.RawMessage `json:"year"`
	}{revenueRecordAlias: (*revenueRecordAlias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Period = resolvePeriod(aux.Month, aux.Year, r.CompletedAt)
	return nil
}

func (r RevenueRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		revenueRecordAlias
		Month string `json:"month,omitempty"`
		Year  int    `json:"year,omitempty"`
	}{
		revenueRecordAlias: revenueRecordAlias(r),
		Month:              r.Period.String(),
		Year:               r.Period.Year,
	})
}

// StoreFields is the document written for a new revenue row. The month is
// written in its combined form, the year as a number.
func (r RevenueRecord) StoreFields() map[string]interface{} {
	return map[string]interface{}{
		"orderId":         r.OrderID,
		"productName":     r.ProductName,
		"productImage":    r.ProductImage,
		"productCategory": r.ProductCategory,
		"quantity":        r.Quantity,
		"unitPrice":       r.UnitPrice,
		"totalPrice":      r.TotalPrice,
		"completedAt":     r.CompletedAt.StoreValue(),
		"month":           r.Period.String(),
		"year":            r.Period.Year,
		"userInfo": map[string]interface{}{
			"id":          r.UserInfo.ID,
			"displayName": r.UserInfo.DisplayName,
			"email":       r.UserInfo.Email,
		},
	}
}
