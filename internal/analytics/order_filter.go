package analytics

import (
	"strings"
	"time"

	"github.com/Vileyy/admin-halora-app/internal/model"
)

// DateRange is an inclusive creation-time window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// OrderFilter selects and orders orders. Status and PaymentMethod accept "all".
type OrderFilter struct {
	Status        string
	PaymentMethod string
	DateRange     *DateRange
	SearchTerm    string
	SortBy        string
	SortOrder     string
}

const (
	OrderSortCreatedAt   = "createdAt"
	OrderSortTotalAmount = "totalAmount"
	OrderSortStatus      = "status"
)

// FilterOrders applies every predicate of f and then sorts by f.SortBy.
func FilterOrders(orders []model.Order, f OrderFilter) []model.Order {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	status := model.OrderStatus(f.Status).Normalized()

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if !isAll(f.Status) && o.Status.Normalized() != status {
			continue
		}
		if !isAll(f.PaymentMethod) && string(o.PaymentMethod) != f.PaymentMethod {
			continue
		}
		if f.DateRange != nil && (o.CreatedAt.IsZero() || !f.DateRange.Contains(o.CreatedAt.Time)) {
			continue
		}
		if term != "" && !orderMatches(o, term) {
			continue
		}
		out = append(out, o)
	}
	return SortOrders(out, f.SortBy, f.SortOrder)
}

func orderMatches(o model.Order, term string) bool {
	if containsFold(o.ID, term) || containsFold(o.Customer.DisplayName, term) || containsFold(o.Customer.Email, term) {
		return true
	}
	for _, item := range o.Items {
		if containsFold(item.Name, term) {
			return true
		}
	}
	return false
}

// SortOrders sorts a copy of orders. An unknown sortBy leaves the order unchanged.
func SortOrders(orders []model.Order, sortBy, sortOrder string) []model.Order {
	out := append([]model.Order(nil), orders...)
	if out == nil {
		out = []model.Order{}
	}

	var less func(a, b model.Order) bool
	switch sortBy {
	case OrderSortCreatedAt:
		less = func(a, b model.Order) bool { return a.CreatedAt.Before(b.CreatedAt.Time) }
	case OrderSortTotalAmount:
		less = func(a, b model.Order) bool { return a.TotalAmount < b.TotalAmount }
	case OrderSortStatus:
		less = func(a, b model.Order) bool { return a.Status.Normalized() < b.Status.Normalized() }
	default:
		return out
	}
	stableSort(out, sortOrder, less)
	return out
}

// containsFold expects term to be lower-cased already.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}
