package analytics

import "github.com/Vileyy/admin-halora-app/internal/model"

// RevenueFilter selects revenue rows. Zero fields match everything.
type RevenueFilter struct {
	Month    int
	Year     int
	Category string
}

func (f RevenueFilter) IsEmpty() bool {
	return f.Month == 0 && f.Year == 0 && f.Category == ""
}

// FilterRevenue returns the rows matching every set field of f, in input order.
// Rows whose period could not be resolved never match a month or year.
func FilterRevenue(records []model.RevenueRecord, f RevenueFilter) []model.RevenueRecord {
	out := make([]model.RevenueRecord, 0, len(records))
	for _, r := range records {
		if f.Month != 0 && (!r.Period.Valid() || r.Period.Month != f.Month) {
			continue
		}
		if f.Year != 0 && (!r.Period.Valid() || r.Period.Year != f.Year) {
			continue
		}
		if f.Category != "" && r.ProductCategory != f.Category {
			continue
		}
		out = append(out, r)
	}
	return out
}
