package analytics

import "sort"

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// stableSort orders items in place with less, reversing the comparison for
// descending order. Equal keys keep their input order in both directions.
func stableSort[T any](items []T, sortOrder string, less func(a, b T) bool) {
	desc := sortOrder != SortAsc
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func isAll(v string) bool {
	return v == "" || v == "all"
}
