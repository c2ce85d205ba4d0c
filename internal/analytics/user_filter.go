package analytics

import (
	"strings"

	"github.com/Vileyy/admin-halora-app/internal/model"
)

type UserFilter struct {
	Status     string
	Role       string
	SearchTerm string
	SortBy     string
	SortOrder  string
}

const (
	UserSortCreatedAt   = "createdAt"
	UserSortDisplayName = "displayName"
	UserSortTotalOrders = "totalOrders"
)

// FilterUsers matches status against the effective status, so "active" also
// selects accounts that never had one stored.
func FilterUsers(users []model.User, f UserFilter) []model.User {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if !isAll(f.Status) && string(u.EffectiveStatus()) != f.Status {
			continue
		}
		if !isAll(f.Role) && string(u.Role) != f.Role {
			continue
		}
		if term != "" && !containsFold(u.DisplayName, term) && !containsFold(u.Email, term) && !containsFold(u.Phone, term) {
			continue
		}
		out = append(out, u)
	}
	return SortUsers(out, f.SortBy, f.SortOrder)
}

func SortUsers(users []model.User, sortBy, sortOrder string) []model.User {
	out := append([]model.User(nil), users...)
	if out == nil {
		out = []model.User{}
	}

	var less func(a, b model.User) bool
	switch sortBy {
	case UserSortCreatedAt:
		less = func(a, b model.User) bool { return a.CreatedAt.Before(b.CreatedAt.Time) }
	case UserSortDisplayName:
		less = func(a, b model.User) bool { return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName) }
	case UserSortTotalOrders:
		less = func(a, b model.User) bool { return len(a.Orders) < len(b.Orders) }
	default:
		return out
	}
	stableSort(out, sortOrder, less)
	return out
}
