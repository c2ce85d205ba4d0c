package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Period is the calendar month a revenue record belongs to.
// The zero Period is invalid and never matches a filter.
type Period struct {
	Year  int
	Month int
}

func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

// Matches reports whether p is the given month of the given year.
func (p Period) Matches(month, year int) bool {
	return p.Valid() && p.Month == month && p.Year == year
}

func (p Period) String() string {
	if !p.Valid() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// ParsePeriod parses the combined "YYYY-MM" form.
func ParsePeriod(s string) (Period, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Period{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, false
	}
	p := Period{Year: year, Month: month}
	return p, p.Valid()
}

// resolvePeriod normalizes the month/year pair of a stored record. A combined
// "YYYY-MM" month wins over the year field; otherwise both fields are read as
// numbers or numeric strings. When both are missing the period falls back to
// the completion time.
func resolvePeriod(monthRaw, yearRaw json.RawMessage, completedAt Timestamp) Period {
	month, monthPresent := rawValue(monthRaw)
	year, yearPresent := rawValue(yearRaw)

	if !monthPresent && !yearPresent {
		if completedAt.IsZero() {
			return Period{}
		}
		t := completedAt.InZone()
		return Period{Year: t.Year(), Month: int(t.Month())}
	}

	if s, ok := month.(string); ok && strings.Contains(s, "-") {
		p, _ := ParsePeriod(s)
		return p
	}

	m, ok := intValue(month)
	if !ok {
		return Period{}
	}
	y, ok := intValue(year)
	if !ok {
		return Period{}
	}
	p := Period{Year: y, Month: m}
	if !p.Valid() {
		return Period{}
	}
	return p
}

func rawValue(raw json.RawMessage) (interface{}, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}

func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
