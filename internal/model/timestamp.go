package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DefaultLocation is the zone used to read calendar fields (day, month, year)
// out of stored timestamps. It is replaced at startup from configuration.
var DefaultLocation = time.UTC

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a point in time decoded from any of the encodings found in the
// document store: ISO-8601 strings, date-only strings and epoch milliseconds.
// Values that cannot be parsed decode to the zero time instead of failing.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses a textual timestamp. Naive values are read in DefaultLocation.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, DefaultLocation); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).In(DefaultLocation), true
	}
	return time.Time{}, false
}

// InZone returns the time in DefaultLocation.
func (t Timestamp) InZone() time.Time {
	return t.Time.In(DefaultLocation)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Time = time.Time{}
		return nil
	}

	switch v := raw.(type) {
	case string:
		parsed, _ := ParseTimestamp(v)
		t.Time = parsed
	case float64:
		t.Time = time.UnixMilli(int64(v)).In(DefaultLocation)
	default:
		t.Time = time.Time{}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// StoreValue is the representation written back to the document store.
func (t Timestamp) StoreValue() interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Time.Format(time.RFC3339)
}
