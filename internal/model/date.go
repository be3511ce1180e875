package model

import (
	"fmt"
	"strings"
	"time"
)

// Date wraps time.Time with JSON codecs for the zone-less ISO timestamps
// the task endpoint emits (LocalDateTime-style "2006-01-02T15:04:05") as
// well as plain "2006-01-02" dates from form input.
type Date struct {
	time.Time
}

// dateLayouts are tried in order when decoding.
var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// NewDate builds a Date from a time.Time.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate decodes a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// UnmarshalJSON accepts any of the known layouts.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date value %q", s)
}

// MarshalJSON emits the zone-less ISO layout the server expects.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format("2006-01-02T15:04:05") + `"`), nil
}

// DateOnly formats the date as YYYY-MM-DD for form input fields.
func (d Date) DateOnly() string {
	return d.Time.Format("2006-01-02")
}
