package domain

import (
	"fmt"
	"time"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component.
// It marshals to and from "2006-01-02" JSON strings, which keeps the
// persisted blob and API payloads in the same shape as the date fields
// they originated from.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q (want YYYY-MM-DD)", ErrValidation, s)
	}
	return Date{t: t.UTC()}, nil
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// String returns the "2006-01-02" representation.
func (d Date) String() string { return d.t.Format(dateLayout) }

// Time returns the underlying time.Time at UTC midnight.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Format formats the date using a time layout string.
func (d Date) Format(layout string) string { return d.t.Format(layout) }

// MarshalJSON encodes the date as a quoted "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted "2006-01-02" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("domain.Date: not a JSON string: %s", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ExpandRange returns one Date per calendar day from start to end, inclusive
// of both endpoints, ascending. It is used once per plan, at creation, to
// generate the plan's initial set of days.
// Returns ErrValidation when end falls before start.
func ExpandRange(start, end Date) ([]Date, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s", ErrValidation, end, start)
	}
	var dates []Date
	for d := start; !end.Before(d); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates, nil
}
