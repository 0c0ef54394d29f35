package domain

import (
	"regexp"

	"github.com/google/uuid"
)

// Category classifies an activity for display and filtering.
type Category string

// The fixed set of activity categories.
const (
	CategorySightseeing   Category = "sightseeing"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategorySightseeing,
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryShopping,
	CategoryEntertainment,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// timeOfDayRe matches fixed-width zero-padded 24-hour wall-clock times.
var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a well-formed "HH:mm" wall-clock time.
// The format is fixed-width and zero-padded, so lexicographic comparison of
// two valid values orders them chronologically.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// Activity is a single scheduled item within a day.
// Time is a timezone-free wall-clock value in "HH:mm" form; Duration is in
// minutes. An activity belongs to exactly one Day at any instant.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Time        string    `json:"time"`
	Duration    *int      `json:"duration,omitempty"`
	Location    string    `json:"location,omitempty"`
	Category    Category  `json:"category"`
	Notes       string    `json:"notes,omitempty"`
}

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	out := a
	if a.Duration != nil {
		d := *a.Duration
		out.Duration = &d
	}
	return out
}
