package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Day is one calendar date's container of activities within a plan.
//
// Activities carry a display order with two competing update policies:
// adding or editing an activity re-sorts the day by scheduled time, while
// move and reorder operations splice positionally and are never re-sorted.
// A manual placement therefore persists only until the next add or edit
// triggers a time re-sort. This is inherited behavior, kept deliberately.
type Day struct {
	ID         uuid.UUID  `json:"id"`
	Date       Date       `json:"date"`
	Activities []Activity `json:"activities"`
}

// Clone returns a deep copy of the day and its activities.
func (d Day) Clone() Day {
	out := d
	out.Activities = make([]Activity, len(d.Activities))
	for i, a := range d.Activities {
		out.Activities[i] = a.Clone()
	}
	return out
}

// SortByTime stably re-sorts the day's activities ascending by scheduled
// time. "HH:mm" is fixed-width zero-padded, so plain string comparison
// orders chronologically.
func (d *Day) SortByTime() {
	sort.SliceStable(d.Activities, func(i, j int) bool {
		return d.Activities[i].Time < d.Activities[j].Time
	})
}

// ActivityIndex returns the position of the activity with the given id in
// the day's sequence, or -1 if it is not present.
func (d *Day) ActivityIndex(id uuid.UUID) int {
	for i, a := range d.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}
