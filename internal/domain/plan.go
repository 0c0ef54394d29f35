// Package domain contains the core data types for the travel planner.
// This package has zero external dependencies beyond the uuid type and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TravelPlan is the aggregate root: one itinerary for one city, decomposed
// into calendar days that each hold an ordered list of activities.
//
// The plan exclusively owns its Days and each Day exclusively owns its
// Activities; nothing is shared by reference across two owners. StartDate
// and EndDate are descriptive metadata; days may be added or removed after
// creation, so the Days slice is not re-validated against the range.
//
// CoverImage and Summary are best-effort enrichment fields attached after
// creation; they are the only fields a background fetch ever touches.
type TravelPlan struct {
	ID          uuid.UUID `json:"id"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Description string    `json:"description,omitempty"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	StartDate   Date      `json:"startDate"`
	EndDate     Date      `json:"endDate"`
	Days        []Day     `json:"days"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the plan, its days, and their activities.
func (p TravelPlan) Clone() TravelPlan {
	out := p
	out.Days = make([]Day, len(p.Days))
	for i, d := range p.Days {
		out.Days[i] = d.Clone()
	}
	return out
}

// SortDays stably re-sorts the plan's days ascending by date.
func (p *TravelPlan) SortDays() {
	sort.SliceStable(p.Days, func(i, j int) bool {
		return p.Days[i].Date.Before(p.Days[j].Date)
	})
}

// Day returns a pointer to the day with the given id, or nil if absent.
// The pointer aliases the plan's own slice, so mutations through it are
// mutations of p.
func (p *TravelPlan) Day(id uuid.UUID) *Day {
	for i := range p.Days {
		if p.Days[i].ID == id {
			return &p.Days[i]
		}
	}
	return nil
}

// DayContaining returns a pointer to the day whose sequence currently holds
// the activity with the given id, or nil if no day holds it.
func (p *TravelPlan) DayContaining(activityID uuid.UUID) *Day {
	for i := range p.Days {
		if p.Days[i].ActivityIndex(activityID) >= 0 {
			return &p.Days[i]
		}
	}
	return nil
}

// ActivityCount returns the total number of activities across all days.
func (p *TravelPlan) ActivityCount() int {
	n := 0
	for i := range p.Days {
		n += len(p.Days[i].Activities)
	}
	return n
}
