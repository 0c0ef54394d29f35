package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfield/travel-planner/internal/domain"
)

func planFixture() domain.TravelPlan {
	dur := 90
	return domain.TravelPlan{
		ID:        uuid.New(),
		City:      "Paris",
		Country:   "France",
		StartDate: domain.NewDate(2024, time.June, 1),
		EndDate:   domain.NewDate(2024, time.June, 2),
		Days: []domain.Day{
			{
				ID:   uuid.New(),
				Date: domain.NewDate(2024, time.June, 1),
				Activities: []domain.Activity{
					{ID: uuid.New(), Title: "Louvre", Time: "14:00", Category: domain.CategorySightseeing, Duration: &dur},
				},
			},
			{ID: uuid.New(), Date: domain.NewDate(2024, time.June, 2), Activities: []domain.Activity{}},
		},
	}
}

// TestTravelPlan_Clone_IsDeep verifies that mutating a clone's nested slices
// and pointers never shows through to the original.
func TestTravelPlan_Clone_IsDeep(t *testing.T) {
	original := planFixture()

	clone := original.Clone()
	clone.Days[0].Activities[0].Title = "changed"
	*clone.Days[0].Activities[0].Duration = 5
	clone.Days = append(clone.Days, domain.Day{ID: uuid.New()})

	assert.Equal(t, "Louvre", original.Days[0].Activities[0].Title)
	assert.Equal(t, 90, *original.Days[0].Activities[0].Duration)
	assert.Len(t, original.Days, 2)
}

// TestDay_SortByTime verifies the lexicographic "HH:mm" ordering and that
// the sort is stable for equal times.
func TestDay_SortByTime(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	day := domain.Day{Activities: []domain.Activity{
		{ID: uuid.New(), Title: "Dinner", Time: "19:30"},
		{ID: first, Title: "Museum", Time: "09:00"},
		{ID: second, Title: "Coffee", Time: "09:00"},
		{ID: uuid.New(), Title: "Breakfast", Time: "08:15"},
	}}

	day.SortByTime()

	times := make([]string, len(day.Activities))
	for i, a := range day.Activities {
		times[i] = a.Time
	}
	assert.Equal(t, []string{"08:15", "09:00", "09:00", "19:30"}, times)
	// Stable: the two 09:00 entries keep their insertion order.
	assert.Equal(t, first, day.Activities[1].ID)
	assert.Equal(t, second, day.Activities[2].ID)
}

// TestTravelPlan_SortDays verifies ascending date order after a sort.
func TestTravelPlan_SortDays(t *testing.T) {
	plan := domain.TravelPlan{Days: []domain.Day{
		{Date: domain.NewDate(2024, time.June, 3)},
		{Date: domain.NewDate(2024, time.June, 1)},
		{Date: domain.NewDate(2024, time.June, 2)},
	}}

	plan.SortDays()

	require.Len(t, plan.Days, 3)
	for i := 1; i < len(plan.Days); i++ {
		assert.True(t, plan.Days[i-1].Date.Before(plan.Days[i].Date))
	}
}

func TestTravelPlan_DayContaining(t *testing.T) {
	plan := planFixture()
	target := plan.Days[0].Activities[0].ID

	day := plan.DayContaining(target)
	require.NotNil(t, day)
	assert.Equal(t, plan.Days[0].ID, day.ID)

	assert.Nil(t, plan.DayContaining(uuid.New()))
}

func TestValidTimeOfDay(t *testing.T) {
	for _, valid := range []string{"00:00", "09:05", "14:00", "23:59"} {
		assert.True(t, domain.ValidTimeOfDay(valid), valid)
	}
	for _, invalid := range []string{"", "24:00", "9:00", "14:60", "14:0", "noon", "14:00:00"} {
		assert.False(t, domain.ValidTimeOfDay(invalid), invalid)
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range domain.Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, domain.Category("partying").Valid())
	assert.False(t, domain.Category("").Valid())
}
