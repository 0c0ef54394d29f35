package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/service"
)

// exportFixture builds a populated plan through the real services so exports
// render exactly what the rest of the system produces.
func exportFixture(t *testing.T) domain.TravelPlan {
	t.Helper()
	repo, activities, plan := newPlanFixture(t)
	ctx := context.Background()

	ninety := 90
	_, err := activities.Add(ctx, plan.ID, plan.Days[0].ID, service.ActivityForm{
		Title:       "Louvre Museum",
		Description: "World's largest art museum",
		Time:        "14:00",
		Duration:    &ninety,
		Location:    "Rue de Rivoli",
		Category:    domain.CategorySightseeing,
		Notes:       "buy tickets online",
	})
	require.NoError(t, err)
	_, err = activities.Add(ctx, plan.ID, plan.Days[0].ID, service.ActivityForm{
		Title:    "Breakfast",
		Time:     "09:00",
		Category: domain.CategoryFood,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	return got
}

func TestExportService_JSON_Faithful(t *testing.T) {
	plan := exportFixture(t)
	svc := service.NewExportService()

	data, err := svc.JSON(plan)

	require.NoError(t, err)
	var decoded domain.TravelPlan
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, plan.ID, decoded.ID)
	assert.Equal(t, plan.City, decoded.City)
	require.Len(t, decoded.Days, 3)
	// Stored order survives the round trip.
	assert.Equal(t, "Breakfast", decoded.Days[0].Activities[0].Title)
	assert.Equal(t, "Louvre Museum", decoded.Days[0].Activities[1].Title)
}

func TestExportService_Text(t *testing.T) {
	plan := exportFixture(t)
	svc := service.NewExportService()

	data, err := svc.Text(plan)

	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "TRAVEL PLAN: PARIS, FRANCE")
	assert.Contains(t, text, "Dates: Jun 1, 2024 - Jun 3, 2024")
	assert.Contains(t, text, "DAILY ITINERARY")
	assert.Contains(t, text, "Day 1 - Saturday, June 1, 2024")
	assert.Contains(t, text, "09:00 - Breakfast")
	assert.Contains(t, text, "14:00 - Louvre Museum")
	assert.Contains(t, text, "Location: Rue de Rivoli")
	assert.Contains(t, text, "Duration: 90 minutes")
	assert.Contains(t, text, "Notes: buy tickets online")
	// Empty days still show up.
	assert.Contains(t, text, "Day 3 - Monday, June 3, 2024")
	assert.Contains(t, text, "No activities planned")
	// Activities appear in stored order.
	assert.Less(t, strings.Index(text, "Breakfast"), strings.Index(text, "Louvre Museum"))
}

func TestExportService_Text_OmitsEmptyFields(t *testing.T) {
	plan := exportFixture(t)
	svc := service.NewExportService()

	data, err := svc.Text(plan)

	require.NoError(t, err)
	text := string(data)
	// Breakfast has no location, duration, description, or notes; the only
	// occurrences of those labels belong to the Louvre entry.
	assert.Equal(t, 1, strings.Count(text, "Location:"))
	assert.Equal(t, 1, strings.Count(text, "Duration:"))
	assert.Equal(t, 1, strings.Count(text, "Description:"))
	assert.Equal(t, 1, strings.Count(text, "Notes:"))
}

func TestExportService_HTML(t *testing.T) {
	plan := exportFixture(t)
	svc := service.NewExportService()

	data, err := svc.HTML(plan)

	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<h1>Paris, France</h1>")
	assert.Contains(t, html, "3 Days")
	assert.Contains(t, html, "2 Activities")
	assert.Contains(t, html, "Day 1 - Saturday, June 1, 2024")
	assert.Contains(t, html, `class="category category-food"`)
	assert.Contains(t, html, "No activities planned for this day")
}

func TestExportService_HTML_EscapesUserText(t *testing.T) {
	plan := exportFixture(t)
	plan.Days[0].Activities[0].Title = `<script>alert("x")</script>`
	svc := service.NewExportService()

	data, err := svc.HTML(plan)

	require.NoError(t, err)
	html := string(data)
	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestExportService_PreserveManualOrder(t *testing.T) {
	repo, activities, plan := newPlanFixture(t)
	ctx := context.Background()
	day := plan.Days[0]

	late, err := activities.Add(ctx, plan.ID, day.ID, activityForm("Late", "22:00"))
	require.NoError(t, err)
	early, err := activities.Add(ctx, plan.ID, day.ID, activityForm("Early", "08:00"))
	require.NoError(t, err)
	// Manual reorder puts the late activity first.
	require.NoError(t, activities.Reorder(ctx, plan.ID, day.ID, late.ID, early.ID))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	svc := service.NewExportService()

	text, err := svc.Text(got)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(text), "Late"), strings.Index(string(text), "Early"))

	jsonData, err := svc.JSON(got)
	require.NoError(t, err)
	var decoded domain.TravelPlan
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.Equal(t, "Late", decoded.Days[0].Activities[0].Title)
}
