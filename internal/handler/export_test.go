package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfield/travel-planner/internal/domain"
)

func exportFixtureServer(t *testing.T) (domain.TravelPlan, http.Handler) {
	t.Helper()
	deps, h := newTestServer()
	stored := samplePlan()
	stored.Days[0].Activities = []domain.Activity{
		{ID: uuid.New(), Title: "Breakfast", Time: "09:00", Category: domain.CategoryFood},
		{ID: uuid.New(), Title: "Louvre", Time: "14:00", Category: domain.CategorySightseeing},
	}
	deps.plans.getByIDFunc = func(_ context.Context, id uuid.UUID) (domain.TravelPlan, error) {
		assert.Equal(t, stored.ID, id)
		return stored, nil
	}
	return stored, h
}

func TestGetExport_DefaultJSON(t *testing.T) {
	stored, h := exportFixtureServer(t)

	rec := doJSON(t, h, http.MethodGet, "/plans/"+stored.ID.String()+"/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "paris-itinerary.json")
	assert.Contains(t, rec.Body.String(), `"city": "Paris"`)
}

func TestGetExport_Text(t *testing.T) {
	stored, h := exportFixtureServer(t)

	rec := doJSON(t, h, http.MethodGet, "/plans/"+stored.ID.String()+"/export?format=text", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "paris-itinerary.txt")
	assert.Contains(t, rec.Body.String(), "TRAVEL PLAN: PARIS, FRANCE")
	assert.Contains(t, rec.Body.String(), "09:00 - Breakfast")
}

func TestGetExport_HTML(t *testing.T) {
	stored, h := exportFixtureServer(t)

	rec := doJSON(t, h, http.MethodGet, "/plans/"+stored.ID.String()+"/export?format=html", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "paris-itinerary.html")
	assert.Contains(t, rec.Body.String(), "<h1>Paris, France</h1>")
}

func TestGetExport_UnknownFormat(t *testing.T) {
	stored, h := exportFixtureServer(t)

	rec := doJSON(t, h, http.MethodGet, "/plans/"+stored.ID.String()+"/export?format=pdf", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown export format")
}

func TestGetExport_PlanNotFound(t *testing.T) {
	deps, h := newTestServer()
	deps.plans.getByIDFunc = func(_ context.Context, _ uuid.UUID) (domain.TravelPlan, error) {
		return domain.TravelPlan{}, domain.ErrNotFound
	}

	rec := doJSON(t, h, http.MethodGet, "/plans/"+uuid.NewString()+"/export", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
