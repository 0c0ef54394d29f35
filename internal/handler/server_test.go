package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/handler"
	"github.com/tfield/travel-planner/internal/service"
)

// mockPlanService implements handler.PlanServicer with per-test functions.
// Only the functions a test sets are expected to be called.
type mockPlanService struct {
	createFunc    func(ctx context.Context, form service.PlanForm) (domain.TravelPlan, error)
	getByIDFunc   func(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error)
	listPagedFunc func(ctx context.Context, params domain.PaginationParams) ([]domain.TravelPlan, int, error)
	updateFunc    func(ctx context.Context, id uuid.UUID, patch service.PlanPatch) (domain.TravelPlan, error)
	deleteFunc    func(ctx context.Context, id uuid.UUID) error
	addDayFunc    func(ctx context.Context, planID uuid.UUID, date domain.Date) (domain.TravelPlan, error)
	removeDayFunc func(ctx context.Context, planID, dayID uuid.UUID) (domain.TravelPlan, error)
}

func (m *mockPlanService) Create(ctx context.Context, form service.PlanForm) (domain.TravelPlan, error) {
	return m.createFunc(ctx, form)
}

func (m *mockPlanService) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockPlanService) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.TravelPlan, int, error) {
	return m.listPagedFunc(ctx, params)
}

func (m *mockPlanService) Update(ctx context.Context, id uuid.UUID, patch service.PlanPatch) (domain.TravelPlan, error) {
	return m.updateFunc(ctx, id, patch)
}

func (m *mockPlanService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockPlanService) AddDay(ctx context.Context, planID uuid.UUID, date domain.Date) (domain.TravelPlan, error) {
	return m.addDayFunc(ctx, planID, date)
}

func (m *mockPlanService) RemoveDay(ctx context.Context, planID, dayID uuid.UUID) (domain.TravelPlan, error) {
	return m.removeDayFunc(ctx, planID, dayID)
}

// mockActivityService implements handler.ActivityServicer.
type mockActivityService struct {
	addFunc     func(ctx context.Context, planID, dayID uuid.UUID, form service.ActivityForm) (domain.Activity, error)
	updateFunc  func(ctx context.Context, planID, dayID, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error)
	deleteFunc  func(ctx context.Context, planID, dayID, activityID uuid.UUID) error
	moveFunc    func(ctx context.Context, planID, sourceDayID, targetDayID, activityID uuid.UUID, targetIndex int) error
	reorderFunc func(ctx context.Context, planID, dayID, activeID, overID uuid.UUID) error
}

func (m *mockActivityService) Add(ctx context.Context, planID, dayID uuid.UUID, form service.ActivityForm) (domain.Activity, error) {
	return m.addFunc(ctx, planID, dayID, form)
}

func (m *mockActivityService) Update(ctx context.Context, planID, dayID, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error) {
	return m.updateFunc(ctx, planID, dayID, activityID, patch)
}

func (m *mockActivityService) Delete(ctx context.Context, planID, dayID, activityID uuid.UUID) error {
	return m.deleteFunc(ctx, planID, dayID, activityID)
}

func (m *mockActivityService) Move(ctx context.Context, planID, sourceDayID, targetDayID, activityID uuid.UUID, targetIndex int) error {
	return m.moveFunc(ctx, planID, sourceDayID, targetDayID, activityID, targetIndex)
}

func (m *mockActivityService) Reorder(ctx context.Context, planID, dayID, activeID, overID uuid.UUID) error {
	return m.reorderFunc(ctx, planID, dayID, activeID, overID)
}

// mockDragService implements handler.DragServicer.
type mockDragService struct {
	dragOverFunc func(ctx context.Context, planID uuid.UUID, ev service.DragOverEvent) error
}

func (m *mockDragService) DragOver(ctx context.Context, planID uuid.UUID, ev service.DragOverEvent) error {
	return m.dragOverFunc(ctx, planID, ev)
}

// mockEnrichKicker records which plans had enrichment kicked.
type mockEnrichKicker struct {
	kicked []uuid.UUID
}

func (m *mockEnrichKicker) Kick(plan domain.TravelPlan) {
	m.kicked = append(m.kicked, plan.ID)
}

var (
	_ handler.PlanServicer     = (*mockPlanService)(nil)
	_ handler.ActivityServicer = (*mockActivityService)(nil)
	_ handler.DragServicer     = (*mockDragService)(nil)
	_ handler.EnrichKicker     = (*mockEnrichKicker)(nil)
)

// testDeps bundles the mocks behind a test server.
type testDeps struct {
	plans      *mockPlanService
	activities *mockActivityService
	drags      *mockDragService
	enrich     *mockEnrichKicker
}

// newTestServer builds a Server over fresh mocks with the real export
// service and the full route table mounted.
func newTestServer() (*testDeps, http.Handler) {
	deps := &testDeps{
		plans:      &mockPlanService{},
		activities: &mockActivityService{},
		drags:      &mockDragService{},
		enrich:     &mockEnrichKicker{},
	}
	srv := handler.NewServer(
		deps.plans,
		deps.activities,
		deps.drags,
		service.NewExportService(),
		deps.enrich,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return deps, srv.Routes()
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeErrorCode pulls the code out of an error envelope.
func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

// samplePlan is a minimal stored plan for handler responses.
func samplePlan() domain.TravelPlan {
	return domain.TravelPlan{
		ID:        uuid.New(),
		City:      "Paris",
		Country:   "France",
		StartDate: domain.NewDate(2024, 6, 1),
		EndDate:   domain.NewDate(2024, 6, 3),
		Days: []domain.Day{
			{ID: uuid.New(), Date: domain.NewDate(2024, 6, 1), Activities: []domain.Activity{}},
			{ID: uuid.New(), Date: domain.NewDate(2024, 6, 2), Activities: []domain.Activity{}},
			{ID: uuid.New(), Date: domain.NewDate(2024, 6, 3), Activities: []domain.Activity{}},
		},
	}
}
