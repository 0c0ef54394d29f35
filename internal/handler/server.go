// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (plan.go, activity.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/service"
)

// PlanServicer defines the business operations the plan handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching storage or the service layer.
type PlanServicer interface {
	Create(ctx context.Context, form service.PlanForm) (domain.TravelPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error)
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.TravelPlan, int, error)
	Update(ctx context.Context, id uuid.UUID, patch service.PlanPatch) (domain.TravelPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddDay(ctx context.Context, planID uuid.UUID, date domain.Date) (domain.TravelPlan, error)
	RemoveDay(ctx context.Context, planID, dayID uuid.UUID) (domain.TravelPlan, error)
}

// ActivityServicer defines the business operations the activity handlers
// depend on, including the move and reorder calls behind the drag surface.
type ActivityServicer interface {
	Add(ctx context.Context, planID, dayID uuid.UUID, form service.ActivityForm) (domain.Activity, error)
	Update(ctx context.Context, planID, dayID, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error)
	Delete(ctx context.Context, planID, dayID, activityID uuid.UUID) error
	Move(ctx context.Context, planID, sourceDayID, targetDayID, activityID uuid.UUID, targetIndex int) error
	Reorder(ctx context.Context, planID, dayID, activeID, overID uuid.UUID) error
}

// DragServicer translates drag-over events into moves and reorders.
type DragServicer interface {
	DragOver(ctx context.Context, planID uuid.UUID, ev service.DragOverEvent) error
}

// ExportServicer renders a plan in the supported export formats.
type ExportServicer interface {
	JSON(plan domain.TravelPlan) ([]byte, error)
	Text(plan domain.TravelPlan) ([]byte, error)
	HTML(plan domain.TravelPlan) ([]byte, error)
}

// EnrichKicker starts background enrichment for a plan missing its summary
// or cover image. Implementations must return immediately.
type EnrichKicker interface {
	Kick(plan domain.TravelPlan)
}

// Server holds the dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	plans      PlanServicer
	activities ActivityServicer
	drags      DragServicer
	exports    ExportServicer
	enrich     EnrichKicker
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// enrich may be nil, which disables background enrichment.
func NewServer(plans PlanServicer, activities ActivityServicer, drags DragServicer, exports ExportServicer, enrich EnrichKicker, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		plans:      plans,
		activities: activities,
		drags:      drags,
		exports:    exports,
		enrich:     enrich,
		log:        log,
	}
}
