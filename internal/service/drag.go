package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/repo"
)

// DropKind says what the pointer is currently hovering during a drag.
type DropKind string

const (
	// DropOnDay means the pointer is over a day container itself.
	DropOnDay DropKind = "day"
	// DropOnActivity means the pointer is over a specific activity.
	DropOnActivity DropKind = "activity"
)

// Valid reports whether k is a known drop kind.
func (k DropKind) Valid() bool { return k == DropOnDay || k == DropOnActivity }

// DragOverEvent is one drag-over notification from the interaction surface.
// ActiveID is the dragged activity; OverID identifies the hovered day or
// activity depending on OverKind.
type DragOverEvent struct {
	ActiveID uuid.UUID
	OverID   uuid.UUID
	OverKind DropKind
}

// DragService translates drag gestures into move and reorder calls. It
// resolves which day currently holds the dragged activity and routes:
// same-day drops to Reorder and cross-day drops to Move, appended at the end
// when hovering a day container, or at the hovered activity's slot when
// hovering a specific activity.
//
// Drag-over events fire while the gesture is still in progress, so the
// visible order updates live; each event is applied immediately rather than
// waiting for the drop. Drag-end is a pure client-side state reset and has
// no server counterpart.
type DragService struct {
	plans      repo.PlanRepo
	activities *ActivityService
}

// NewDragService constructs a DragService over the given repo and activity service.
func NewDragService(plans repo.PlanRepo, activities *ActivityService) *DragService {
	return &DragService{plans: plans, activities: activities}
}

// DragOver applies one drag-over event to the plan.
// Returns domain.ErrNotFound if the plan does not exist and
// domain.ErrValidation for a malformed event. A dragged or hovered entity
// that is no longer present makes the call a no-op; speculative drag events
// may race a delete, and losing the race must not corrupt anything.
func (s *DragService) DragOver(ctx context.Context, planID uuid.UUID, ev DragOverEvent) error {
	if !ev.OverKind.Valid() {
		return fmt.Errorf("%w: unknown drop kind %q", domain.ErrValidation, ev.OverKind)
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("service.DragService.DragOver: %w", err)
	}

	sourceDay := plan.DayContaining(ev.ActiveID)
	if sourceDay == nil {
		return nil
	}

	switch ev.OverKind {
	case DropOnDay:
		overDay := plan.Day(ev.OverID)
		if overDay == nil || overDay.ID == sourceDay.ID {
			return nil
		}
		// Hovering the container itself appends at the end.
		return s.activities.Move(ctx, planID, sourceDay.ID, overDay.ID, ev.ActiveID, len(overDay.Activities))

	case DropOnActivity:
		overDay := plan.DayContaining(ev.OverID)
		if overDay == nil {
			return nil
		}
		if overDay.ID == sourceDay.ID {
			if ev.ActiveID == ev.OverID {
				return nil
			}
			return s.activities.Reorder(ctx, planID, sourceDay.ID, ev.ActiveID, ev.OverID)
		}
		return s.activities.Move(ctx, planID, sourceDay.ID, overDay.ID, ev.ActiveID, overDay.ActivityIndex(ev.OverID))
	}
	return nil
}
