package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/repo"
)

// ActivityForm carries the validated fields for creating an activity.
// The id is assigned by the service.
type ActivityForm struct {
	Title       string
	Description string
	Time        string
	Duration    *int
	Location    string
	Category    domain.Category
	Notes       string
}

// ActivityPatch carries a partial activity update. Nil fields are left
// untouched; a present-but-empty string clears the optional text fields.
// Editing Time repositions the activity within its day.
type ActivityPatch struct {
	Title       *string
	Description *string
	Time        *string
	Duration    *int
	Location    *string
	Category    *domain.Category
	Notes       *string
}

// ActivityService implements business logic for Activity operations,
// including the cross-day move and same-day reorder that back the drag
// surface. Every mutation rebuilds the owning plan and replaces it through
// the repo in one call, so a reader can never observe a half-applied move.
type ActivityService struct {
	plans repo.PlanRepo
	now   func() time.Time
}

// NewActivityService constructs an ActivityService backed by the provided PlanRepo.
func NewActivityService(plans repo.PlanRepo) *ActivityService {
	return &ActivityService{plans: plans, now: time.Now}
}

// Add validates the form, assigns an id, inserts the activity into the
// target day, and re-sorts that day's activities ascending by scheduled
// time.
// Returns domain.ErrNotFound if the plan or day does not exist,
// domain.ErrValidation for invalid input.
func (s *ActivityService) Add(ctx context.Context, planID, dayID uuid.UUID, form ActivityForm) (domain.Activity, error) {
	if err := validateActivityForm(form); err != nil {
		return domain.Activity{}, err
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}
	day := plan.Day(dayID)
	if day == nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Add: day: %w", domain.ErrNotFound)
	}

	activity := domain.Activity{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(form.Title),
		Description: form.Description,
		Time:        form.Time,
		Duration:    form.Duration,
		Location:    form.Location,
		Category:    form.Category,
		Notes:       form.Notes,
	}
	day.Activities = append(day.Activities, activity)
	day.SortByTime()
	plan.UpdatedAt = s.now().UTC()

	if _, err := s.plans.Update(ctx, plan); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}
	return activity.Clone(), nil
}

// Update merges the patch into the activity and re-sorts the owning day by
// scheduled time. An edit to the time field repositions the activity, and
// any edit discards a prior manual ordering of that day.
// Returns domain.ErrNotFound if the plan, day, or activity does not exist.
func (s *ActivityService) Update(ctx context.Context, planID, dayID, activityID uuid.UUID, patch ActivityPatch) (domain.Activity, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	day := plan.Day(dayID)
	if day == nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: day: %w", domain.ErrNotFound)
	}
	idx := day.ActivityIndex(activityID)
	if idx < 0 {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: activity: %w", domain.ErrNotFound)
	}

	activity := &day.Activities[idx]
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return domain.Activity{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
		}
		activity.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		activity.Description = *patch.Description
	}
	if patch.Time != nil {
		if !domain.ValidTimeOfDay(*patch.Time) {
			return domain.Activity{}, fmt.Errorf("%w: time must be HH:mm", domain.ErrValidation)
		}
		activity.Time = *patch.Time
	}
	if patch.Duration != nil {
		if *patch.Duration < 0 {
			return domain.Activity{}, fmt.Errorf("%w: duration must not be negative", domain.ErrValidation)
		}
		activity.Duration = patch.Duration
	}
	if patch.Location != nil {
		activity.Location = *patch.Location
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return domain.Activity{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *patch.Category)
		}
		activity.Category = *patch.Category
	}
	if patch.Notes != nil {
		activity.Notes = *patch.Notes
	}

	updated := activity.Clone()
	day.SortByTime()
	plan.UpdatedAt = s.now().UTC()

	if _, err := s.plans.Update(ctx, plan); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes the activity from its day's sequence.
// Returns domain.ErrNotFound if the plan or day does not exist; deleting an
// activity that is already gone is a no-op.
func (s *ActivityService) Delete(ctx context.Context, planID, dayID, activityID uuid.UUID) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	day := plan.Day(dayID)
	if day == nil {
		return fmt.Errorf("service.ActivityService.Delete: day: %w", domain.ErrNotFound)
	}
	idx := day.ActivityIndex(activityID)
	if idx < 0 {
		return nil
	}

	day.Activities = append(day.Activities[:idx], day.Activities[idx+1:]...)
	plan.UpdatedAt = s.now().UTC()

	if _, err := s.plans.Update(ctx, plan); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// Move atomically relocates one activity from the source day to the target
// day, inserted at targetIndex clamped to [0, len] of the target's current
// sequence. The target day is not re-sorted by time afterwards: manual
// placement order is preserved until the next add or edit.
//
// The whole operation is a single plan replacement: either the activity
// leaves the source and lands in the target, or nothing changes at all. An
// activity missing from the source day silently aborts the move; a vanished
// activity must never be the outcome.
//
// Returns domain.ErrNotFound if the plan, source day, or target day does not
// exist, and domain.ErrValidation if source and target are the same day;
// same-day repositioning must go through Reorder, whose index math is
// defined for that case.
func (s *ActivityService) Move(ctx context.Context, planID, sourceDayID, targetDayID, activityID uuid.UUID, targetIndex int) error {
	if sourceDayID == targetDayID {
		return fmt.Errorf("%w: source and target day are the same; use reorder", domain.ErrValidation)
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("service.ActivityService.Move: %w", err)
	}
	source := plan.Day(sourceDayID)
	if source == nil {
		return fmt.Errorf("service.ActivityService.Move: source day: %w", domain.ErrNotFound)
	}
	target := plan.Day(targetDayID)
	if target == nil {
		return fmt.Errorf("service.ActivityService.Move: target day: %w", domain.ErrNotFound)
	}

	idx := source.ActivityIndex(activityID)
	if idx < 0 {
		return nil
	}
	activity := source.Activities[idx]
	source.Activities = append(source.Activities[:idx], source.Activities[idx+1:]...)

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(target.Activities) {
		targetIndex = len(target.Activities)
	}
	target.Activities = append(target.Activities, domain.Activity{})
	copy(target.Activities[targetIndex+1:], target.Activities[targetIndex:])
	target.Activities[targetIndex] = activity

	plan.UpdatedAt = s.now().UTC()
	if _, err := s.plans.Update(ctx, plan); err != nil {
		return fmt.Errorf("service.ActivityService.Move: %w", err)
	}
	return nil
}

// Reorder repositions the activity with activeID to occupy the slot of the
// activity with overID within one day, shifting the elements in between.
// The day is not re-sorted by time afterwards.
// Returns domain.ErrNotFound if the plan or day does not exist; an unknown
// activeID or overID makes the whole call a no-op.
func (s *ActivityService) Reorder(ctx context.Context, planID, dayID, activeID, overID uuid.UUID) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("service.ActivityService.Reorder: %w", err)
	}
	day := plan.Day(dayID)
	if day == nil {
		return fmt.Errorf("service.ActivityService.Reorder: day: %w", domain.ErrNotFound)
	}

	oldIndex := day.ActivityIndex(activeID)
	newIndex := day.ActivityIndex(overID)
	if oldIndex < 0 || newIndex < 0 || oldIndex == newIndex {
		return nil
	}

	moved := day.Activities[oldIndex]
	day.Activities = append(day.Activities[:oldIndex], day.Activities[oldIndex+1:]...)
	day.Activities = append(day.Activities, domain.Activity{})
	copy(day.Activities[newIndex+1:], day.Activities[newIndex:])
	day.Activities[newIndex] = moved

	plan.UpdatedAt = s.now().UTC()
	if _, err := s.plans.Update(ctx, plan); err != nil {
		return fmt.Errorf("service.ActivityService.Reorder: %w", err)
	}
	return nil
}

// validateActivityForm enforces business rules for new activities.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Time must be a fixed-width "HH:mm" wall-clock value.
//   - Duration, if set, must not be negative.
//   - Category must be one of the fixed enumeration.
func validateActivityForm(form ActivityForm) error {
	if strings.TrimSpace(form.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !domain.ValidTimeOfDay(form.Time) {
		return fmt.Errorf("%w: time must be HH:mm", domain.ErrValidation)
	}
	if form.Duration != nil && *form.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", domain.ErrValidation)
	}
	if !form.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, form.Category)
	}
	return nil
}
