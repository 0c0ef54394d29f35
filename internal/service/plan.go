// Package service contains the business logic for the travel planner.
// Services validate inputs, enforce the plan/day/activity invariants, and
// orchestrate repo calls. No storage detail lives here; services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/repo"
)

// PlanForm carries the validated fields for creating a plan.
type PlanForm struct {
	City        string
	Country     string
	Description string
	StartDate   domain.Date
	EndDate     domain.Date
}

// PlanPatch carries a partial plan update. Nil fields are left untouched;
// a present-but-empty string clears the optional text fields.
type PlanPatch struct {
	City        *string
	Country     *string
	Description *string
	CoverImage  *string
	Summary     *string
	StartDate   *domain.Date
	EndDate     *domain.Date
}

// PlanService implements business logic for TravelPlan and Day operations.
type PlanService struct {
	repo repo.PlanRepo
	now  func() time.Time
}

// NewPlanService constructs a PlanService backed by the provided PlanRepo.
func NewPlanService(r repo.PlanRepo) *PlanService {
	return &PlanService{repo: r, now: time.Now}
}

// Create validates the form, expands the date range into one empty day per
// calendar date (inclusive of both endpoints), assigns ids, stamps
// timestamps, and persists the new plan.
// Returns domain.ErrValidation if input violates business rules.
func (s *PlanService) Create(ctx context.Context, form PlanForm) (domain.TravelPlan, error) {
	if err := validatePlanForm(form); err != nil {
		return domain.TravelPlan{}, err
	}

	dates, err := domain.ExpandRange(form.StartDate, form.EndDate)
	if err != nil {
		return domain.TravelPlan{}, err
	}
	days := make([]domain.Day, len(dates))
	for i, date := range dates {
		days[i] = domain.Day{ID: uuid.New(), Date: date, Activities: []domain.Activity{}}
	}

	now := s.now().UTC()
	plan := domain.TravelPlan{
		ID:          uuid.New(),
		City:        strings.TrimSpace(form.City),
		Country:     strings.TrimSpace(form.Country),
		Description: form.Description,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		Days:        days,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single plan by id.
// Returns domain.ErrNotFound if no plan with that id exists.
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	return plan, nil
}

// List returns all plans in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlanService) List(ctx context.Context) ([]domain.TravelPlan, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PlanService.List: %w", err)
	}
	if plans == nil {
		return []domain.TravelPlan{}, nil
	}
	return plans, nil
}

// ListPaged returns one page of plans plus the total count.
func (s *PlanService) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.TravelPlan, int, error) {
	plans, total, err := s.repo.ListPaged(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlanService.ListPaged: %w", err)
	}
	if plans == nil {
		plans = []domain.TravelPlan{}
	}
	return plans, total, nil
}

// Update merges the patch into the existing plan and refreshes the
// updated-at timestamp. Fields left nil in the patch are untouched.
//
// The merge happens inside the repo's atomic mutation, against the plan's
// state at write time. A patch computed from an earlier read (a background
// enrichment merge racing a day or activity mutation) therefore cannot carry
// a stale tree over a newer one; only the fields the patch names change.
//
// Returns domain.ErrNotFound if the plan does not exist, domain.ErrValidation
// if the merged result violates business rules.
func (s *PlanService) Update(ctx context.Context, id uuid.UUID, patch PlanPatch) (domain.TravelPlan, error) {
	updated, err := s.repo.Mutate(ctx, id, func(plan *domain.TravelPlan) error {
		if patch.City != nil {
			plan.City = strings.TrimSpace(*patch.City)
		}
		if patch.Country != nil {
			plan.Country = strings.TrimSpace(*patch.Country)
		}
		if patch.Description != nil {
			plan.Description = *patch.Description
		}
		if patch.CoverImage != nil {
			plan.CoverImage = *patch.CoverImage
		}
		if patch.Summary != nil {
			plan.Summary = *patch.Summary
		}
		if patch.StartDate != nil {
			plan.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			plan.EndDate = *patch.EndDate
		}

		if plan.City == "" {
			return fmt.Errorf("%w: city is required", domain.ErrValidation)
		}
		if plan.Country == "" {
			return fmt.Errorf("%w: country is required", domain.ErrValidation)
		}
		if plan.EndDate.Before(plan.StartDate) {
			return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
		}

		plan.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return domain.TravelPlan{}, err
		}
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a plan and, transitively, all of its days and activities.
// Deleting a plan that does not exist is a no-op, not an error.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}

// AddDay appends a new empty day at the given date and re-sorts the plan's
// days ascending by date.
// Returns domain.ErrNotFound if the plan does not exist.
func (s *PlanService) AddDay(ctx context.Context, planID uuid.UUID, date domain.Date) (domain.TravelPlan, error) {
	plan, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.AddDay: %w", err)
	}

	plan.Days = append(plan.Days, domain.Day{ID: uuid.New(), Date: date, Activities: []domain.Activity{}})
	plan.SortDays()
	plan.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.AddDay: %w", err)
	}
	return updated, nil
}

// RemoveDay removes the day and cascades deletion of its activities.
// Returns domain.ErrNotFound if the plan does not exist; removing a day that
// is already gone is a no-op.
func (s *PlanService) RemoveDay(ctx context.Context, planID, dayID uuid.UUID) (domain.TravelPlan, error) {
	plan, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.RemoveDay: %w", err)
	}

	kept := plan.Days[:0:0]
	for _, d := range plan.Days {
		if d.ID != dayID {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(plan.Days) {
		return plan, nil
	}
	plan.Days = kept
	plan.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.RemoveDay: %w", err)
	}
	return updated, nil
}

// validatePlanForm enforces the creation business rules.
//   - City and country must be non-empty (whitespace-only values are rejected).
//   - The end date must not be before the start date.
func validatePlanForm(form PlanForm) error {
	if strings.TrimSpace(form.City) == "" {
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	}
	if strings.TrimSpace(form.Country) == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if form.StartDate.IsZero() || form.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if form.EndDate.Before(form.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
