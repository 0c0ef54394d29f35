package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/enrich"
)

// SummaryFetcher looks up a short description of a city.
// ok=false means "nothing found or lookup failed"; there is no error path.
type SummaryFetcher interface {
	FetchCitySummary(ctx context.Context, city, country string) (enrich.CitySummary, bool)
}

// ImageFetcher looks up a cover photo URL for a city; "" means none.
type ImageFetcher interface {
	FetchCityImage(ctx context.Context, city string) string
}

// PlanUpdater is the slice of PlanService the enrichment flow needs.
type PlanUpdater interface {
	Update(ctx context.Context, id uuid.UUID, patch PlanPatch) (domain.TravelPlan, error)
}

// enrichTimeout bounds a single background lookup. There is no cancellation
// beyond this: a lookup either lands within the window or is dropped.
const enrichTimeout = 15 * time.Second

// EnrichService attaches best-effort side data (city summary, cover image)
// to plans. Lookups run as detached fire-and-forget tasks; nothing awaits
// them and no failure ever reaches a user. Two lookups for the same plan may
// race, in which case the last write wins. That is acceptable because enrichment
// only ever touches the cosmetic CoverImage/Summary fields, never the
// day/activity tree.
type EnrichService struct {
	plans     PlanUpdater
	summaries SummaryFetcher
	images    ImageFetcher
	log       *slog.Logger
}

// NewEnrichService constructs an EnrichService.
func NewEnrichService(plans PlanUpdater, summaries SummaryFetcher, images ImageFetcher, log *slog.Logger) *EnrichService {
	if log == nil {
		log = slog.Default()
	}
	return &EnrichService{plans: plans, summaries: summaries, images: images, log: log}
}

// Kick launches background lookups for whatever the plan is missing.
// It returns immediately; completions merge into current state by id, and a
// plan deleted in the meantime makes the merge a silent no-op.
func (s *EnrichService) Kick(plan domain.TravelPlan) {
	if plan.Summary == "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
			defer cancel()
			s.EnrichSummary(ctx, plan)
		}()
	}
	if plan.CoverImage == "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
			defer cancel()
			s.EnrichCover(ctx, plan)
		}()
	}
}

// EnrichSummary performs one synchronous summary lookup-and-merge.
// Every failure is absorbed; the plan keeps its prior (possibly absent)
// summary and the next visit to the plan is the natural retry point.
func (s *EnrichService) EnrichSummary(ctx context.Context, plan domain.TravelPlan) {
	sum, ok := s.summaries.FetchCitySummary(ctx, plan.City, plan.Country)
	if !ok {
		s.log.Debug("city summary unavailable", "plan_id", plan.ID, "city", plan.City)
		return
	}
	if _, err := s.plans.Update(ctx, plan.ID, PlanPatch{Summary: &sum.Extract}); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Debug("summary merge failed", "plan_id", plan.ID, "error", err)
		}
	}
}

// EnrichCover performs one synchronous cover-image lookup-and-merge.
// An empty lookup result leaves the plan entirely unchanged; the rendering
// side derives a deterministic placeholder instead (enrich.PlaceholderKey).
func (s *EnrichService) EnrichCover(ctx context.Context, plan domain.TravelPlan) {
	url := s.images.FetchCityImage(ctx, plan.City)
	if url == "" {
		s.log.Debug("city image unavailable", "plan_id", plan.ID, "city", plan.City)
		return
	}
	if _, err := s.plans.Update(ctx, plan.ID, PlanPatch{CoverImage: &url}); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Debug("cover merge failed", "plan_id", plan.ID, "error", err)
		}
	}
}
