// Package repo contains the persistence layer for the travel planner.
// The root collection of travel plans lives in memory and is written out as
// a single JSON blob on every mutation; no business logic lives here, only
// storage and defensive copying.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/tfield/travel-planner/internal/domain"
)

// plansKey is the single blob under which the entire root collection is
// stored. Everything the application persists is reachable through it.
const plansKey = "plans.json"

// PlanRepo defines the persistence operations for TravelPlans.
// The service layer depends on this interface, not the concrete blob-store
// implementation, which allows the services to be unit-tested with a mock.
//
// Implementations must hand out deep copies only: a plan returned by a read
// must never alias stored state, and a plan passed to a write must be copied
// before it is kept. Combined with whole-collection writes this guarantees
// that no caller can ever observe a partially applied mutation.
type PlanRepo interface {
	// List returns every plan in insertion order.
	List(ctx context.Context) ([]domain.TravelPlan, error)

	// ListPaged returns one page of plans in insertion order, plus the total
	// number of plans in the collection.
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.TravelPlan, int, error)

	// GetByID retrieves a single plan by id.
	// Returns domain.ErrNotFound if no plan with that id exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error)

	// Create appends a new plan to the collection and persists.
	// The caller is responsible for id and timestamp assignment.
	Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)

	// Update replaces the stored plan with the same id and persists.
	// Returns domain.ErrNotFound if no plan with that id exists.
	Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)

	// Mutate atomically applies fn to the stored plan with the given id and
	// persists the result. fn runs under the write lock on a deep copy of the
	// current plan, so no other read or write can land between the lookup and
	// the store; a patch computed elsewhere can never overwrite state it did
	// not see. An error returned by fn aborts the mutation with nothing
	// written and is passed back to the caller unwrapped.
	// Returns domain.ErrNotFound if no plan with that id exists.
	Mutate(ctx context.Context, id uuid.UUID, fn func(plan *domain.TravelPlan) error) (domain.TravelPlan, error)

	// Delete removes a plan and everything it owns.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// blobPlanRepo is the diskv-backed implementation of PlanRepo.
// All reads are served from the in-memory slice; every mutation rebuilds the
// slice, writes the whole collection as one blob, and only then swaps the
// new slice in, so a failed write leaves both memory and disk untouched.
type blobPlanRepo struct {
	mu    sync.RWMutex
	plans []domain.TravelPlan
	d     *diskv.Diskv
	log   *slog.Logger
}

// NewPlanRepo constructs a PlanRepo backed by a diskv store rooted at
// basePath, loading any previously persisted collection. A missing or
// unreadable blob yields an empty collection rather than an error; there is
// no migration logic by design.
func NewPlanRepo(basePath string, log *slog.Logger) (PlanRepo, error) {
	if log == nil {
		log = slog.Default()
	}
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})

	r := &blobPlanRepo{d: d, log: log}

	data, err := d.Read(plansKey)
	if err != nil {
		// First run has no blob. Any other read failure still starts empty,
		// but the operator gets a line to tell the two apart.
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("stored plan collection could not be read, starting empty",
				"key", plansKey,
				"error", err,
			)
		}
		return r, nil
	}
	var plans []domain.TravelPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		log.Warn("stored plan collection is unreadable, starting empty",
			"key", plansKey,
			"error", err,
		)
		return r, nil
	}
	r.plans = plans
	return r, nil
}

// persist writes the given collection as the single blob.
// Callers must hold the write lock and must only swap the collection into
// memory after persist succeeds.
func (r *blobPlanRepo) persist(plans []domain.TravelPlan) error {
	data, err := json.Marshal(plans)
	if err != nil {
		return err
	}
	return r.d.Write(plansKey, data)
}

// List returns deep copies of every plan in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (r *blobPlanRepo) List(ctx context.Context) ([]domain.TravelPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TravelPlan, len(r.plans))
	for i, p := range r.plans {
		out[i] = p.Clone()
	}
	return out, nil
}

// ListPaged returns one page of deep copies plus the total count.
func (r *blobPlanRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.TravelPlan, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.plans)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	out := make([]domain.TravelPlan, 0, end-start)
	for _, p := range r.plans[start:end] {
		out = append(out, p.Clone())
	}
	return out, total, nil
}

// GetByID retrieves a deep copy of a plan by id.
func (r *blobPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plans {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", domain.ErrNotFound)
}

// Create appends the plan and persists the whole collection.
func (r *blobPlanRepo) Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.TravelPlan, len(r.plans), len(r.plans)+1)
	copy(next, r.plans)
	next = append(next, plan.Clone())

	if err := r.persist(next); err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}
	r.plans = next
	return plan.Clone(), nil
}

// Update replaces the stored plan with the same id and persists.
func (r *blobPlanRepo) Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.plans {
		if p.ID == plan.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.Update: %w", domain.ErrNotFound)
	}

	next := make([]domain.TravelPlan, len(r.plans))
	copy(next, r.plans)
	next[idx] = plan.Clone()

	if err := r.persist(next); err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.Update: %w", err)
	}
	r.plans = next
	return plan.Clone(), nil
}

// Mutate applies fn to a deep copy of the stored plan under the write lock
// and persists the result.
func (r *blobPlanRepo) Mutate(ctx context.Context, id uuid.UUID, fn func(plan *domain.TravelPlan) error) (domain.TravelPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.plans {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.Mutate: %w", domain.ErrNotFound)
	}

	plan := r.plans[idx].Clone()
	if err := fn(&plan); err != nil {
		return domain.TravelPlan{}, err
	}

	next := make([]domain.TravelPlan, len(r.plans))
	copy(next, r.plans)
	next[idx] = plan.Clone()

	if err := r.persist(next); err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.Mutate: %w", err)
	}
	r.plans = next
	return plan, nil
}

// Delete removes the plan with the given id and persists.
// Days and activities are owned by the plan, so removal cascades for free.
func (r *blobPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.plans {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}

	next := make([]domain.TravelPlan, 0, len(r.plans)-1)
	next = append(next, r.plans[:idx]...)
	next = append(next, r.plans[idx+1:]...)

	if err := r.persist(next); err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	r.plans = next
	return nil
}
