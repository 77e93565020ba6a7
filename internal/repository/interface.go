package repository

import (
	"context"

	"workforce-planner/backend/pkg/models"
)

// PlanStore is an interface for persisting saved plans. Lookups for ids
// that do not exist return (nil, nil); callers must check before use.
type PlanStore interface {
	// Save appends a new plan to the store.
	Save(ctx context.Context, plan *models.SavedPlan) error
	// Update overwrites an existing plan.
	Update(ctx context.Context, plan *models.SavedPlan) error
	// Get retrieves a plan by its id.
	Get(ctx context.Context, id string) (*models.SavedPlan, error)
	// List returns all plans, oldest first.
	List(ctx context.Context) ([]*models.SavedPlan, error)
	// Delete removes a plan, reporting whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}
