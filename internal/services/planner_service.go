package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"workforce-planner/backend/internal/catalog"
	"workforce-planner/backend/internal/engine"
	"workforce-planner/backend/internal/logging"
	"workforce-planner/backend/internal/repository"
	"workforce-planner/backend/pkg/models"
)

// ErrPlanPublished is returned when a caller tries to change the content of
// a published plan. Publication is one-way and freezes content.
var ErrPlanPublished = errors.New("plan is published and its content is read-only")

// PlannerService runs the simulation pipeline and manages the plan
// lifecycle.
type PlannerService struct {
	roster  RosterSource
	store   repository.PlanStore
	catalog *catalog.Catalog
	logger  *logging.Logger

	impactCounter metric.Int64Counter
	now           func() time.Time
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(roster RosterSource, store repository.PlanStore, cat *catalog.Catalog, logger *logging.Logger) *PlannerService {
	meter := otel.Meter("workforce-planner/backend/services")
	counter, err := meter.Int64Counter("planner.impact.computations",
		metric.WithDescription("Number of impact computations by strategy"))
	if err != nil {
		logger.Warn("failed to create impact counter", "error", err)
	}
	return &PlannerService{
		roster:        roster,
		store:         store,
		catalog:       cat,
		logger:        logger,
		impactCounter: counter,
		now:           time.Now,
	}
}

// CurrentState computes the per-role current-state aggregates for a scope.
func (s *PlannerService) CurrentState(ctx context.Context, scope models.Scope) ([]models.RoleAggregate, error) {
	aggregates, _, err := s.currentState(ctx, scope)
	return aggregates, err
}

// ComputeImpact runs the full pipeline for a scenario configuration.
func (s *PlannerService) ComputeImpact(ctx context.Context, cfg models.ScenarioConfig) (models.ImpactResult, error) {
	aggregates, inScope, err := s.currentState(ctx, cfg.Scope)
	if err != nil {
		return models.ImpactResult{}, err
	}

	result := engine.ComputeImpact(aggregates, inScope, cfg)
	if s.impactCounter != nil {
		s.impactCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("strategy", string(cfg.Strategy))))
	}
	return result, nil
}

func (s *PlannerService) currentState(ctx context.Context, scope models.Scope) ([]models.RoleAggregate, []models.EmployeeProfile, error) {
	roster, err := s.roster.Roster(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}
	aggregates, inScope := engine.ComputeCurrentState(roster, s.catalog, scope)
	return aggregates, inScope, nil
}

// SavePlan persists a new draft plan. When no result is supplied the
// scenario is computed fresh.
func (s *PlannerService) SavePlan(ctx context.Context, name string, cfg models.ScenarioConfig, result *models.ImpactResult) (*models.SavedPlan, error) {
	if result == nil {
		computed, err := s.ComputeImpact(ctx, cfg)
		if err != nil {
			return nil, err
		}
		result = &computed
	}

	now := s.timestamp()
	plan := &models.SavedPlan{
		ID:           uuid.New().String(),
		Name:         name,
		Status:       models.PlanStatusDraft,
		CreatedAt:    now,
		LastModified: now,
		Config:       cfg,
		Result:       *result,
	}
	if err := s.store.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	s.logger.Info("plan saved", "id", plan.ID, "name", plan.Name)
	return plan, nil
}

// UpdatePlan merges a partial update into a draft plan. A missing id yields
// (nil, nil); content changes to a published plan are rejected. When the
// update carries edited result rows, the aggregate scalars are recomputed
// from those rows so they never go stale.
func (s *PlannerService) UpdatePlan(ctx context.Context, id string, update models.PlanUpdate) (*models.SavedPlan, error) {
	plan, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}
	if plan.Status == models.PlanStatusPublished && (update.Config != nil || update.Result != nil) {
		return nil, ErrPlanPublished
	}

	if update.Name != nil {
		plan.Name = *update.Name
	}
	if update.Config != nil {
		plan.Config = *update.Config
	}
	if update.Result != nil {
		plan.Result = *update.Result
		recalced, err := s.recalculate(ctx, plan)
		if err != nil {
			return nil, err
		}
		plan.Result = recalced
	}

	plan.LastModified = s.timestamp()
	if err := s.store.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	s.logger.Info("plan updated", "id", plan.ID)
	return plan, nil
}

// recalculate rebuilds the result's aggregate scalars from its (possibly
// edited) rows against the plan's own scope.
func (s *PlannerService) recalculate(ctx context.Context, plan *models.SavedPlan) (models.ImpactResult, error) {
	aggregates, _, err := s.currentState(ctx, plan.Config.Scope)
	if err != nil {
		return models.ImpactResult{}, err
	}
	return engine.RecalculateResult(plan.Result, aggregates, plan.Config), nil
}

// PublishPlan transitions a draft to published. Publishing is a status
// transition only; content is untouched. Publishing an already-published
// plan is a no-op.
func (s *PlannerService) PublishPlan(ctx context.Context, id string) (*models.SavedPlan, error) {
	plan, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}
	if plan.Status == models.PlanStatusPublished {
		return plan, nil
	}

	plan.Status = models.PlanStatusPublished
	plan.LastModified = s.timestamp()
	if err := s.store.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to publish plan: %w", err)
	}
	s.logger.Info("plan published", "id", plan.ID, "name", plan.Name)
	return plan, nil
}

// GetPlan retrieves a plan by id; a missing id yields nil.
func (s *PlannerService) GetPlan(ctx context.Context, id string) (*models.SavedPlan, error) {
	return s.store.Get(ctx, id)
}

// ListPlans returns all saved plans.
func (s *PlannerService) ListPlans(ctx context.Context) ([]*models.SavedPlan, error) {
	return s.store.List(ctx)
}

// DeletePlan removes a plan, reporting whether it existed.
func (s *PlannerService) DeletePlan(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

func (s *PlannerService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
