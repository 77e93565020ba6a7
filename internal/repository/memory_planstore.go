package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"workforce-planner/backend/pkg/models"
)

// MemoryPlanStore is an in-memory implementation of the PlanStore
// interface, used by tests and when the service runs without a database.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*models.SavedPlan
	order []string
}

// NewMemoryPlanStore creates an empty MemoryPlanStore.
func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: make(map[string]*models.SavedPlan)}
}

// Save appends a new plan to the store.
func (s *MemoryPlanStore) Save(_ context.Context, plan *models.SavedPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.plans[plan.ID]; !exists {
		s.order = append(s.order, plan.ID)
	}
	s.plans[plan.ID] = clonePlan(plan)
	return nil
}

// Update overwrites an existing plan.
func (s *MemoryPlanStore) Update(_ context.Context, plan *models.SavedPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.plans[plan.ID]; exists {
		s.plans[plan.ID] = clonePlan(plan)
	}
	return nil
}

// Get retrieves a plan by its id; a missing id yields nil.
func (s *MemoryPlanStore) Get(_ context.Context, id string) (*models.SavedPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, nil
	}
	return clonePlan(plan), nil
}

// List returns all plans in insertion order.
func (s *MemoryPlanStore) List(_ context.Context) ([]*models.SavedPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order := make([]string, len(s.order))
	copy(order, s.order)
	sort.SliceStable(order, func(i, j int) bool {
		return s.plans[order[i]].CreatedAt < s.plans[order[j]].CreatedAt
	})
	plans := make([]*models.SavedPlan, 0, len(order))
	for _, id := range order {
		plans = append(plans, clonePlan(s.plans[id]))
	}
	return plans, nil
}

// Delete removes a plan, reporting whether it existed.
func (s *MemoryPlanStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return false, nil
	}
	delete(s.plans, id)
	for i, planID := range s.order {
		if planID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// clonePlan deep-copies a plan so callers cannot alias stored row slices.
func clonePlan(plan *models.SavedPlan) *models.SavedPlan {
	data, err := json.Marshal(plan)
	if err != nil {
		copied := *plan
		return &copied
	}
	var copied models.SavedPlan
	if err := json.Unmarshal(data, &copied); err != nil {
		fallback := *plan
		return &fallback
	}
	return &copied
}
