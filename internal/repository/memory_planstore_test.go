package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-planner/backend/pkg/models"
)

func memoryPlan(name, createdAt string) *models.SavedPlan {
	return &models.SavedPlan{
		ID:           uuid.New().String(),
		Name:         name,
		Status:       models.PlanStatusDraft,
		CreatedAt:    createdAt,
		LastModified: createdAt,
		Config: models.ScenarioConfig{
			Strategy:        models.StrategyBalanced,
			PlanningHorizon: 12,
		},
		Result: models.ImpactResult{
			TotalCostSavings: 1000,
			SkillsGap: []models.SkillsGapEntry{
				{Role: "Software Engineer", EmployeeCount: 4, TrainingInvestment: 10000},
			},
		},
	}
}

func TestMemoryPlanStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPlanStore()

	t.Run("Save and Get", func(t *testing.T) {
		plan := memoryPlan("baseline", "2026-01-10T09:00:00Z")
		require.NoError(t, store.Save(ctx, plan))

		got, err := store.Get(ctx, plan.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, plan, got)
	})

	t.Run("Get missing id yields nil", func(t *testing.T) {
		got, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Update", func(t *testing.T) {
		plan := memoryPlan("draft", "2026-01-11T09:00:00Z")
		require.NoError(t, store.Save(ctx, plan))

		plan.Name = "renamed"
		plan.Status = models.PlanStatusPublished
		require.NoError(t, store.Update(ctx, plan))

		got, err := store.Get(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Name)
		assert.Equal(t, models.PlanStatusPublished, got.Status)
	})

	t.Run("List ordered by creation time", func(t *testing.T) {
		store := NewMemoryPlanStore()
		second := memoryPlan("second", "2026-02-02T09:00:00Z")
		first := memoryPlan("first", "2026-02-01T09:00:00Z")
		require.NoError(t, store.Save(ctx, second))
		require.NoError(t, store.Save(ctx, first))

		plans, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, "first", plans[0].Name)
		assert.Equal(t, "second", plans[1].Name)
	})

	t.Run("Delete", func(t *testing.T) {
		plan := memoryPlan("doomed", "2026-01-12T09:00:00Z")
		require.NoError(t, store.Save(ctx, plan))

		deleted, err := store.Delete(ctx, plan.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.Delete(ctx, plan.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("stored plans do not alias caller slices", func(t *testing.T) {
		plan := memoryPlan("isolated", "2026-01-13T09:00:00Z")
		require.NoError(t, store.Save(ctx, plan))

		plan.Result.SkillsGap[0].EmployeeCount = 99

		got, err := store.Get(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Result.SkillsGap[0].EmployeeCount)

		got.Result.SkillsGap[0].EmployeeCount = 77
		again, err := store.Get(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, again.Result.SkillsGap[0].EmployeeCount)
	})
}
