package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-planner/backend/pkg/models"
)

func allocEmployee(id string, tenure int, engagement, readiness, redeploy float64) models.EmployeeProfile {
	return models.EmployeeProfile{
		ID:           id,
		Name:         "Employee " + id,
		TenureMonths: tenure,
		Performance:  &models.PerformanceProfile{EngagementScore: engagement},
		Readiness:    &models.ReadinessProfile{ReadinessScore: readiness},
		Redeployment: &models.RedeploymentProfile{RedeploymentScore: redeploy},
	}
}

func TestAllocateRedeployment(t *testing.T) {
	employees := []models.EmployeeProfile{
		allocEmployee("e1", 24, 80, 50, 40), // rank 80
		allocEmployee("e2", 36, 40, 50, 90), // rank 110
		allocEmployee("e3", 48, 60, 50, 70), // rank 100
	}

	t.Run("ranked best first, pool is ceil of affected", func(t *testing.T) {
		pool := allocateRedeployment(employees, 1.2)
		require.Len(t, pool, 2)
		assert.Equal(t, "e2", pool[0].ID)
		assert.Equal(t, "e3", pool[1].ID)
	})

	t.Run("capped at headcount", func(t *testing.T) {
		pool := allocateRedeployment(employees, 7.5)
		assert.Len(t, pool, 3)
	})

	t.Run("nothing affected", func(t *testing.T) {
		assert.Empty(t, allocateRedeployment(employees, 0))
	})

	t.Run("ties break on id", func(t *testing.T) {
		tied := []models.EmployeeProfile{
			allocEmployee("b", 0, 50, 0, 50),
			allocEmployee("a", 0, 50, 0, 50),
		}
		pool := allocateRedeployment(tied, 1)
		assert.Equal(t, "a", pool[0].ID)
	})
}

func TestAllocateReductionCategoryOrders(t *testing.T) {
	employees := []models.EmployeeProfile{
		allocEmployee("e1", 240, 90, 90, 10),
		allocEmployee("e2", 12, 20, 15, 20),
		allocEmployee("e3", 120, 50, 40, 95),
		allocEmployee("e4", 60, 30, 25, 50),
		allocEmployee("e5", 6, 85, 80, 30),
	}

	// "AAAA" has seed 0; a target of 3 touches retirement, voluntary and
	// redeployment, one employee each.
	details := allocateReduction(employees, 3, "AAAA", nil)

	require.Len(t, details.RetirementEligible, 1)
	assert.Equal(t, "e1", details.RetirementEligible[0].ID, "longest tenure retires first")
	require.Len(t, details.VoluntaryAttrition, 1)
	assert.Equal(t, "e2", details.VoluntaryAttrition[0].ID, "lowest readiness leaves voluntarily")
	require.Len(t, details.Redeployment, 1)
	assert.Equal(t, "e3", details.Redeployment[0].ID, "highest redeployment score moves")
	assert.Empty(t, details.Involuntary)
}

func TestAllocateReductionDisjointAndCapped(t *testing.T) {
	var employees []models.EmployeeProfile
	for i := 0; i < 12; i++ {
		employees = append(employees, allocEmployee(
			fmt.Sprintf("e%02d", i), 12*i, float64(30+i*3), float64(20+i*5), float64(10+i*7)))
	}

	t.Run("every allocated employee is unique", func(t *testing.T) {
		details := allocateReduction(employees, 10, "AAAA", nil)
		assert.Equal(t, 10, details.Total())

		seen := make(map[string]bool)
		for _, refs := range [][]models.EmployeeRef{
			details.RetirementEligible, details.VoluntaryAttrition,
			details.Redeployment, details.Involuntary,
		} {
			for _, ref := range refs {
				assert.False(t, seen[ref.ID], "employee %s allocated twice", ref.ID)
				seen[ref.ID] = true
			}
		}
	})

	t.Run("target capped at available pool", func(t *testing.T) {
		details := allocateReduction(employees[:4], 10, "AAAA", nil)
		assert.Equal(t, 4, details.Total())
	})

	t.Run("claimed employees are excluded", func(t *testing.T) {
		claimed := map[string]bool{"e11": true, "e10": true}
		details := allocateReduction(employees, 10, "AAAA", claimed)
		assert.Equal(t, 10, details.Total())

		for _, refs := range [][]models.EmployeeRef{
			details.RetirementEligible, details.VoluntaryAttrition,
			details.Redeployment, details.Involuntary,
		} {
			for _, ref := range refs {
				assert.NotContains(t, claimed, ref.ID)
			}
		}
	})

	t.Run("zero target", func(t *testing.T) {
		details := allocateReduction(employees, 0, "AAAA", nil)
		assert.Equal(t, 0, details.Total())
	})
}

func TestCategoryCountsSumToTarget(t *testing.T) {
	for seed := 0; seed < 4; seed++ {
		for target := 1; target <= 30; target++ {
			counts := categoryCounts(target, seed)
			sum := 0
			for _, n := range counts {
				assert.GreaterOrEqual(t, n, 0, "seed %d target %d", seed, target)
				sum += n
			}
			assert.Equal(t, target, sum, "seed %d target %d", seed, target)
			if target > 3 {
				assert.GreaterOrEqual(t, counts[catRetirement], 1)
				assert.GreaterOrEqual(t, counts[catVoluntary], 1)
				assert.GreaterOrEqual(t, counts[catRedeployment], 1)
			}
		}
	}
}

func TestDistributionSeedStable(t *testing.T) {
	assert.Equal(t, distributionSeed("Software Engineer"), distributionSeed("Software Engineer"))
	assert.Equal(t, 0, distributionSeed("AAAA"))
	assert.Equal(t, 1, distributionSeed("AAAB"))
}
