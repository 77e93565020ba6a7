package engine

import "workforce-planner/backend/pkg/models"

// Edit-mode recalculation. When a draft plan's rows are edited by hand the
// aggregate scalars must be recomputed from the edited rows, never left
// stale. Freed hours are taken from a priority-ordered list of sources —
// task-priority rows first, transition-plan rows second — and the first
// source with a non-zero total wins. This order is part of the plan-editing
// contract. headcountReductionPotential is recomputed strictly from the
// transition plan's reduction targets: editing task-priority hours never
// moves it.

// RecalculateResult rebuilds an edited result's aggregate scalars
// (totalCostSavings, totalCapacityGained, investment totals, netSavings,
// paybackPeriodMonths, headcountReductionPotential and the percent fields)
// from its row tables. current supplies per-role headcount, cost and total
// hours for the productivity-gain formula.
func RecalculateResult(result models.ImpactResult, current []models.RoleAggregate, cfg models.ScenarioConfig) models.ImpactResult {
	mult := cfg.HorizonMultiplier()

	freedByRole := freedHoursFromPriorities(result.TaskPriorities)
	if totalOf(freedByRole) == 0 {
		freedByRole = freedHoursFromTransitions(result.TransitionPlan)
	}

	var totalAnnualCost, totalWeeklyHours float64
	recalced := result
	recalced.TotalCostSavings = 0
	recalced.TotalCapacityGained = 0
	recalced.CostSavingsPercent = 0
	recalced.CapacityGainedPercent = 0
	recalced.PaybackPeriodMonths = 0

	for _, role := range current {
		totalAnnualCost += role.AnnualCost
		totalWeeklyHours += role.TotalHours

		freed, ok := freedByRole[role.RoleName]
		if !ok || freed == 0 {
			continue
		}
		if role.Headcount > 0 {
			gain := freed / (float64(role.Headcount) * models.HoursPerWeek)
			recalced.TotalCostSavings += role.AnnualCost * gain * mult
		}
		recalced.TotalCapacityGained += freed * mult / models.HoursPerWeek
	}

	recalced.TotalTrainingInvestment = 0
	for _, gap := range result.SkillsGap {
		recalced.TotalTrainingInvestment += gap.TrainingInvestment
	}
	recalced.TotalAIToolCost = float64(len(result.TaskPriorities)) * models.AIToolCostPerHead * mult
	recalced.TotalInvestment = recalced.TotalTrainingInvestment + recalced.TotalAIToolCost
	recalced.NetSavings = recalced.TotalCostSavings - recalced.TotalInvestment

	recalced.HeadcountReductionPotential = reductionPotential(result.TransitionPlan, cfg.Strategy)

	if totalAnnualCost > 0 && mult > 0 {
		recalced.CostSavingsPercent = recalced.TotalCostSavings / (totalAnnualCost * mult) * 100
	}
	if totalWeeklyHours > 0 {
		recalced.CapacityGainedPercent = totalOf(freedByRole) / totalWeeklyHours * 100
	}
	if recalced.TotalInvestment > 0 && recalced.TotalCostSavings > 0 {
		recalced.PaybackPeriodMonths = recalced.TotalInvestment / (recalced.TotalCostSavings / mult) * 12
	}

	return recalced
}

func freedHoursFromPriorities(priorities []models.TaskPriority) map[string]float64 {
	freed := make(map[string]float64)
	for _, p := range priorities {
		freed[p.Role] += p.HoursFreedPerWeek
	}
	return freed
}

func freedHoursFromTransitions(plan []models.TransitionPlanEntry) map[string]float64 {
	freed := make(map[string]float64)
	for _, entry := range plan {
		freed[entry.Role] += entry.HoursFreed
	}
	return freed
}

func totalOf(byRole map[string]float64) float64 {
	var total float64
	for _, v := range byRole {
		total += v
	}
	return total
}
