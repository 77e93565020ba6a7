package engine

import (
	"math"

	"workforce-planner/backend/pkg/models"
)

// ComputeImpact converts current-state aggregates into the scenario's
// projected impact: savings, capacity, investment, task priorities,
// transition plan and skills gap. employees must be the same in-scope
// roster the aggregates were built from; allocation and skills derivation
// work at the employee level.
func ComputeImpact(current []models.RoleAggregate, employees []models.EmployeeProfile, cfg models.ScenarioConfig) models.ImpactResult {
	rate := cfg.AdoptionRate.Value()
	mult := cfg.HorizonMultiplier()

	byRole := employeesByRole(employees)

	result := models.ImpactResult{
		TaskPriorities: []models.TaskPriority{},
		TransitionPlan: []models.TransitionPlanEntry{},
		SkillsGap:      []models.SkillsGapEntry{},
	}

	var totalAnnualCost, totalWeeklyHours, totalFreedWeekly float64
	inScopeHeadcount := len(employees)

	for _, role := range current {
		totalAnnualCost += role.AnnualCost
		totalWeeklyHours += role.TotalHours

		eligible := eligibleTasks(role.AllTasks, cfg.EnabledCapabilities)
		if len(eligible) == 0 {
			// Nothing automatable under this scenario; the role
			// contributes nothing to savings, capacity or the plan.
			continue
		}

		var roleFreedWeekly float64
		for idx, task := range eligible {
			freed := task.HoursPerWeek * rate
			roleFreedWeekly += freed

			phase := phaseFor(idx, cfg.ImplementationTimeline)
			result.TaskPriorities = append(result.TaskPriorities, models.TaskPriority{
				Role:              role.RoleName,
				TaskName:          task.TaskName,
				HoursFreedPerWeek: freed,
				HoursFreedTotal:   freed * models.WeeksPerYear * mult,
				AutomationScore:   task.AutomationScore,
				AICapabilityMatch: task.AICapabilityMatch,
				Phase:             phase,
				QuickWin:          freed > models.QuickWinHoursPerWeek && phase == "Q1",
			})
		}

		totalFreedWeekly += roleFreedWeekly

		if role.Headcount > 0 {
			gain := roleFreedWeekly / (float64(role.Headcount) * models.HoursPerWeek)
			result.TotalCostSavings += role.AnnualCost * gain * mult
		}
		result.TotalCapacityGained += roleFreedWeekly * models.WeeksPerYear * mult /
			(models.HoursPerWeek * models.WeeksPerYear)

		if roleFreedWeekly > 0 {
			entry := transitionEntry(role, byRole[role.RoleID], roleFreedWeekly, cfg)
			result.TransitionPlan = append(result.TransitionPlan, entry)
		}
	}

	result.HeadcountReductionPotential = reductionPotential(result.TransitionPlan, cfg.Strategy)
	result.SkillsGap = BuildSkillsGap(result.TransitionPlan, result.TaskPriorities, current, byRole, cfg)

	for _, gap := range result.SkillsGap {
		result.TotalTrainingInvestment += gap.TrainingInvestment
	}
	result.TotalAIToolCost = float64(inScopeHeadcount) * models.AIToolCostPerHead * mult
	result.TotalInvestment = result.TotalTrainingInvestment + result.TotalAIToolCost
	result.NetSavings = result.TotalCostSavings - result.TotalInvestment

	// Zero denominators yield 0, never NaN or Inf.
	if totalAnnualCost > 0 && mult > 0 {
		result.CostSavingsPercent = result.TotalCostSavings / (totalAnnualCost * mult) * 100
	}
	if totalWeeklyHours > 0 {
		result.CapacityGainedPercent = totalFreedWeekly / totalWeeklyHours * 100
	}
	if result.TotalInvestment > 0 && result.TotalCostSavings > 0 {
		result.PaybackPeriodMonths = result.TotalInvestment / (result.TotalCostSavings / mult) * 12
	}

	return result
}

// eligibleTasks keeps the tasks automatable under this scenario: automation
// score above the threshold and an enabled capability tag. Input order
// (hours descending from aggregation) is preserved, which fixes the phase
// assignment order.
func eligibleTasks(tasks []models.RoleTask, caps models.Capabilities) []models.RoleTask {
	var eligible []models.RoleTask
	for _, t := range tasks {
		if t.AutomationScore > models.AutomationThreshold && caps.Enabled(t.AICapabilityMatch) {
			eligible = append(eligible, t)
		}
	}
	return eligible
}

// phaseFor assigns a rollout quarter. Immediate timelines put everything in
// Q1; phased timelines stagger by the task's rank within its role.
func phaseFor(idx int, timeline models.Timeline) string {
	if timeline == models.TimelineImmediate {
		return "Q1"
	}
	switch {
	case idx < 2:
		return "Q1"
	case idx < 4:
		return "Q2"
	default:
		return "Q3"
	}
}

// transitionEntry builds one role's transition row, including the
// strategy-dependent employee allocation.
func transitionEntry(role models.RoleAggregate, roleEmployees []models.EmployeeProfile, freedWeekly float64, cfg models.ScenarioConfig) models.TransitionPlanEntry {
	rule := matchSkillRule(role.RoleName)
	entry := models.TransitionPlanEntry{
		Role:                  role.RoleName,
		HoursFreed:            freedWeekly,
		ReskillRecommendation: reskillRecommendation(rule, cfg.EnabledCapabilities),
		RedeploymentOption:    rule.RedeployTarget,
	}

	fte := freedWeekly / models.HoursPerWeek

	switch cfg.Strategy {
	case models.StrategyCost:
		target := int(math.Round(fte))
		entry.ReductionTarget = &target
		entry.AffectedHeadcount = float64(target)
		details := allocateReduction(roleEmployees, target, role.RoleName, nil)
		entry.ReductionDetails = &details
	case models.StrategyBalanced:
		target := int(math.Round(fte * models.BalancedReductionShare))
		entry.ReductionTarget = &target
		entry.AffectedHeadcount = fte * models.BalancedReductionShare
		pool := allocateRedeployment(roleEmployees, entry.AffectedHeadcount)
		entry.RedeploymentDetails = &models.RedeploymentDetails{Employees: pool}
		claimed := make(map[string]bool, len(pool))
		for _, ref := range pool {
			claimed[ref.ID] = true
		}
		details := allocateReduction(roleEmployees, target, role.RoleName, claimed)
		entry.ReductionDetails = &details
	default: // capacity
		entry.AffectedHeadcount = fte
		pool := allocateRedeployment(roleEmployees, fte)
		entry.RedeploymentDetails = &models.RedeploymentDetails{Employees: pool}
	}

	return entry
}

// reductionPotential sums reduction targets; it is defined as 0 for the
// capacity strategy, which plans no reductions.
func reductionPotential(plan []models.TransitionPlanEntry, strategy models.Strategy) int {
	if strategy == models.StrategyCapacity {
		return 0
	}
	total := 0
	for _, entry := range plan {
		if entry.ReductionTarget != nil {
			total += *entry.ReductionTarget
		}
	}
	return total
}

func employeesByRole(employees []models.EmployeeProfile) map[string][]models.EmployeeProfile {
	byRole := make(map[string][]models.EmployeeProfile)
	for _, emp := range employees {
		byRole[emp.CurrentRoleID] = append(byRole[emp.CurrentRoleID], emp)
	}
	return byRole
}
