package engine

import (
	"sort"

	"workforce-planner/backend/pkg/models"
)

const topTaskCount = 5

// Aggregate rolls the in-scope employees and their tasks up into per-role
// current-state metrics. Roles are ordered by name so output is stable.
func Aggregate(employees []models.EmployeeProfile, tasks []models.Task) []models.RoleAggregate {
	type roleAccum struct {
		roleID    string
		roleName  string
		headcount int
		cost      float64
	}

	accums := make(map[string]*roleAccum)
	var roleOrder []string
	for _, emp := range employees {
		acc, ok := accums[emp.CurrentRoleID]
		if !ok {
			acc = &roleAccum{roleID: emp.CurrentRoleID, roleName: emp.CurrentRoleName}
			accums[emp.CurrentRoleID] = acc
			roleOrder = append(roleOrder, emp.CurrentRoleID)
		}
		acc.headcount++
		acc.cost += normalizeCompensation(emp.TotalCompensation, emp.Currency)
	}

	tasksByRole := make(map[string][]models.Task)
	for _, t := range tasks {
		tasksByRole[t.RoleID] = append(tasksByRole[t.RoleID], t)
	}

	aggregates := make([]models.RoleAggregate, 0, len(accums))
	for _, roleID := range roleOrder {
		acc := accums[roleID]
		merged, totalHours := mergeTasks(tasksByRole[roleID])

		var automatable float64
		for _, t := range merged {
			if t.AutomationScore > models.AutomationThreshold {
				automatable += t.HoursPerWeek
			}
		}

		top := merged
		if len(top) > topTaskCount {
			top = top[:topTaskCount]
		}

		aggregates = append(aggregates, models.RoleAggregate{
			RoleID:           acc.roleID,
			RoleName:         acc.roleName,
			Headcount:        acc.headcount,
			AnnualCost:       acc.cost,
			AllTasks:         merged,
			TopTasks:         top,
			TotalHours:       totalHours,
			AutomatableHours: automatable,
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].RoleName < aggregates[j].RoleName
	})
	return aggregates
}

// mergeTasks deduplicates a role's tasks by name: hours sum, scores
// average, the capability tag of the first occurrence sticks. The result is
// ranked by hours descending (ties by name) with percentages of the role's
// total; a role with zero hours reports 0% everywhere.
func mergeTasks(tasks []models.Task) ([]models.RoleTask, float64) {
	type taskAccum struct {
		name       string
		hours      float64
		scoreSum   float64
		scoreCount int
		capability models.AICapability
	}

	accums := make(map[string]*taskAccum)
	var order []string
	for _, t := range tasks {
		acc, ok := accums[t.TaskName]
		if !ok {
			acc = &taskAccum{name: t.TaskName, capability: t.AICapabilityMatch}
			accums[t.TaskName] = acc
			order = append(order, t.TaskName)
		}
		acc.hours += t.HoursPerWeek
		acc.scoreSum += float64(t.AutomationScore)
		acc.scoreCount++
	}

	var totalHours float64
	merged := make([]models.RoleTask, 0, len(accums))
	for _, name := range order {
		acc := accums[name]
		totalHours += acc.hours
		merged = append(merged, models.RoleTask{
			TaskName:          acc.name,
			HoursPerWeek:      acc.hours,
			AutomationScore:   acc.scoreSum / float64(acc.scoreCount),
			AICapabilityMatch: acc.capability,
		})
	}

	for i := range merged {
		if totalHours > 0 {
			merged[i].Percentage = merged[i].HoursPerWeek / totalHours * 100
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].HoursPerWeek != merged[j].HoursPerWeek {
			return merged[i].HoursPerWeek > merged[j].HoursPerWeek
		}
		return merged[i].TaskName < merged[j].TaskName
	})
	return merged, totalHours
}

// normalizeCompensation converts compensation to USD. Only INR is modeled.
func normalizeCompensation(amount float64, currency string) float64 {
	if currency == "INR" {
		return amount / models.FXRateINR
	}
	return amount
}
