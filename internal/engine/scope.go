package engine

import "workforce-planner/backend/pkg/models"

// FilterScope narrows the roster to the scenario's selected business units,
// locations and job families. An employee is in scope only when all three
// dimensions match. An empty selection in any dimension yields an empty
// roster: that is the "no scope chosen" state, not an error.
func FilterScope(roster []models.EmployeeProfile, scope models.Scope) []models.EmployeeProfile {
	if len(scope.BusinessUnits) == 0 || len(scope.Locations) == 0 || len(scope.JobFamilies) == 0 {
		return nil
	}

	units := toSet(scope.BusinessUnits)
	locations := toSet(scope.Locations)
	families := toSet(scope.JobFamilies)

	var filtered []models.EmployeeProfile
	for _, emp := range roster {
		if units[emp.BusinessUnit] && locations[emp.Location] && families[emp.JobFamily] {
			filtered = append(filtered, emp)
		}
	}
	return filtered
}

// InScopeTasks keeps the tasks whose role has at least one in-scope
// profile; tasks inherit scope through their role id.
func InScopeTasks(tasks []models.Task, inScope []models.EmployeeProfile) []models.Task {
	if len(inScope) == 0 {
		return nil
	}
	roles := make(map[string]bool, len(inScope))
	for _, emp := range inScope {
		roles[emp.CurrentRoleID] = true
	}
	var filtered []models.Task
	for _, t := range tasks {
		if roles[t.RoleID] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
