package engine

import (
	"workforce-planner/backend/internal/catalog"
	"workforce-planner/backend/pkg/models"
)

// ComputeCurrentState runs the front half of the pipeline in its required
// order: synthesis completes before scope filtering, which completes before
// aggregation. It returns the per-role aggregates plus the in-scope roster,
// which the impact calculator needs for employee-level allocation.
func ComputeCurrentState(roster []models.EmployeeProfile, cat *catalog.Catalog, scope models.Scope) ([]models.RoleAggregate, []models.EmployeeProfile) {
	tasks := SynthesizeTasks(roster, cat)
	inScope := FilterScope(roster, scope)
	scoped := InScopeTasks(tasks, inScope)
	return Aggregate(inScope, scoped), inScope
}
