package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-planner/backend/internal/catalog"
	"workforce-planner/backend/pkg/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func testEmployee(id, roleID, roleName string) models.EmployeeProfile {
	return models.EmployeeProfile{
		ID:              id,
		Name:            "Employee " + id,
		CurrentRoleID:   roleID,
		CurrentRoleName: roleName,
	}
}

func TestSynthesizeTasksDeterministic(t *testing.T) {
	cat := testCatalog(t)
	roster := []models.EmployeeProfile{
		testEmployee("emp-1", "SWE1", "Software Engineer"),
		testEmployee("emp-2", "QA1", "QA Analyst"),
		testEmployee("emp-3", "FIN1", "Finance Associate"),
	}

	first := SynthesizeTasks(roster, cat)
	second := SynthesizeTasks(roster, cat)

	assert.Equal(t, first, second, "synthesis must be reproducible")
	assert.NotEmpty(t, first)
}

func TestSynthesizeTasksHoursSumToForty(t *testing.T) {
	cat := testCatalog(t)
	roster := []models.EmployeeProfile{
		testEmployee("emp-a", "SWE1", "Software Engineer"),
		testEmployee("emp-b", "CS1", "Customer Support Specialist"),
		testEmployee("emp-c", "ROLE-X", "Senior Staff Lead"),
		testEmployee("emp-d", "ROLE-Y", "Completely Unknown Role"),
	}

	tasks := SynthesizeTasks(roster, cat)

	byEmployee := make(map[string]float64)
	for _, task := range tasks {
		byEmployee[task.RoleID+"/"+task.RoleName] = byEmployee[task.RoleID+"/"+task.RoleName] + task.HoursPerWeek
	}
	require.Len(t, byEmployee, 4)
	for key, sum := range byEmployee {
		assert.InDelta(t, models.HoursPerWeek, sum, 0.0001, "employee %s", key)
	}
}

func TestSynthesizeTasksCountAndBounds(t *testing.T) {
	cat := testCatalog(t)

	for _, id := range []string{"a", "bb", "ccc", "dddd", "0f3c", "zz-91"} {
		emp := testEmployee(id, "SWE1", "Software Engineer")
		tasks := SynthesizeTasks([]models.EmployeeProfile{emp}, cat)

		assert.GreaterOrEqual(t, len(tasks), 5, "id %s", id)
		assert.LessOrEqual(t, len(tasks), 7, "id %s", id)

		seen := make(map[string]bool)
		for _, task := range tasks {
			assert.GreaterOrEqual(t, task.AutomationScore, 20)
			assert.LessOrEqual(t, task.AutomationScore, 95)
			assert.GreaterOrEqual(t, task.HoursPerWeek, 1.0)
			assert.False(t, seen[task.TaskName], "duplicate task %q for id %s", task.TaskName, id)
			seen[task.TaskName] = true
		}
	}
}

func TestSynthesizeTasksDifferentEmployeesDiffer(t *testing.T) {
	cat := testCatalog(t)
	a := SynthesizeTasks([]models.EmployeeProfile{testEmployee("emp-1", "SWE1", "Software Engineer")}, cat)
	b := SynthesizeTasks([]models.EmployeeProfile{testEmployee("emp-2", "SWE1", "Software Engineer")}, cat)

	// Same role pool, different seeds: the per-task hour split should not
	// be byte-identical.
	aHours := make(map[string]float64)
	for _, task := range a {
		aHours[task.TaskName] = task.HoursPerWeek
	}
	bHours := make(map[string]float64)
	for _, task := range b {
		bHours[task.TaskName] = task.HoursPerWeek
	}
	assert.NotEqual(t, aHours, bHours)
}

func TestNormalizeHoursRepairsRounding(t *testing.T) {
	tasks := []models.Task{
		{TaskID: "t0", HoursPerWeek: 11.4},
		{TaskID: "t1", HoursPerWeek: 11.4},
		{TaskID: "t2", HoursPerWeek: 11.4},
		{TaskID: "t3", HoursPerWeek: 0.2},
		{TaskID: "t4", HoursPerWeek: 0.2},
	}
	normalizeHours(tasks)

	var sum float64
	for _, task := range tasks {
		assert.GreaterOrEqual(t, task.HoursPerWeek, 1.0)
		sum += task.HoursPerWeek
	}
	assert.Equal(t, models.HoursPerWeek, sum)
}

func TestNormalizeHoursZeroSum(t *testing.T) {
	tasks := []models.Task{{TaskID: "t0"}, {TaskID: "t1"}}
	normalizeHours(tasks)
	assert.Equal(t, 0.0, tasks[0].HoursPerWeek)
	assert.Equal(t, 0.0, tasks[1].HoursPerWeek)
}
