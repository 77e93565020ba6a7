package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-planner/backend/pkg/models"
)

func TestMatchSkillRule(t *testing.T) {
	tests := []struct {
		roleName string
		target   string
	}{
		{"Software Engineer", "Platform Engineering"},
		{"Senior QA Analyst", "Quality Engineering"},
		{"Business Analyst", "Data Science"},
		{"Finance Associate", "FP&A Partnering"},
		{"Accountant", "FP&A Partnering"},
		{"HR Generalist", "People Analytics"},
		{"Customer Support Specialist", "Customer Success"},
		{"Marketing Specialist", "Growth Strategy"},
		{"Operations Coordinator", "Process Excellence"},
		{"Chief Vibes Officer", "Cross-functional Projects"},
	}
	for _, tt := range tests {
		rule := matchSkillRule(tt.roleName)
		assert.Equal(t, tt.target, rule.RedeployTarget, "role %q", tt.roleName)
	}
}

func TestMatchSkillRuleFirstMatchWins(t *testing.T) {
	// "QA Engineer" contains both "engineer" and "qa"; the engineer rule
	// comes first in the table.
	rule := matchSkillRule("QA Engineer")
	assert.Equal(t, "Platform Engineering", rule.RedeployTarget)
}

func TestReskillRecommendation(t *testing.T) {
	rule := matchSkillRule("Software Engineer")

	t.Run("joins enabled capabilities in order", func(t *testing.T) {
		got := reskillRecommendation(rule, models.Capabilities{GenAI: true, ML: true})
		assert.Equal(t, "AI-assisted Development, ML Model Integration", got)
	})

	t.Run("single capability", func(t *testing.T) {
		got := reskillRecommendation(rule, models.Capabilities{RPA: true})
		assert.Equal(t, "Test Automation Frameworks", got)
	})

	t.Run("no capabilities falls back", func(t *testing.T) {
		got := reskillRecommendation(rule, models.Capabilities{})
		assert.Equal(t, "AI Tool Proficiency", got)
	})
}

func TestTopSkills(t *testing.T) {
	employees := []models.EmployeeProfile{
		{Skills: []models.Skill{{SkillName: "SQL"}, {SkillName: "Excel"}}},
		{Skills: []models.Skill{{SkillName: "SQL"}, {SkillName: "Python"}}},
		{Skills: []models.Skill{{SkillName: "SQL"}, {SkillName: "Python"}, {SkillName: "Tableau"}}},
	}

	// SQL (3) first, Python (2) second, then the count-1 skills by name.
	assert.Equal(t, "SQL, Python, Excel", topSkills(employees))
	assert.Equal(t, "Role-specific Skills", topSkills(nil))
}

func TestRetainedCount(t *testing.T) {
	target := 3
	row := models.TransitionPlanEntry{
		ReductionTarget:     &target,
		RedeploymentDetails: &models.RedeploymentDetails{Employees: make([]models.EmployeeRef, 2)},
	}

	assert.Equal(t, 7, retainedCount(10, row, models.StrategyCost))
	assert.Equal(t, 5, retainedCount(10, row, models.StrategyBalanced))
	assert.Equal(t, 8, retainedCount(10, row, models.StrategyCapacity))
}

func TestBuildSkillsGap(t *testing.T) {
	target := 2
	plan := []models.TransitionPlanEntry{
		{Role: "Software Engineer", AffectedHeadcount: 2, ReductionTarget: &target},
		{Role: "QA Analyst", AffectedHeadcount: 0},
	}
	priorities := []models.TaskPriority{
		{Role: "Software Engineer", AICapabilityMatch: models.CapabilityGenAI},
		{Role: "QA Analyst", AICapabilityMatch: models.CapabilityRPA},
		{Role: "QA Analyst", AICapabilityMatch: models.CapabilityML},
	}
	current := []models.RoleAggregate{
		{RoleID: "SWE1", RoleName: "Software Engineer", Headcount: 8},
		{RoleID: "QA1", RoleName: "QA Analyst", Headcount: 3},
	}
	byRoleID := map[string][]models.EmployeeProfile{
		"SWE1": {{Skills: []models.Skill{{SkillName: "Go"}}}},
		"QA1":  {{Skills: []models.Skill{{SkillName: "Selenium"}}}},
	}
	cfg := models.ScenarioConfig{
		EnabledCapabilities: models.Capabilities{GenAI: true},
		Strategy:            models.StrategyCost,
	}

	entries := BuildSkillsGap(plan, priorities, current, byRoleID, cfg)
	require.Len(t, entries, 2)

	swe := entries[0]
	assert.Equal(t, "Software Engineer", swe.Role)
	assert.Equal(t, 6, swe.EmployeeCount)
	assert.Equal(t, 6*models.TrainingCostPerHead, swe.TrainingInvestment)
	assert.Equal(t, "AI-assisted Development", swe.NewSkillNeeded)
	assert.Equal(t, "Go", swe.CurrentSkill)

	// QA had no affected headcount, so its row is derived from its
	// prioritized tasks and counts the whole role.
	qa := entries[1]
	assert.Equal(t, "QA Analyst", qa.Role)
	assert.Equal(t, 3, qa.EmployeeCount)
	assert.Equal(t, "RPA Tooling, ML Tooling", qa.NewSkillNeeded)
	assert.Equal(t, "Selenium", qa.CurrentSkill)
}

func TestBuildSkillsGapUnknownRoleSkipped(t *testing.T) {
	priorities := []models.TaskPriority{
		{Role: "Ghost Role", AICapabilityMatch: models.CapabilityGenAI},
	}
	entries := BuildSkillsGap(nil, priorities, nil, nil, models.ScenarioConfig{})
	assert.Empty(t, entries)
}
