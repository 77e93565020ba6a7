package engine

import (
	"sort"
	"strings"

	"workforce-planner/backend/pkg/models"
)

// skillRule maps a role-name pattern to the target skills per capability
// and a redeployment destination. Rules are data, evaluated in order,
// first match wins; the final empty-pattern rule is the default.
type skillRule struct {
	Pattern        string
	GenAISkill     string
	RPASkill       string
	MLSkill        string
	RedeployTarget string
}

var skillRules = []skillRule{
	{"engineer", "AI-assisted Development", "Test Automation Frameworks", "ML Model Integration", "Platform Engineering"},
	{"qa", "AI Test Generation", "RPA Test Orchestration", "Defect Prediction Models", "Quality Engineering"},
	{"analyst", "Prompt-driven Analysis", "Automated Reporting Pipelines", "Predictive Analytics", "Data Science"},
	{"finance", "GenAI Financial Narratives", "RPA Invoice Automation", "Anomaly Detection", "FP&A Partnering"},
	{"account", "GenAI Financial Narratives", "RPA Invoice Automation", "Anomaly Detection", "FP&A Partnering"},
	{"hr", "GenAI Policy Drafting", "Workflow Automation", "Talent Analytics", "People Analytics"},
	{"recruit", "GenAI Candidate Outreach", "Screening Automation", "Talent Analytics", "People Analytics"},
	{"support", "AI Copilot Supervision", "Ticket Automation", "Intent Classification", "Customer Success"},
	{"service", "AI Copilot Supervision", "Ticket Automation", "Intent Classification", "Customer Success"},
	{"market", "GenAI Content Production", "Campaign Automation", "Audience Modeling", "Growth Strategy"},
	{"operat", "GenAI Process Documentation", "Process Automation", "Demand Forecasting", "Process Excellence"},
	{"", "GenAI Workflow Skills", "Process Automation", "Applied ML Literacy", "Cross-functional Projects"},
}

// capabilityLabels maps capability tags to generic skill labels for roles
// covered only by the secondary (task-derived) skills-gap path.
var capabilityLabels = map[models.AICapability]string{
	models.CapabilityGenAI: "GenAI Tooling",
	models.CapabilityRPA:   "RPA Tooling",
	models.CapabilityML:    "ML Tooling",
}

const (
	fallbackCurrentSkill = "Role-specific Skills"
	fallbackNewSkill     = "AI Tool Proficiency"
	topSkillCount        = 3
)

// matchSkillRule returns the first rule whose pattern the role name
// contains, case-insensitively. The empty-pattern default always matches.
func matchSkillRule(roleName string) skillRule {
	name := strings.ToLower(roleName)
	for _, rule := range skillRules {
		if rule.Pattern == "" || strings.Contains(name, rule.Pattern) {
			return rule
		}
	}
	return skillRules[len(skillRules)-1]
}

// reskillRecommendation composes the target-skill string for the enabled
// capabilities.
func reskillRecommendation(rule skillRule, caps models.Capabilities) string {
	labels := enabledSkills(rule, caps)
	if len(labels) == 0 {
		return fallbackNewSkill
	}
	return strings.Join(labels, ", ")
}

func enabledSkills(rule skillRule, caps models.Capabilities) []string {
	var labels []string
	if caps.GenAI {
		labels = append(labels, rule.GenAISkill)
	}
	if caps.RPA {
		labels = append(labels, rule.RPASkill)
	}
	if caps.ML {
		labels = append(labels, rule.MLSkill)
	}
	return labels
}

// BuildSkillsGap derives the skills-gap table from the transition plan.
// Each role with affected headcount gets a row mapping its employees'
// current top skills to the enabled capabilities' target skills; roles
// visible in task priorities but absent from that mapping get a secondary
// row derived from their tasks' capability tags, so every automation-
// touched role has skills-gap visibility.
func BuildSkillsGap(plan []models.TransitionPlanEntry, priorities []models.TaskPriority, current []models.RoleAggregate, byRoleID map[string][]models.EmployeeProfile, cfg models.ScenarioConfig) []models.SkillsGapEntry {
	aggByName := make(map[string]models.RoleAggregate, len(current))
	for _, role := range current {
		aggByName[role.RoleName] = role
	}

	entries := []models.SkillsGapEntry{}
	covered := make(map[string]bool)

	for _, row := range plan {
		if row.AffectedHeadcount <= 0 {
			continue
		}
		role, ok := aggByName[row.Role]
		if !ok {
			continue
		}
		employees := byRoleID[role.RoleID]

		count := retainedCount(role.Headcount, row, cfg.Strategy)
		if count <= 0 {
			continue
		}

		rule := matchSkillRule(row.Role)
		entries = append(entries, models.SkillsGapEntry{
			Role:               row.Role,
			CurrentSkill:       topSkills(employees),
			NewSkillNeeded:     reskillRecommendation(rule, cfg.EnabledCapabilities),
			EmployeeCount:      count,
			TrainingInvestment: float64(count) * models.TrainingCostPerHead,
		})
		covered[row.Role] = true
	}

	// Secondary entries: automation-touched roles the plan skipped.
	for _, roleName := range priorityRoles(priorities) {
		if covered[roleName] {
			continue
		}
		role, ok := aggByName[roleName]
		if !ok {
			continue
		}
		count := role.Headcount
		if count <= 0 {
			continue
		}
		entries = append(entries, models.SkillsGapEntry{
			Role:               roleName,
			CurrentSkill:       topSkills(byRoleID[role.RoleID]),
			NewSkillNeeded:     taskDerivedSkills(priorities, roleName),
			EmployeeCount:      count,
			TrainingInvestment: float64(count) * models.TrainingCostPerHead,
		})
		covered[roleName] = true
	}

	return entries
}

// retainedCount is the strategy-dependent number of employees who stay and
// need training.
func retainedCount(headcount int, row models.TransitionPlanEntry, strategy models.Strategy) int {
	reduction := 0
	if row.ReductionTarget != nil {
		reduction = *row.ReductionTarget
	}
	redeployed := 0
	if row.RedeploymentDetails != nil {
		redeployed = len(row.RedeploymentDetails.Employees)
	}

	switch strategy {
	case models.StrategyCost:
		return headcount - reduction
	case models.StrategyBalanced:
		return headcount - reduction - redeployed
	default: // capacity
		return headcount - redeployed
	}
}

// topSkills returns the role's three most frequent current skill names,
// comma-joined, most frequent first.
func topSkills(employees []models.EmployeeProfile) string {
	freq := make(map[string]int)
	for _, emp := range employees {
		for _, skill := range emp.Skills {
			freq[skill.SkillName]++
		}
	}
	if len(freq) == 0 {
		return fallbackCurrentSkill
	}

	names := make([]string, 0, len(freq))
	for name := range freq {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if freq[names[i]] != freq[names[j]] {
			return freq[names[i]] > freq[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > topSkillCount {
		names = names[:topSkillCount]
	}
	return strings.Join(names, ", ")
}

// priorityRoles lists the distinct roles in task-priority order.
func priorityRoles(priorities []models.TaskPriority) []string {
	seen := make(map[string]bool)
	var roles []string
	for _, p := range priorities {
		if !seen[p.Role] {
			seen[p.Role] = true
			roles = append(roles, p.Role)
		}
	}
	return roles
}

// taskDerivedSkills composes a skill string from the capability tags of a
// role's prioritized tasks.
func taskDerivedSkills(priorities []models.TaskPriority, roleName string) string {
	seen := make(map[string]bool)
	var labels []string
	for _, p := range priorities {
		if p.Role != roleName {
			continue
		}
		label, ok := capabilityLabels[p.AICapabilityMatch]
		if ok && !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return fallbackNewSkill
	}
	return strings.Join(labels, ", ")
}
