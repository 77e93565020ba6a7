package services

import (
	"fmt"

	"github.com/google/uuid"

	"workforce-planner/backend/pkg/models"
)

// Demo roster generation. The seeded roster is fully deterministic: ids are
// name-based UUIDs and every profile field is derived from the employee's
// index, so repeated seeding produces an identical file.

type seedRole struct {
	roleID    string
	roleName  string
	unit      string
	family    string
	baseComp  float64
	headcount int
}

var seedRoles = []seedRole{
	{"SWE1", "Software Engineer", "Technology", "Engineering", 142000, 14},
	{"QA1", "QA Analyst", "Technology", "Engineering", 98000, 8},
	{"FIN1", "Finance Associate", "Corporate", "Finance", 88000, 10},
	{"HR1", "HR Generalist", "Corporate", "People", 82000, 6},
	{"CS1", "Customer Support Specialist", "Operations", "Customer Service", 64000, 16},
	{"AN1", "Business Analyst", "Operations", "Analytics", 104000, 7},
	{"OPS1", "Operations Coordinator", "Operations", "Supply Chain", 72000, 9},
	{"MKT1", "Marketing Specialist", "Commercial", "Marketing", 92000, 6},
}

var seedLocations = []string{"New York", "Austin", "London", "Bangalore"}

var seedSkillSets = map[string][]string{
	"SWE1": {"Go", "SQL", "Distributed Systems", "Code Review", "CI/CD"},
	"QA1":  {"Test Planning", "Selenium", "SQL", "Regression Testing"},
	"FIN1": {"Excel", "SAP", "Reconciliation", "Financial Reporting"},
	"HR1":  {"Recruiting", "HRIS", "Employee Relations", "Onboarding"},
	"CS1":  {"Zendesk", "Conflict Resolution", "Product Knowledge", "Written Communication"},
	"AN1":  {"SQL", "Tableau", "Python", "Stakeholder Management"},
	"OPS1": {"ERP Systems", "Logistics", "Vendor Management", "Process Mapping"},
	"MKT1": {"Copywriting", "SEO", "Campaign Management", "Analytics"},
}

// SeedRoster generates the deterministic demo roster.
func SeedRoster() []models.EmployeeProfile {
	var roster []models.EmployeeProfile
	seq := 0
	for _, role := range seedRoles {
		for i := 0; i < role.headcount; i++ {
			seq++
			name := fmt.Sprintf("%s %03d", role.roleName, i+1)
			id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("workforce-demo/%s/%d", role.roleID, i))).String()

			location := seedLocations[seq%len(seedLocations)]
			currency := "USD"
			comp := role.baseComp + float64((seq*37)%20000)
			if location == "Bangalore" {
				currency = "INR"
				comp = comp * 30 // rough INR-denominated figure
			}

			roster = append(roster, models.EmployeeProfile{
				ID:                id,
				Name:              name,
				CurrentRoleID:     role.roleID,
				CurrentRoleName:   role.roleName,
				BusinessUnit:      role.unit,
				Location:          location,
				JobFamily:         role.family,
				TenureMonths:      6 + (seq*13)%220,
				TotalCompensation: comp,
				Currency:          currency,
				Skills:            seedSkills(role.roleID, i),
				Performance: &models.PerformanceProfile{
					EngagementScore:   40 + float64((seq*17)%60),
					PerformanceRating: 2 + float64(seq%4),
					FlightRiskScore:   float64((seq * 23) % 100),
				},
				Readiness: &models.ReadinessProfile{
					ReadinessScore: 20 + float64((seq*29)%80),
					ReadinessFlag:  []string{"ready", "developing", "at-risk"}[seq%3],
					RiskLevel:      []string{"low", "medium", "high"}[seq%3],
				},
				Redeployment: &models.RedeploymentProfile{
					RedeploymentScore:         10 + float64((seq*31)%90),
					TransferableSkills:        seedSkillSets[role.roleID][:2],
					MobilityWillingness:       []string{"high", "medium", "low"}[seq%3],
					TimeToRedeploy:            []string{"1-3 months", "3-6 months", "6+ months"}[seq%3],
					CrossFunctionalExperience: seq%2 == 0,
				},
			})
		}
	}
	return roster
}

func seedSkills(roleID string, i int) []models.Skill {
	pool := seedSkillSets[roleID]
	count := 3 + i%2
	if count > len(pool) {
		count = len(pool)
	}
	skills := make([]models.Skill, 0, count)
	for k := 0; k < count; k++ {
		skills = append(skills, models.Skill{SkillName: pool[(i+k)%len(pool)]})
	}
	return skills
}
