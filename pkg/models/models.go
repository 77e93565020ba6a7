// Package models defines the domain models for the workforce planner service
package models

// AICapability tags a task with the automation technology that can absorb it.
type AICapability string

const (
	CapabilityGenAI AICapability = "GenAI"
	CapabilityRPA   AICapability = "RPA"
	CapabilityML    AICapability = "ML"
	CapabilityNone  AICapability = "None"
)

// AdoptionRate represents how aggressively automatable hours are automated.
type AdoptionRate string

const (
	AdoptionConservative AdoptionRate = "conservative"
	AdoptionModerate     AdoptionRate = "moderate"
	AdoptionAggressive   AdoptionRate = "aggressive"
)

// Value returns the fraction of automatable hours actually automated.
func (r AdoptionRate) Value() float64 {
	switch r {
	case AdoptionConservative:
		return 0.2
	case AdoptionAggressive:
		return 0.8
	default:
		return 0.5
	}
}

// Strategy is the scenario's optimization goal.
type Strategy string

const (
	StrategyCapacity Strategy = "capacity"
	StrategyCost     Strategy = "cost"
	StrategyBalanced Strategy = "balanced"
)

// Timeline controls how automation rollout is phased across quarters.
type Timeline string

const (
	TimelineImmediate Timeline = "immediate"
	TimelinePhased    Timeline = "phased"
)

// Business constants. These are given domain assumptions; do not change the
// values without product sign-off.
const (
	// HoursPerWeek is one FTE's weekly capacity.
	HoursPerWeek = 40.0
	// WeeksPerYear converts weekly hours to annual hours.
	WeeksPerYear = 52.0
	// AutomationThreshold is the automation score above which a task counts
	// as automatable.
	AutomationThreshold = 60.0
	// TrainingCostPerHead is the fixed per-employee reskilling investment.
	TrainingCostPerHead = 2500.0
	// AIToolCostPerHead is the annual per-employee tooling cost.
	AIToolCostPerHead = 500.0
	// FXRateINR normalizes INR compensation to USD.
	FXRateINR = 83.0
	// BalancedReductionShare is the fraction of freed FTE targeted for
	// reduction under the balanced strategy.
	BalancedReductionShare = 0.5
	// QuickWinHoursPerWeek is the weekly freed-hours bar for a quick win.
	QuickWinHoursPerWeek = 2.5
)

// Skill is a single named skill on an employee profile.
type Skill struct {
	SkillName string `json:"skillName"`
}

// PerformanceProfile holds engagement and performance signals.
type PerformanceProfile struct {
	EngagementScore   float64 `json:"engagementScore"`
	PerformanceRating float64 `json:"performanceRating"`
	FlightRiskScore   float64 `json:"flightRiskScore"`
}

// ReadinessProfile holds change-readiness signals.
type ReadinessProfile struct {
	ReadinessScore float64 `json:"readinessScore"`
	ReadinessFlag  string  `json:"readinessFlag"`
	RiskLevel      string  `json:"riskLevel"`
}

// RedeploymentProfile holds internal-mobility signals.
type RedeploymentProfile struct {
	RedeploymentScore         float64  `json:"redeploymentScore"`
	TransferableSkills        []string `json:"transferableSkills,omitempty"`
	MobilityWillingness       string   `json:"mobilityWillingness,omitempty"`
	TimeToRedeploy            string   `json:"timeToRedeploy,omitempty"`
	CrossFunctionalExperience bool     `json:"crossFunctionalExperience"`
}

// EmployeeProfile is a read-only roster record provided by the HR data source.
type EmployeeProfile struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	CurrentRoleID     string               `json:"currentRoleId"`
	CurrentRoleName   string               `json:"currentRoleName"`
	BusinessUnit      string               `json:"businessUnit"`
	Location          string               `json:"location"`
	JobFamily         string               `json:"jobFamily"`
	TenureMonths      int                  `json:"tenureMonths"`
	TotalCompensation float64              `json:"totalCompensation"`
	Currency          string               `json:"currency"`
	Skills            []Skill              `json:"skills,omitempty"`
	Performance       *PerformanceProfile  `json:"performance,omitempty"`
	Readiness         *ReadinessProfile    `json:"readiness,omitempty"`
	Redeployment      *RedeploymentProfile `json:"redeployment,omitempty"`
}

// Task is one synthesized unit of weekly work for a single employee. Tasks
// are derived deterministically from the role catalog and are never
// persisted standalone; they only feed aggregation.
type Task struct {
	TaskID            string       `json:"taskId"`
	TaskName          string       `json:"taskName"`
	RoleID            string       `json:"roleId"`
	RoleName          string       `json:"roleName"`
	HoursPerWeek      float64      `json:"hoursPerWeek"`
	AutomationScore   int          `json:"automationScore"`
	AICapabilityMatch AICapability `json:"aiCapabilityMatch"`
}

// RoleTask is a task merged across all of a role's employees, hour-weighted.
type RoleTask struct {
	TaskName          string       `json:"taskName"`
	HoursPerWeek      float64      `json:"hoursPerWeek"`
	AutomationScore   float64      `json:"automationScore"`
	AICapabilityMatch AICapability `json:"aiCapabilityMatch"`
	Percentage        float64      `json:"percentage"`
}

// RoleAggregate is the current-state rollup for one role. It is recomputed
// from scratch on every scope or data change, never mutated incrementally.
type RoleAggregate struct {
	RoleID           string     `json:"roleId"`
	RoleName         string     `json:"roleName"`
	Headcount        int        `json:"headcount"`
	AnnualCost       float64    `json:"annualCost"`
	AllTasks         []RoleTask `json:"allTasks"`
	TopTasks         []RoleTask `json:"topTasks"`
	TotalHours       float64    `json:"totalHours"`
	AutomatableHours float64    `json:"automatableHours"`
}

// Capabilities flags which automation technologies a scenario enables.
type Capabilities struct {
	GenAI bool `json:"genAI"`
	RPA   bool `json:"rpa"`
	ML    bool `json:"ml"`
}

// Enabled reports whether the given capability tag is switched on.
// CapabilityNone is never enabled.
func (c Capabilities) Enabled(capability AICapability) bool {
	switch capability {
	case CapabilityGenAI:
		return c.GenAI
	case CapabilityRPA:
		return c.RPA
	case CapabilityML:
		return c.ML
	default:
		return false
	}
}

// Any reports whether at least one capability is enabled.
func (c Capabilities) Any() bool {
	return c.GenAI || c.RPA || c.ML
}

// Scope selects the slice of the organization a scenario applies to. An
// empty selection in any dimension yields an empty result set; that is the
// "no scope chosen" state, not an error.
type Scope struct {
	BusinessUnits []string `json:"businessUnits"`
	Locations     []string `json:"locations"`
	JobFamilies   []string `json:"jobFamilies"`
}

// ScenarioConfig is the full set of scenario controls plus the active scope.
type ScenarioConfig struct {
	EnabledCapabilities    Capabilities `json:"enabledCapabilities"`
	AdoptionRate           AdoptionRate `json:"adoptionRate"`
	PlanningHorizon        int          `json:"planningHorizon"` // months: 6, 12 or 24
	ImplementationTimeline Timeline     `json:"implementationTimeline"`
	Strategy               Strategy     `json:"strategy"`
	Scope                  Scope        `json:"scope"`
}

// HorizonMultiplier converts annual figures to the planning horizon.
func (c ScenarioConfig) HorizonMultiplier() float64 {
	return float64(c.PlanningHorizon) / 12.0
}

// TaskPriority is one automation candidate ranked into a rollout phase.
type TaskPriority struct {
	Role              string       `json:"role"`
	TaskName          string       `json:"taskName"`
	HoursFreedPerWeek float64      `json:"hoursFreedPerWeek"`
	HoursFreedTotal   float64      `json:"hoursFreedTotal"`
	AutomationScore   float64      `json:"automationScore"`
	AICapabilityMatch AICapability `json:"aiCapabilityMatch"`
	Phase             string       `json:"phase"` // Q1, Q2 or Q3
	QuickWin          bool         `json:"quickWin"`
}

// EmployeeRef identifies an employee inside allocation detail lists.
type EmployeeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReductionDetails names the employees behind a role's reduction target,
// split into disjoint categories.
type ReductionDetails struct {
	RetirementEligible []EmployeeRef `json:"retirementEligible"`
	VoluntaryAttrition []EmployeeRef `json:"voluntaryAttrition"`
	Redeployment       []EmployeeRef `json:"redeployment"`
	Involuntary        []EmployeeRef `json:"involuntary"`
}

// Total returns the number of employees across all categories.
func (d ReductionDetails) Total() int {
	return len(d.RetirementEligible) + len(d.VoluntaryAttrition) +
		len(d.Redeployment) + len(d.Involuntary)
}

// RedeploymentDetails names the employees in a role's redeployment pool.
type RedeploymentDetails struct {
	Employees []EmployeeRef `json:"employees"`
}

// TransitionPlanEntry is the per-role transition row of an impact result.
type TransitionPlanEntry struct {
	Role                  string               `json:"role"`
	AffectedHeadcount     float64              `json:"affectedHeadcount"`
	HoursFreed            float64              `json:"hoursFreed"`
	ReskillRecommendation string               `json:"reskillRecommendation"`
	RedeploymentOption    string               `json:"redeploymentOption"`
	ReductionTarget       *int                 `json:"reductionTarget,omitempty"`
	ReductionDetails      *ReductionDetails    `json:"reductionDetails,omitempty"`
	RedeploymentDetails   *RedeploymentDetails `json:"redeploymentDetails,omitempty"`
}

// SkillsGapEntry maps a role's current skills to the skills the scenario's
// enabled capabilities demand.
type SkillsGapEntry struct {
	Role               string  `json:"role"`
	CurrentSkill       string  `json:"currentSkill"`
	NewSkillNeeded     string  `json:"newSkillNeeded"`
	EmployeeCount      int     `json:"employeeCount"`
	TrainingInvestment float64 `json:"trainingInvestment"`
}

// ImpactResult is the full output of one impact computation.
type ImpactResult struct {
	TotalCostSavings            float64               `json:"totalCostSavings"`
	CostSavingsPercent          float64               `json:"costSavingsPercent"`
	TotalCapacityGained         float64               `json:"totalCapacityGained"`
	CapacityGainedPercent       float64               `json:"capacityGainedPercent"`
	TotalTrainingInvestment     float64               `json:"totalTrainingInvestment"`
	TotalAIToolCost             float64               `json:"totalAIToolCost"`
	TotalInvestment             float64               `json:"totalInvestment"`
	NetSavings                  float64               `json:"netSavings"`
	PaybackPeriodMonths         float64               `json:"paybackPeriodMonths"`
	HeadcountReductionPotential int                   `json:"headcountReductionPotential"`
	TaskPriorities              []TaskPriority        `json:"taskPriorities"`
	TransitionPlan              []TransitionPlanEntry `json:"transitionPlan"`
	SkillsGap                   []SkillsGapEntry      `json:"skillsGap"`
}
