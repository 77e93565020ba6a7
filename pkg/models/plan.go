package models

// PlanStatus is the lifecycle state of a saved plan.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusPublished PlanStatus = "published"
)

// SavedPlan is the only durable record of the service: the scenario
// configuration and the computed impact snapshot under a name. Timestamps
// are ISO-8601 strings so the store stays inspectable as plain data.
// The lifecycle is one-way: draft -> published, and a published plan's
// content is read-only from then on.
type SavedPlan struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Status       PlanStatus     `json:"status"`
	CreatedAt    string         `json:"createdAt"`
	LastModified string         `json:"lastModified"`
	Config       ScenarioConfig `json:"config"`
	Result       ImpactResult   `json:"result"`
}

// PlanUpdate is a partial mutation of a draft plan. Nil fields are left
// untouched by the merge.
type PlanUpdate struct {
	Name   *string         `json:"name,omitempty"`
	Config *ScenarioConfig `json:"config,omitempty"`
	Result *ImpactResult   `json:"result,omitempty"`
}
