package services

import "workforce-planner/backend/pkg/models"

// ProgressEvent is one step of the cosmetic publish progress sequence the
// presentation layer animates. The sequence is a fixed ordered list; there
// is no timing or correctness dependency here.
type ProgressEvent struct {
	Step          string `json:"step"`
	TrainingPlans int    `json:"trainingPlans"`
	Positions     int    `json:"positions"`
	Managers      int    `json:"managers"`
	Done          bool   `json:"done"`
}

// PublishProgress builds the ordered publish progress sequence for a plan:
// counters climb to the plan's own totals step by step.
func PublishProgress(plan *models.SavedPlan) []ProgressEvent {
	trainingPlans := len(plan.Result.SkillsGap)
	positions := len(plan.Result.TransitionPlan)
	managers := 0
	for _, entry := range plan.Result.TransitionPlan {
		if entry.AffectedHeadcount > 0 {
			managers++
		}
	}

	steps := []struct {
		name  string
		share float64
	}{
		{"Generating training plans", 0.25},
		{"Posting redeployment positions", 0.5},
		{"Notifying managers", 0.75},
		{"Finalizing", 1},
	}

	events := make([]ProgressEvent, 0, len(steps))
	for i, step := range steps {
		events = append(events, ProgressEvent{
			Step:          step.name,
			TrainingPlans: scaled(trainingPlans, step.share),
			Positions:     scaled(positions, step.share),
			Managers:      scaled(managers, step.share),
			Done:          i == len(steps)-1,
		})
	}
	return events
}

func scaled(total int, share float64) int {
	return int(float64(total) * share)
}
