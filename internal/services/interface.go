package services

import (
	"context"

	"workforce-planner/backend/pkg/models"
)

// RosterSource is an interface for fetching the read-only employee roster
// from the external HR data source.
type RosterSource interface {
	// Roster returns all employee profiles.
	Roster(ctx context.Context) ([]models.EmployeeProfile, error)
}
