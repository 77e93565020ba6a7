package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workforce-planner/backend/pkg/models"
)

// PostgresPlanStore is a PostgreSQL implementation of the PlanStore
// interface. Scenario config and impact result are stored as JSONB
// snapshots; timestamps stay RFC 3339 strings so the record is inspectable
// as plain data. Rows whose snapshots no longer parse are treated as
// absent, not as errors.
type PostgresPlanStore struct {
	db *pgxpool.Pool
}

// NewPostgresPlanStore creates a new PostgresPlanStore.
func NewPostgresPlanStore(db *pgxpool.Pool) *PostgresPlanStore {
	return &PostgresPlanStore{db: db}
}

// EnsureSchema creates the plans table if it does not exist.
func (s *PostgresPlanStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		last_modified TEXT NOT NULL,
		config JSONB NOT NULL,
		result JSONB NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create plans table: %w", err)
	}
	return nil
}

// Save appends a new plan to the store.
func (s *PostgresPlanStore) Save(ctx context.Context, plan *models.SavedPlan) error {
	config, result, err := marshalSnapshots(plan)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		"INSERT INTO plans (id, name, status, created_at, last_modified, config, result) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		plan.ID, plan.Name, plan.Status, plan.CreatedAt, plan.LastModified, config, result)
	return err
}

// Update overwrites an existing plan.
func (s *PostgresPlanStore) Update(ctx context.Context, plan *models.SavedPlan) error {
	config, result, err := marshalSnapshots(plan)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		"UPDATE plans SET name = $1, status = $2, last_modified = $3, config = $4, result = $5 WHERE id = $6",
		plan.Name, plan.Status, plan.LastModified, config, result, plan.ID)
	return err
}

// Get retrieves a plan by its id; missing or malformed rows yield nil.
func (s *PostgresPlanStore) Get(ctx context.Context, id string) (*models.SavedPlan, error) {
	row := s.db.QueryRow(ctx,
		"SELECT id, name, status, created_at, last_modified, config, result FROM plans WHERE id = $1", id)
	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, errCorruptPlan) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// List returns all plans ordered by creation time, skipping rows whose
// stored snapshots are corrupt.
func (s *PostgresPlanStore) List(ctx context.Context) ([]*models.SavedPlan, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, name, status, created_at, last_modified, config, result FROM plans ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.SavedPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			continue
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// Delete removes a plan, reporting whether it existed.
func (s *PostgresPlanStore) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM plans WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func marshalSnapshots(plan *models.SavedPlan) ([]byte, []byte, error) {
	config, err := json.Marshal(plan.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal plan config: %w", err)
	}
	result, err := json.Marshal(plan.Result)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal plan result: %w", err)
	}
	return config, result, nil
}

// errCorruptPlan marks rows whose stored snapshots no longer parse. The
// store does not attempt partial recovery of such rows.
var errCorruptPlan = errors.New("corrupt plan record")

func scanPlan(row pgx.Row) (*models.SavedPlan, error) {
	var plan models.SavedPlan
	var config, result []byte
	err := row.Scan(&plan.ID, &plan.Name, &plan.Status, &plan.CreatedAt, &plan.LastModified, &config, &result)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(config, &plan.Config); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptPlan, err)
	}
	if err := json.Unmarshal(result, &plan.Result); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptPlan, err)
	}
	return &plan, nil
}
