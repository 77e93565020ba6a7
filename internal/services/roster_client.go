package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"workforce-planner/backend/pkg/models"
)

// HTTPRosterClient is an HTTP implementation of the RosterSource interface.
type HTTPRosterClient struct {
	url string
}

// NewHTTPRosterClient creates a new HTTPRosterClient.
func NewHTTPRosterClient(url string) *HTTPRosterClient {
	return &HTTPRosterClient{url: url}
}

// Roster fetches all employee profiles from the roster service.
func (c *HTTPRosterClient) Roster(ctx context.Context) ([]models.EmployeeProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/employees", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch roster: status code %d", resp.StatusCode)
	}

	var roster []models.EmployeeProfile
	if err := json.NewDecoder(resp.Body).Decode(&roster); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	return roster, nil
}

// FileRosterSource reads the roster from a local JSON file, e.g. the
// seeded demo roster.
type FileRosterSource struct {
	path string
}

// NewFileRosterSource creates a new FileRosterSource.
func NewFileRosterSource(path string) *FileRosterSource {
	return &FileRosterSource{path: path}
}

// Roster reads and parses the roster file.
func (s *FileRosterSource) Roster(_ context.Context) ([]models.EmployeeProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	var roster []models.EmployeeProfile
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	return roster, nil
}

// StaticRosterSource serves a fixed in-memory roster; tests use it.
type StaticRosterSource struct {
	roster []models.EmployeeProfile
}

// NewStaticRosterSource creates a new StaticRosterSource.
func NewStaticRosterSource(roster []models.EmployeeProfile) *StaticRosterSource {
	return &StaticRosterSource{roster: roster}
}

// Roster returns the fixed roster.
func (s *StaticRosterSource) Roster(_ context.Context) ([]models.EmployeeProfile, error) {
	return s.roster, nil
}
