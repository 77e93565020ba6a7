// Package catalog holds the static role-to-task-pool catalog the task
// synthesizer draws from. The data ships embedded so the service has no
// runtime file dependency; an override path can be supplied for custom
// catalogs.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"workforce-planner/backend/pkg/models"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// PoolTask is one catalog entry: a task template with base hours, base
// automation score and a capability tag.
type PoolTask struct {
	Name            string              `yaml:"name"`
	Hours           float64             `yaml:"hours"`
	AutomationScore int                 `yaml:"automationScore"`
	Capability      models.AICapability `yaml:"capability"`
}

// RolePool is the explicit task pool for one role id.
type RolePool struct {
	RoleID string     `yaml:"roleId"`
	Tasks  []PoolTask `yaml:"tasks"`
}

// FallbackBucket is a generic pool selected by seniority keyword match when
// a role has no explicit pool. A bucket with no keywords matches any role,
// so the last bucket acts as the universal default.
type FallbackBucket struct {
	Keywords []string   `yaml:"keywords"`
	Tasks    []PoolTask `yaml:"tasks"`
}

// Catalog is the full role-to-task-pool configuration.
type Catalog struct {
	Roles    []RolePool       `yaml:"roles"`
	Fallback []FallbackBucket `yaml:"fallback"`

	byRoleID map[string][]PoolTask
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return parse(embeddedCatalog)
}

// LoadFile parses a catalog override from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Fallback) == 0 {
		return nil, fmt.Errorf("catalog has no fallback pools")
	}
	last := c.Fallback[len(c.Fallback)-1]
	if len(last.Keywords) != 0 {
		return nil, fmt.Errorf("last fallback bucket must be keywordless so every role resolves to a pool")
	}
	c.byRoleID = make(map[string][]PoolTask, len(c.Roles))
	for _, r := range c.Roles {
		c.byRoleID[r.RoleID] = r.Tasks
	}
	return &c, nil
}

// PoolFor resolves the task pool for a role. Explicit pools win; otherwise
// the first fallback bucket with a keyword contained in the role name (case
// insensitive) applies, and the keywordless final bucket catches the rest.
// By construction this never returns an empty pool.
func (c *Catalog) PoolFor(roleID, roleName string) []PoolTask {
	if pool, ok := c.byRoleID[roleID]; ok {
		return pool
	}
	name := strings.ToLower(roleName)
	for _, b := range c.Fallback {
		if len(b.Keywords) == 0 {
			return b.Tasks
		}
		for _, kw := range b.Keywords {
			if strings.Contains(name, kw) {
				return b.Tasks
			}
		}
	}
	return c.Fallback[len(c.Fallback)-1].Tasks
}
