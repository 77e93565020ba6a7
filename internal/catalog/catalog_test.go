package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Roles)
	require.NotEmpty(t, cat.Fallback)
	assert.Empty(t, cat.Fallback[len(cat.Fallback)-1].Keywords)

	for _, role := range cat.Roles {
		assert.NotEmpty(t, role.Tasks, "role %s has an empty pool", role.RoleID)
		for _, task := range role.Tasks {
			assert.NotEmpty(t, task.Name)
			assert.Greater(t, task.Hours, 0.0)
			assert.GreaterOrEqual(t, task.AutomationScore, 0)
			assert.LessOrEqual(t, task.AutomationScore, 100)
		}
	}
}

func TestPoolFor(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	t.Run("explicit role pool wins", func(t *testing.T) {
		pool := cat.PoolFor("SWE1", "Software Engineer")
		require.NotEmpty(t, pool)
		assert.Equal(t, "Writing Unit Tests", pool[0].Name)
	})

	t.Run("seniority keyword fallback", func(t *testing.T) {
		pool := cat.PoolFor("UNKNOWN", "Senior Engineering Manager")
		require.NotEmpty(t, pool)
		assert.Equal(t, "Team Coordination", pool[0].Name)
	})

	t.Run("junior keyword fallback", func(t *testing.T) {
		pool := cat.PoolFor("UNKNOWN", "Junior Clerk")
		require.NotEmpty(t, pool)
		assert.Equal(t, "Data Entry", pool[0].Name)
	})

	t.Run("keywordless default catches everything else", func(t *testing.T) {
		pool := cat.PoolFor("UNKNOWN", "Totally Unmatched Role")
		require.NotEmpty(t, pool)
		assert.Equal(t, "Core Role Duties", pool[0].Name)
	})
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	t.Run("no fallback pools", func(t *testing.T) {
		_, err := parse([]byte("roles: []\nfallback: []\n"))
		assert.Error(t, err)
	})

	t.Run("last fallback bucket must be keywordless", func(t *testing.T) {
		_, err := parse([]byte(`
fallback:
  - keywords: [senior]
    tasks:
      - { name: X, hours: 1, automationScore: 50, capability: GenAI }
`))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := parse([]byte("roles: ["))
		assert.Error(t, err)
	})
}
