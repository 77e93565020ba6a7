package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-planner/backend/internal/catalog"
	"workforce-planner/backend/internal/logging"
	"workforce-planner/backend/internal/repository"
	"workforce-planner/backend/internal/services"
	"workforce-planner/backend/pkg/models"
)

func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	service := services.NewPlannerService(
		services.NewStaticRosterSource(services.SeedRoster()),
		repository.NewMemoryPlanStore(),
		cat,
		logging.NewLogger(),
	)

	e := echo.New()
	e.GET("/health", HandleHealth)
	RegisterHandlers(e.Group("/api/v1"), NewServer(service))
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const scenarioBody = `{
	"enabledCapabilities": {"genAI": true, "rpa": true, "ml": false},
	"adoptionRate": "moderate",
	"planningHorizon": 12,
	"implementationTimeline": "immediate",
	"strategy": "balanced",
	"scope": {
		"businessUnits": ["Technology"],
		"locations": ["New York", "Austin", "London", "Bangalore"],
		"jobFamilies": ["Engineering"]
	}
}`

func TestHealthEndpoint(t *testing.T) {
	e := newTestAPI(t)
	rec := doJSON(t, e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "workforce-planner", status.Service)
}

func TestCurrentStateEndpoint(t *testing.T) {
	e := newTestAPI(t)

	t.Run("scoped request", func(t *testing.T) {
		body := `{"businessUnits": ["Technology"], "locations": ["New York", "Austin", "London", "Bangalore"], "jobFamilies": ["Engineering"]}`
		rec := doJSON(t, e, http.MethodPost, "/api/v1/current-state", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var aggregates []models.RoleAggregate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aggregates))
		assert.Len(t, aggregates, 2)
	})

	t.Run("empty scope returns empty list, not an error", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/api/v1/current-state", `{}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestImpactEndpoint(t *testing.T) {
	e := newTestAPI(t)
	rec := doJSON(t, e, http.MethodPost, "/api/v1/impact", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ImpactResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.TaskPriorities)
	assert.NotEmpty(t, result.TransitionPlan)
	assert.Greater(t, result.TotalCostSavings, 0.0)
}

func TestPlanEndpoints(t *testing.T) {
	e := newTestAPI(t)

	t.Run("save requires a name", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/api/v1/plans", `{"config": `+scenarioBody+`}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	rec := doJSON(t, e, http.MethodPost, "/api/v1/plans", `{"name": "Q3 plan", "config": `+scenarioBody+`}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var plan models.SavedPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, models.PlanStatusDraft, plan.Status)
	require.NotEmpty(t, plan.ID)

	t.Run("get", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/api/v1/plans/"+plan.ID, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get missing is 404 problem", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/api/v1/plans/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/problem+json")
	})

	t.Run("list", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/api/v1/plans", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var plans []models.SavedPlan
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
		assert.Len(t, plans, 1)
	})

	t.Run("rename", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPatch, "/api/v1/plans/"+plan.ID, `{"name": "Q3 plan v2"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var updated models.SavedPlan
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "Q3 plan v2", updated.Name)
	})

	t.Run("publish then reject content edits", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/api/v1/plans/"+plan.ID+"/publish", "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, e, http.MethodPatch, "/api/v1/plans/"+plan.ID, `{"config": `+scenarioBody+`}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("publish progress", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/api/v1/plans/"+plan.ID+"/publish-progress", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var events []services.ProgressEvent
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
		require.NotEmpty(t, events)
		assert.True(t, events[len(events)-1].Done)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodDelete, "/api/v1/plans/"+plan.ID, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, e, http.MethodDelete, "/api/v1/plans/"+plan.ID, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
