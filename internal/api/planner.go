package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"workforce-planner/backend/internal/services"
	"workforce-planner/backend/pkg/models"
)

// Server holds the dependencies for the API server.
type Server struct {
	Service *services.PlannerService
}

// NewServer creates a new Server.
func NewServer(service *services.PlannerService) *Server {
	return &Server{Service: service}
}

// RegisterHandlers mounts all planner routes on the given group.
func RegisterHandlers(g *echo.Group, s *Server) {
	g.POST("/current-state", s.ComputeCurrentState)
	g.POST("/impact", s.ComputeImpact)
	g.POST("/plans", s.SavePlan)
	g.GET("/plans", s.ListPlans)
	g.GET("/plans/:id", s.GetPlan)
	g.PATCH("/plans/:id", s.UpdatePlan)
	g.DELETE("/plans/:id", s.DeletePlan)
	g.POST("/plans/:id/publish", s.PublishPlan)
	g.GET("/plans/:id/publish-progress", s.PublishProgress)
}

// ComputeCurrentState returns the per-role current-state aggregates for a
// scope. An empty dimension selection yields an empty list by design.
// (POST /api/v1/current-state)
func (s *Server) ComputeCurrentState(c echo.Context) error {
	ctx := c.Request().Context()

	var scope models.Scope
	if err := c.Bind(&scope); err != nil {
		return problem(c, http.StatusBadRequest, "Invalid request body", err.Error())
	}

	aggregates, err := s.Service.CurrentState(ctx, scope)
	if err != nil {
		return problem(c, http.StatusInternalServerError, "Failed to compute current state", err.Error())
	}
	if aggregates == nil {
		aggregates = []models.RoleAggregate{}
	}
	return c.JSON(http.StatusOK, aggregates)
}

// ComputeImpact runs the full simulation for a scenario configuration.
// (POST /api/v1/impact)
func (s *Server) ComputeImpact(c echo.Context) error {
	ctx := c.Request().Context()

	var cfg models.ScenarioConfig
	if err := c.Bind(&cfg); err != nil {
		return problem(c, http.StatusBadRequest, "Invalid request body", err.Error())
	}

	result, err := s.Service.ComputeImpact(ctx, cfg)
	if err != nil {
		return problem(c, http.StatusInternalServerError, "Failed to compute impact", err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// SavePlanRequest is the save-as-draft payload. Result is optional; when
// absent the scenario is computed server-side.
type SavePlanRequest struct {
	Name   string                `json:"name"`
	Config models.ScenarioConfig `json:"config"`
	Result *models.ImpactResult  `json:"result,omitempty"`
}

// SavePlan saves a new draft plan.
// (POST /api/v1/plans)
func (s *Server) SavePlan(c echo.Context) error {
	ctx := c.Request().Context()

	var req SavePlanRequest
	if err := c.Bind(&req); err != nil {
		return problem(c, http.StatusBadRequest, "Invalid request body", err.Error())
	}
	if req.Name == "" {
		return problem(c, http.StatusBadRequest, "Invalid request body", "plan name is required")
	}

	plan, err := s.Service.SavePlan(ctx, req.Name, req.Config, req.Result)
	if err != nil {
		return problem(c, http.StatusInternalServerError, "Failed to save plan", err.Error())
	}
	return c.JSON(http.StatusCreated, plan)
}

// ListPlans returns all saved plans.
// (GET /api/v1/plans)
func (s *Server) ListPlans(c echo.Context) error {
	plans, err := s.Service.ListPlans(c.Request().Context())
	if err != nil {
		return problem(c, http.StatusInternalServerError, "Failed to list plans", err.Error())
	}
	if plans == nil {
		plans = []*models.SavedPlan{}
	}
	return c.JSON(http.StatusOK, plans)
}

// GetPlan returns one plan by id.
// (GET /api/v1/plans/:id)
func (s *Server) GetPlan(c echo.Context) error {
	plan, err := s.Service.GetPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return problem(c, http.StatusInternalServerError, "Failed to load plan", err.Error())
	}
	if plan == nil {
		return problem(c, http.StatusNotFound, "Plan not found", "no plan with id "+c.Param("id"))
	}
	return c.JSON(http.StatusOK, plan)
}

// UpdatePlan merges a partial update into a draft plan.
// (PATCH /api/v1/plans/:id)
func (s *Server) UpdatePlan(c echo.Context) error {
	ctx := c.Request().Context()

	var update models.PlanUpdate
	if err := c.Bind(&update); err != nil {
		return problem(c, http.StatusBadRequest, "Invalid request body", err.Error())
	}

	plan, err := s.Service.UpdatePlan(ctx, c.Param("id"), update)
	if err != nil {
		if errors.Is(err, services.ErrPlanPublished) {
			return problem(c, http.StatusConflict, "Plan is published", err.Error())
		}
		return problem(c, http.StatusInternalServerError, "Failed to update plan", err.Error())
	}
	if plan == nil {
		return problem(c, http.StatusNotFound, "Plan not found", "no plan with id "+c.Param("id"))
	}
	return c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan.
// (DELETE /api/v1/plans/:id)
func (s *Server) DeletePlan(c echo.Context) error {
	deleted, err := s.Service.DeletePlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return problem(c, http.StatusInternalServerError, "Failed to delete plan", err.Error())
	}
	if !deleted {
		return problem(c, http.StatusNotFound, "Plan not found", "no plan with id "+c.Param("id"))
	}
	return c.NoContent(http.StatusNoContent)
}

// PublishPlan transitions a draft plan to published.
// (POST /api/v1/plans/:id/publish)
func (s *Server) PublishPlan(c echo.Context) error {
	plan, err := s.Service.PublishPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return problem(c, http.StatusInternalServerError, "Failed to publish plan", err.Error())
	}
	if plan == nil {
		return problem(c, http.StatusNotFound, "Plan not found", "no plan with id "+c.Param("id"))
	}
	return c.JSON(http.StatusOK, plan)
}

// PublishProgress returns the cosmetic publish progress sequence for a plan.
// (GET /api/v1/plans/:id/publish-progress)
func (s *Server) PublishProgress(c echo.Context) error {
	plan, err := s.Service.GetPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return problem(c, http.StatusInternalServerError, "Failed to load plan", err.Error())
	}
	if plan == nil {
		return problem(c, http.StatusNotFound, "Plan not found", "no plan with id "+c.Param("id"))
	}
	return c.JSON(http.StatusOK, services.PublishProgress(plan))
}
