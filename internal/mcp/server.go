package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"workforce-planner/backend/internal/services"
	"workforce-planner/backend/pkg/models"
)

type Server struct {
	mcpServer *server.MCPServer
	planner   *services.PlannerService
}

func NewServer(planner *services.PlannerService) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"Workforce Planner",
			"1.0.0",
			server.WithToolCapabilities(true),
		),
		planner: planner,
	}

	s.registerTools()
	return s
}

func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	scopeArgs := []mcp.ToolOption{
		mcp.WithString("business_units", mcp.Required(), mcp.Description("Comma-separated business units in scope")),
		mcp.WithString("locations", mcp.Required(), mcp.Description("Comma-separated locations in scope")),
		mcp.WithString("job_families", mcp.Required(), mcp.Description("Comma-separated job families in scope")),
	}
	scenarioArgs := append([]mcp.ToolOption{
		mcp.WithString("capabilities", mcp.Required(), mcp.Description("Comma-separated enabled capabilities: GenAI, RPA, ML")),
		mcp.WithString("adoption_rate", mcp.Description("conservative, moderate or aggressive (default moderate)")),
		mcp.WithNumber("planning_horizon", mcp.Description("Planning horizon in months: 6, 12 or 24 (default 12)")),
		mcp.WithString("timeline", mcp.Description("immediate or phased (default immediate)")),
		mcp.WithString("strategy", mcp.Description("capacity, cost or balanced (default balanced)")),
	}, scopeArgs...)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"compute_current_state",
			append([]mcp.ToolOption{mcp.WithDescription("Compute per-role current-state aggregates for a scope")}, scopeArgs...)...,
		),
		s.handleCurrentState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"compute_impact",
			append([]mcp.ToolOption{mcp.WithDescription("Compute the impact of an automation scenario")}, scenarioArgs...)...,
		),
		s.handleComputeImpact,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"save_plan",
			append([]mcp.ToolOption{
				mcp.WithDescription("Compute a scenario and save it as a draft plan"),
				mcp.WithString("name", mcp.Required(), mcp.Description("The plan name")),
			}, scenarioArgs...)...,
		),
		s.handleSavePlan,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_plan",
			mcp.WithDescription("Fetch a saved plan by id"),
			mcp.WithString("id", mcp.Required(), mcp.Description("The plan id")),
		),
		s.handleGetPlan,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_plans",
			mcp.WithDescription("List all saved plans"),
		),
		s.handleListPlans,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"publish_plan",
			mcp.WithDescription("Publish a draft plan; its content becomes read-only"),
			mcp.WithString("id", mcp.Required(), mcp.Description("The plan id")),
		),
		s.handlePublishPlan,
	)
}

func (s *Server) handleCurrentState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	scope := scopeFromArgs(args)
	aggregates, err := s.planner.CurrentState(ctx, scope)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute current state: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(aggregates)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleComputeImpact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	cfg := scenarioFromArgs(args)
	result, err := s.planner.ComputeImpact(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute impact: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(result)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleSavePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("Missing required parameter: name"), nil
	}

	cfg := scenarioFromArgs(args)
	plan, err := s.planner.SavePlan(ctx, name, cfg, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save plan: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(plan)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	plan, err := s.planner.GetPlan(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get plan: %v", err)), nil
	}
	if plan == nil {
		return mcp.NewToolResultError("No plan with id " + id), nil
	}

	jsonBytes, _ := json.Marshal(plan)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListPlans(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans, err := s.planner.ListPlans(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list plans: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(plans)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handlePublishPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	plan, err := s.planner.PublishPlan(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to publish plan: %v", err)), nil
	}
	if plan == nil {
		return mcp.NewToolResultError("No plan with id " + id), nil
	}

	jsonBytes, _ := json.Marshal(plan)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func scopeFromArgs(args map[string]interface{}) models.Scope {
	return models.Scope{
		BusinessUnits: splitCSV(args["business_units"]),
		Locations:     splitCSV(args["locations"]),
		JobFamilies:   splitCSV(args["job_families"]),
	}
}

func scenarioFromArgs(args map[string]interface{}) models.ScenarioConfig {
	caps := models.Capabilities{}
	for _, c := range splitCSV(args["capabilities"]) {
		switch strings.ToLower(c) {
		case "genai":
			caps.GenAI = true
		case "rpa":
			caps.RPA = true
		case "ml":
			caps.ML = true
		}
	}

	cfg := models.ScenarioConfig{
		EnabledCapabilities:    caps,
		AdoptionRate:           models.AdoptionModerate,
		PlanningHorizon:        12,
		ImplementationTimeline: models.TimelineImmediate,
		Strategy:               models.StrategyBalanced,
		Scope:                  scopeFromArgs(args),
	}
	if v, ok := args["adoption_rate"].(string); ok && v != "" {
		cfg.AdoptionRate = models.AdoptionRate(v)
	}
	if v, ok := args["planning_horizon"].(float64); ok && v > 0 {
		cfg.PlanningHorizon = int(v)
	}
	if v, ok := args["timeline"].(string); ok && v != "" {
		cfg.ImplementationTimeline = models.Timeline(v)
	}
	if v, ok := args["strategy"].(string); ok && v != "" {
		cfg.Strategy = models.Strategy(v)
	}
	return cfg
}

func splitCSV(value interface{}) []string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func MountHTTPHandlers(mux *http.ServeMux, mcpServer *server.MCPServer) {
	// Use SSE server for /mcp/sse and /mcp/message endpoints
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		// Direct POST for tool calls
		if r.Method == http.MethodPost {
			sseServer.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// SSE endpoints
	mux.HandleFunc("/mcp/sse", sseServer.ServeHTTP)
	mux.HandleFunc("/mcp/message", sseServer.ServeHTTP)
}
