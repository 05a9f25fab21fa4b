package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/martian-robots/game/engine"
	"github.com/wricardo/martian-robots/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Martian Robots",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Martian Robots - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Robots explore a rectangular grid on Mars. Each robot starts at a position and
heading and follows a string of L (turn left), R (turn right) and F (forward)
instructions. A robot that moves off the grid is LOST and leaves a scent that
makes later robots ignore the same move.

AVAILABLE TOOLS:
- simulate: Run a mission given as text
- simulate_mission: Run a mission from the library
- get_run: Get details and report of a completed run
- list_runs: List completed runs
- delete_run: Forget a completed run
- list_missions: List missions in the library
- get_mission: Show a library mission
- rules: Get the input format and movement rules

NOTE: Every run starts with an empty scent registry.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Simulation
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulate",
		Description: "Simulate a mission. The first line is the grid's upper-right corner, followed by two lines per robot: 'X Y O' and the instructions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"input": map[string]interface{}{
					"type":        "string",
					"description": "Mission text, e.g. \"5 3\\n1 1 E\\nRFRFRFRF\"",
				},
			},
			Required: []string{"input"},
		},
	}, c.handleSimulate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulate_mission",
		Description: "Simulate a mission from the library",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mission_id": map[string]interface{}{
					"type":        "string",
					"description": "Mission ID as returned by list_missions",
				},
			},
			Required: []string{"mission_id"},
		},
	}, c.handleSimulateMission)

	// Runs
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Get details of a completed run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID to retrieve",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List completed runs, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of runs to return (optional)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"description": "Sort by creation time: asc or desc (default desc)",
					"enum":        []string{"asc", "desc"},
				},
			},
		},
	}, c.handleListRuns)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_run",
		Description: "Forget a completed run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID to delete",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleDeleteRun)

	// Missions
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_missions",
		Description: "List missions available in the library",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMissions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_mission",
		Description: "Show a library mission in canonical text form",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mission_id": map[string]interface{}{
					"type":        "string",
					"description": "Mission ID as returned by list_missions",
				},
			},
			Required: []string{"mission_id"},
		},
	}, c.handleGetMission)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rules",
		Description: "Get the mission format and movement rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRules)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// Tool handlers

func (c *Client) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, _ := arguments(request)["input"].(string)
	if strings.TrimSpace(input) == "" {
		return mcp.NewToolResultError("input is required"), nil
	}

	var run service.RunInfo
	if err := c.apiCall("POST", "/api/runs", map[string]string{"input": input}, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunInfo(&run)), nil
}

func (c *Client) handleSimulateMission(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	missionID, _ := arguments(request)["mission_id"].(string)
	if missionID == "" {
		return mcp.NewToolResultError("mission_id is required"), nil
	}

	var run service.RunInfo
	if err := c.apiCall("POST", "/api/runs", map[string]string{"mission_id": missionID}, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunInfo(&run)), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID, _ := arguments(request)["run_id"].(string)
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	var run service.RunInfo
	if err := c.apiCall("GET", "/api/runs/"+url.PathEscape(runID), nil, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunInfo(&run)), nil
}

func (c *Client) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	query := url.Values{}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		query.Set("order", order)
	}

	path := "/api/runs"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var response struct {
		Count int                `json:"count"`
		Total int                `json:"total"`
		Runs  []*service.RunInfo `json:"runs"`
	}
	if err := c.apiCall("GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Runs) == 0 {
		return mcp.NewToolResultText("No runs yet"), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Runs (%d of %d):\n", response.Count, response.Total)
	for _, run := range response.Runs {
		source := "input"
		if run.MissionID != "" {
			source = "mission " + run.MissionID
		}
		fmt.Fprintf(&result, "- %s (%s): %d robots, %d lost, created %s\n",
			run.ID, source, run.RobotCount, run.LostCount, run.CreatedAt.Format(time.RFC3339))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleDeleteRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID, _ := arguments(request)["run_id"].(string)
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	if err := c.apiCall("DELETE", "/api/runs/"+url.PathEscape(runID), nil, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Run %s deleted", runID)), nil
}

func (c *Client) handleListMissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var missions []*service.MissionInfo
	if err := c.apiCall("GET", "/api/missions", nil, &missions); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(missions) == 0 {
		return mcp.NewToolResultText("No missions available"), nil
	}

	var result strings.Builder
	result.WriteString("Available missions:\n")
	for _, m := range missions {
		fmt.Fprintf(&result, "- %s: grid %s, %d robots\n", m.MissionID, formatBounds(m.Bounds), m.Robots)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetMission(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	missionID, _ := arguments(request)["mission_id"].(string)
	if missionID == "" {
		return mcp.NewToolResultError("mission_id is required"), nil
	}

	var detail service.MissionDetail
	if err := c.apiCall("GET", "/api/missions/"+url.PathEscape(missionID), nil, &detail); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Mission: %s\nGrid: %s\nRobots: %d\n\n%s\n",
		detail.MissionID, formatBounds(detail.Bounds), detail.Robots, detail.Input)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(rules), nil
}

const rules = `Martian Robots - Rules

INPUT FORMAT:
  Line 1: MAX_X MAX_Y           upper-right corner of the grid; lower-left is (0,0)
  Then, for each robot:
    X Y O                       start position and orientation (N, E, S or W)
    INSTRUCTIONS                string of L, R and F (may be empty)

  Coordinates are at most 50. Instruction strings are shorter than 100 characters.
  Headings and instructions are case-insensitive.

INSTRUCTIONS:
  L  turn 90 degrees left, staying on the same cell
  R  turn 90 degrees right, staying on the same cell
  F  move one cell forward in the current orientation

COORDINATES:
  North is +Y, East is +X, South is -Y, West is -X.

LOST ROBOTS:
  A robot moving off the grid is LOST. It stays at its last position on the grid,
  leaves a scent there for its current orientation and ignores the rest of its
  instructions.

SCENTS:
  A later robot at a scented position and orientation ignores an F that would
  take it off the grid. Other instructions are unaffected.

ORDER:
  Robots run one after another in input order. Scents left by earlier robots
  affect later ones, so reordering robots can change the result.

OUTPUT:
  One line per robot: "X Y O", with " LOST" appended for lost robots.

EXAMPLE:
  Input:
    5 3
    1 1 E
    RFRFRFRF
    3 2 N
    FRRFLLFFRRFLL
    0 3 W
    LLFFFLFLFL
  Output:
    1 1 E
    3 3 N LOST
    2 3 S
`

// Formatting helpers

func formatBounds(b engine.Bounds) string {
	return fmt.Sprintf("(0,0)-(%d,%d)", b.MaxX, b.MaxY)
}

func formatRunInfo(run *service.RunInfo) string {
	var result strings.Builder

	fmt.Fprintf(&result, "Run: %s\n", run.ID)
	if run.MissionID != "" {
		fmt.Fprintf(&result, "Mission: %s\n", run.MissionID)
	}
	fmt.Fprintf(&result, "Grid: %s\n", formatBounds(run.Bounds))
	fmt.Fprintf(&result, "Robots: %d (%d lost)\n\n", run.RobotCount, run.LostCount)

	for _, robot := range run.Robots {
		status := "✓"
		if robot.Lost {
			status = "✗"
		}
		fmt.Fprintf(&result, "%s Robot %d: %s %s %q -> %s (executed %d",
			status, robot.ID, robot.Start, robot.Heading, robot.Instructions, robot.Line, robot.Executed)
		if robot.Ignored > 0 {
			fmt.Fprintf(&result, ", %d ignored by scent", robot.Ignored)
		}
		result.WriteString(")\n")
	}

	if len(run.Scents) > 0 {
		result.WriteString("\nScents:\n")
		for _, scent := range run.Scents {
			fmt.Fprintf(&result, "  %s %s\n", scent.Position, scent.Orientation)
		}
	}

	if run.Report != "" {
		fmt.Fprintf(&result, "\nReport:\n%s\n", run.Report)
	}

	return result.String()
}
