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
	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/service"
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
		"Golem",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Golem - MCP Interface

This is a thin client that proxies all requests to the REST API server.

WORLD:
A tile-grid world made of map sets. The player (@) walks the grid; standing
on a trigger cell (*) switches to another map set on the next frame tick.

AVAILABLE TOOLS:
- create_session: Create a new world session
- list_sessions / get_session: Inspect sessions
- world_state: Status line, map set and a map of base tile IDs
- command: Run one command (up/down/left/right, a, b, c, menu) - requires intent
- bulk_command: Run several commands - requires intent
- touch: Tap the control panel at a scene point (y grows upward)
- tick: Advance frame ticks
- load_map_set: Switch map sets directly
- reset_world: Back to the starting cell and map set
- command_history: Past commands, paginated
- describe_tile: Base and texture tile IDs at a cell
- list_configs: Available world configurations
- game_instructions: Full rules

NOTE: The 'intent' parameter on command tools is for explaining your reasoning.`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new world session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active world sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// World
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "world_state",
		Description: "Get the current world state with a map of the active map set",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleWorldState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command",
		Description: "Run one player command",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"command": map[string]interface{}{
					"type":        "string",
					"enum":        commandNames(),
					"description": "Command to run",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you are running this command",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before running",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, c.handleCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_command",
		Description: fmt.Sprintf("Run up to %d commands in sequence, stopping at the first blocked move", engine.MaxBulkCommands),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"commands": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": commandNames(),
					},
					"description": "Commands to run",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of what this sequence should achieve",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before running",
				},
			},
			Required: []string{"session_id", "commands"},
		},
	}, c.handleBulkCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "touch",
		Description: "Tap the on-screen control panel at a scene point. The origin is the bottom-left corner and y grows upward.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"x": map[string]interface{}{
					"type":        "number",
					"description": "Scene x coordinate",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Scene y coordinate",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleTouch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance the world by frame ticks. Transitions are evaluated on ticks.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"count": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Number of ticks (default 1, max %d)", engine.MaxTicksPerCall),
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "load_map_set",
		Description: "Switch the session to another map set. The player is clamped into the new map.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"map_set": map[string]interface{}{
					"type":        "string",
					"description": "Map set name, e.g. world or other",
				},
			},
			Required: []string{"session_id", "map_set"},
		},
	}, c.handleLoadMapSet)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_world",
		Description: "Reset the player and map set to the configured start. History is kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command_history",
		Description: "Get command history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCommandHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Get the base and texture tile IDs at a cell of the active map set. Row 0 is the bottom row.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row, counted from the bottom (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column, counted from the left (0-based)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available world configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive world instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func commandNames() []string {
	names := []string{"up", "down", "left", "right", "a", "b", "c", "menu"}
	for _, cmd := range engine.AllCommands {
		names = append(names, string(cmd))
	}
	return names
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
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
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func intArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	body := map[string]string{}
	if configID := stringArg(args, "config_id"); configID != "" {
		body["config_id"] = configID
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		info.ID, info.ConfigName, formatWorldState(info.WorldState, info.WorldConfig))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		mapSet := "?"
		if s.WorldState != nil {
			mapSet = s.WorldState.MapSet
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Map set: %s, Created: %s)\n",
			s.ID, s.ConfigName, mapSet, s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var info service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&info)), nil
}

func (c *Client) handleWorldState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	// session info carries the config, which gives the trigger cells
	var info service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatWorldState(info.WorldState, info.WorldConfig)), nil
}

func (c *Client) handleCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	reset, _ := args["reset"].(bool)

	body := map[string]interface{}{
		"command": stringArg(args, "command"),
		"reset":   reset,
	}

	var result service.CommandResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/command"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleBulkCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	reset, _ := args["reset"].(bool)

	raw, _ := args["commands"].([]interface{})
	commands := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			commands = append(commands, s)
		}
	}

	body := map[string]interface{}{
		"commands": commands,
		"reset":    reset,
	}

	var result service.BulkCommandResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-command"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBulkCommandResult(sessionID, &result)), nil
}

func (c *Client) handleTouch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	x, okX := args["x"].(float64)
	y, okY := args["y"].(float64)
	if !okX || !okY {
		return mcp.NewToolResultError("x and y must be numbers"), nil
	}

	var result service.CommandResult
	body := map[string]float64{"x": x, "y": y}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/touch"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	count, _ := intArg(args, "count")

	var resp service.TickResponse
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/tick"), map[string]int{"count": count}, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatTickResponse(&resp)), nil
}

func (c *Client) handleLoadMapSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")

	var state engine.WorldState
	body := map[string]string{"map_set": stringArg(args, "map_set")}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/mapset"), body, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Map set loaded.\n\n" + formatWorldState(&state, nil)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var response struct {
		Message string             `json:"message"`
		State   *engine.WorldState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatWorldState(response.State, nil))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCommandHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := stringArg(args, "order"); order != "" {
		params.Set("order", order)
	}
	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(describeTile(info.WorldState, info.WorldConfig, row, col)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Start: %s, Map sets: %s\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.StartMapSet, strings.Join(cfg.MapSets, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := fmt.Sprintf(`Golem - Complete Instructions

THE WORLD:
A world is a set of named map sets. Each map set is a grid of tile IDs in
two layers: base (ground) and texture (decoration). Only the active map set
is shown. Row 0 is the bottom row, column 0 the left column.

COMMANDS:
• up / down / left / right (dpad_*): move one cell. Moves past the map edge
  are clamped, so the player stays put and the command reports "blocked".
• b (control_b): add %d gold
• c (control_c): spend %d gold (gold may go negative)
• a and menu: accepted but have no effect yet

STATUS LINE:
  HP:{health} - MP:{magic} - LVL:{experience} - Gold:{gold} @ {row},{col}

TRANSITIONS:
Trigger cells (* on the map) switch to another map set on the next frame
tick. Every command or touch is followed by one tick, so walking onto a
trigger switches immediately. In edge mode a trigger fires once per
arrival; in level mode it fires on every tick while the player stands on it.
After a switch the player is clamped into the new map's bounds.

TOUCH:
The control panel is hit-tested in scene space (origin bottom-left, y up).
Use get_session to read the configured hit zones.

TIPS:
1. Use world_state to see the map, the player (@) and triggers (*)
2. Use bulk_command for paths; it stops at the first blocked move
3. Use command_history to review what happened
4. A failed map load keeps the previous map set active

LIMITS:
• bulk_command: %d commands per call
• tick: %d ticks per call`, engine.GoldStep, engine.GoldStep, engine.MaxBulkCommands, engine.MaxTicksPerCall)

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nLast access: %s\n\n%s",
		info.ID, info.ConfigName,
		info.CreatedAt.Format(time.RFC3339),
		info.LastAccessedAt.Format(time.RFC3339),
		formatWorldState(info.WorldState, info.WorldConfig))
}

// formatWorldState renders the status and a map of base tile IDs with the
// player and, when cfg is known, the trigger cells marked
func formatWorldState(state *engine.WorldState, cfg *engine.WorldConfig) string {
	if state == nil {
		return "World state: unavailable"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Map set: %s (%d rows x %d cols, tile size %.0f)\n", state.MapSet, state.Rows, state.Cols, state.TileSize)
	fmt.Fprintf(&b, "Status: %s\n", state.Status)
	fmt.Fprintf(&b, "Ticks: %d, Commands: %d\n", state.Ticks, state.TotalCommands)
	if state.LastError != "" {
		fmt.Fprintf(&b, "Last error: %s\n", state.LastError)
	}

	triggers := triggerCells(state.MapSet, cfg)
	if len(state.Base) > 0 {
		b.WriteString("\nBase layer (top row first, @ = player, * = trigger):\n")
		b.WriteString(formatMap(state, triggers))
	}

	if cfg != nil {
		table := engine.NewTransitionTable(cfg.Transitions, cfg.TransitionMode)
		pos := engine.GridPos{Row: state.Player.Row, Col: state.Player.Col}
		if rule, dist, ok := engine.NearestTransition(table, state.MapSet, pos); ok {
			fmt.Fprintf(&b, "\nNearest trigger: (%d,%d) -> %s, %d steps away\n", rule.Row, rule.Col, rule.To, dist)
		}
	}
	return b.String()
}

func triggerCells(mapSet string, cfg *engine.WorldConfig) map[engine.GridPos]string {
	out := make(map[engine.GridPos]string)
	if cfg == nil {
		return out
	}
	for _, r := range cfg.Transitions {
		if r.From != "" && r.From != mapSet {
			continue
		}
		out[engine.GridPos{Row: r.Row, Col: r.Col}] = r.To
	}
	return out
}

func formatMap(state *engine.WorldState, triggers map[engine.GridPos]string) string {
	var b strings.Builder
	rows := len(state.Base)
	for i, line := range state.Base {
		row := rows - 1 - i
		fmt.Fprintf(&b, "%3d |", row)
		for col, id := range line {
			pos := engine.GridPos{Row: row, Col: col}
			switch {
			case row == state.Player.Row && col == state.Player.Col:
				b.WriteString("   @")
			case triggers[pos] != "":
				b.WriteString("   *")
			default:
				fmt.Fprintf(&b, "%4d", id)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func describeTile(state *engine.WorldState, cfg *engine.WorldConfig, row, col int) string {
	if state == nil || len(state.Base) == 0 {
		return "No map set is loaded"
	}
	if row < 0 || row >= state.Rows || col < 0 || col >= state.Cols {
		return fmt.Sprintf("Cell (%d,%d) is out of bounds. %s is %d rows x %d cols (rows 0-%d, cols 0-%d)",
			row, col, state.MapSet, state.Rows, state.Cols, state.Rows-1, state.Cols-1)
	}

	i := state.Rows - 1 - row
	var b strings.Builder
	fmt.Fprintf(&b, "Cell (%d,%d) of %s:\n", row, col, state.MapSet)
	fmt.Fprintf(&b, "Base tile: %d\n", state.Base[i][col])
	if i < len(state.Texture) && col < len(state.Texture[i]) {
		fmt.Fprintf(&b, "Texture tile: %d\n", state.Texture[i][col])
	}
	if row == state.Player.Row && col == state.Player.Col {
		b.WriteString("The player is here.\n")
	}
	if to, ok := triggerCells(state.MapSet, cfg)[engine.GridPos{Row: row, Col: col}]; ok {
		fmt.Fprintf(&b, "Trigger: switches to %s\n", to)
	}
	return b.String()
}

func formatCommandResult(result *service.CommandResult) string {
	var b strings.Builder
	if result.Touch != nil {
		fmt.Fprintf(&b, "Touch at (%.0f,%.0f)", result.Touch.X, result.Touch.Y)
		if result.Command != "" {
			fmt.Fprintf(&b, " -> %s", result.Command)
		}
		b.WriteByte('\n')
	} else if result.Command != "" {
		fmt.Fprintf(&b, "Command: %s\n", result.Command)
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}
	for _, e := range result.Events {
		fmt.Fprintf(&b, "  [%s] %s\n", e.Type, e.Message)
	}
	b.WriteByte('\n')
	b.WriteString(formatWorldState(result.WorldState, nil))
	return b.String()
}

func formatBulkCommandResult(sessionID string, result *service.BulkCommandResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s: executed %d/%d commands\n", sessionID, result.CommandsExecuted, result.RequestedCommands)
	if result.Truncated {
		fmt.Fprintf(&b, "Request truncated to %d commands\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on command %d: %s\n", result.StoppedOnCommand, result.StoppedReason)
	}
	fmt.Fprintf(&b, "Start: %s (%d,%d)  End: %s (%d,%d)  Gold delta: %+d\n",
		result.StartMapSet, result.StartPos.Row, result.StartPos.Col,
		result.EndMapSet, result.EndPos.Row, result.EndPos.Col, result.GoldDelta)

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range result.Steps {
			mark := "✓"
			if !s.Changed {
				mark = "✗"
			}
			fmt.Fprintf(&b, "%2d. %-13s (%d,%d)->(%d,%d) %s gold=%d %s", s.Idx, s.Command,
				s.From.Row, s.From.Col, s.To.Row, s.To.Col, s.MapSet, s.Gold, mark)
			if s.Switch != "" {
				fmt.Fprintf(&b, " => %s", s.Switch)
			}
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	b.WriteString(formatWorldState(result.WorldState, nil))
	return b.String()
}

func formatTickResponse(resp *service.TickResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticks: %d executed (%d requested)\n", resp.Executed, resp.Requested)
	for _, t := range resp.Transitions {
		if t.Error != "" {
			fmt.Fprintf(&b, "  tick %d: %s -> %s failed: %s\n", t.Tick, t.From, t.To, t.Error)
			continue
		}
		fmt.Fprintf(&b, "  tick %d: %s -> %s\n", t.Tick, t.From, t.To)
	}
	b.WriteByte('\n')
	b.WriteString(formatWorldState(resp.WorldState, nil))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Command History (Page %d/%d), Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalCommands)

	for _, rec := range history.Commands {
		mark := "✓"
		if !rec.Changed {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%d. %s %s (%d,%d)->(%d,%d) on %s [Gold: %d]\n",
			rec.Number, rec.Command, mark, rec.From.Row, rec.From.Col, rec.To.Row, rec.To.Col, rec.MapSet, rec.Gold)
	}
	return b.String()
}
