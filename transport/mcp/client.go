package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/service"
)

// maxTickSeconds bounds one tick tool call
const maxTickSeconds = 60

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
		"EcoMerge Blitz",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`EcoMerge Blitz - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide the tiles on the grid to merge equal values. Every merge adds the new
tile's value to your score. The game ends when the countdown reaches zero or
when no move is left.

AVAILABLE TOOLS:
- create_session: Start a new timed game (optional config, player_name, manual_clock)
- game_state: Grid, score, and time remaining
- move: Slide all tiles in one direction
- bulk_move: Several slides at once (max 50)
- tick: Advance a manual-clock session by some seconds
- move_history: Past moves
- leaderboard: Top scores
- get_session / list_sessions / list_configs
- game_instructions: Full rules

TIP: create sessions with manual_clock=true so the countdown only advances when you call tick.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
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
		Description: "Create and start a new game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config": map[string]interface{}{
					"type":        "string",
					"description": "Config id to use (optional, see list_configs)",
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Name for the leaderboard, 1-20 characters (optional; anonymous games are not ranked)",
				},
				"manual_clock": map[string]interface{}{
					"type":        "boolean",
					"description": "Only advance the countdown through the tick tool",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
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
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current grid, score, and time remaining",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide every tile in a direction; equal neighbours merge",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple slides in sequence (max 50), stopping if the game ends",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of directions",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance a session's countdown by some seconds",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"seconds": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Seconds to advance (default 1, max %d)", maxTickSeconds),
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
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
					"description": "Oldest or newest first",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "Show the top scores",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of entries (default: all)",
				},
			},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
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

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	id := strings.TrimSpace(cast.ToString(args["session_id"]))
	if id == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(id) + suffix, nil
}

// directionList accepts a JSON array or a comma/space separated string
func directionList(raw interface{}) []string {
	if s, ok := raw.(string); ok {
		return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	}
	return cast.ToStringSlice(raw)
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	body := service.CreateSessionRequest{
		ConfigID:    cast.ToString(args["config"]),
		PlayerName:  cast.ToString(args["player_name"]),
		ManualClock: cast.ToBool(args["manual_clock"]),
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Created session: " + session.ID + "\n\n" + formatSessionInfo(&session)), nil
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
		score, phase := 0, engine.PhaseNotStarted
		if s.GameState != nil {
			score, phase = s.GameState.Score, s.GameState.Phase
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Player: %s, Score: %d, %s)\n",
			s.ID, s.ConfigName, displayName(s.PlayerName), score, phase)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// intent is for the caller's own reasoning; the server ignores it
	body := map[string]string{"direction": cast.ToString(args["direction"])}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/bulk-move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	moves := directionList(args["moves"])
	if len(moves) == 0 {
		return mcp.NewToolResultError("moves must contain at least one direction"), nil
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", path, map[string]interface{}{"moves": moves}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBulkMoveResult(&result)), nil
}

func (c *Client) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/tick")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	seconds := 1
	if raw, ok := args["seconds"]; ok {
		seconds = cast.ToInt(raw)
	}
	if seconds < 1 || seconds > maxTickSeconds {
		return mcp.NewToolResultError(fmt.Sprintf("seconds must be between 1 and %d", maxTickSeconds)), nil
	}

	var last service.TickResult
	var events []service.GameEvent
	ticked := 0
	for ticked < seconds {
		var result service.TickResult
		if err := c.apiCall(ctx, "POST", path, nil, &result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		last = result
		ticked++
		events = append(events, last.Events...)
		if last.GameState == nil || last.GameState.Phase != engine.PhaseRunning {
			break
		}
	}
	last.Events = events
	return mcp.NewToolResultText(formatTickResult(ticked, &last)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := url.Values{}
	if page := cast.ToInt(args["page"]); page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit := cast.ToInt(args["limit"]); limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if order := cast.ToString(args["order"]); order != "" {
		query.Set("order", order)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/leaderboard"
	if limit := cast.ToInt(arguments(request)["limit"]); limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var board service.LeaderboardResponse
	if err := c.apiCall(ctx, "GET", path, nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatLeaderboard(&board)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "- %s: %dx%d grid, %ds", cfg.ConfigID, cfg.GridSize, cfg.GridSize, cfg.TimeLimit)
		if cfg.Description != "" {
			fmt.Fprintf(&b, " - %s", cfg.Description)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `# EcoMerge Blitz

## Goal
Score as many points as possible before the countdown ends.

## Rules
1. The board is a square grid (4x4 by default). It starts with two tiles.
2. A move slides every tile as far as it goes in one direction.
3. Two tiles of the same value that collide merge into one tile of double
   value. A tile merges at most once per move.
4. Each merge adds the new tile's value to the score.
5. After a move that changed the board, a new tile appears on a random
   empty cell: a 2 most of the time, sometimes a 4.
6. A move that changes nothing does not count and spawns nothing.
7. The game ends when the time runs out or when the board is full and no
   two neighbours are equal.

## Merge rule examples (moving left)
- [2, 2, 2, 0] -> [4, 2, 0, 0]   (the pair nearest the wall merges first)
- [2, 2, 2, 2] -> [4, 4, 0, 0]   (each tile merges once)
- [4, 0, 0, 4] -> [8, 0, 0, 0]
- [2, 4, 8, 16] -> unchanged, not a move

## Clock
Sessions follow the wall clock, one second per second. A session created
with manual_clock=true only counts down when you call the tick tool, which
makes it easy to think between moves.

## Leaderboard
Games started with a player_name submit their final score. The table keeps
the best 10 scores; ties keep the earlier entry on top.

## Tips
- Keep your biggest tile in a corner and build towards it.
- Prefer moves that leave empty cells.
- bulk_move is fast but stops as soon as the game ends.
`

// Formatting helpers

func displayName(name string) string {
	if name == "" {
		return "anonymous"
	}
	return name
}

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", session.ID)
	fmt.Fprintf(&b, "Config: %s\n", session.ConfigName)
	fmt.Fprintf(&b, "Player: %s\n", displayName(session.PlayerName))
	if session.ManualClock {
		b.WriteString("Clock: manual (use the tick tool)\n")
	}
	if session.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(session.GameState))
	}
	return b.String()
}

// formatGrid renders the grid with right-aligned values and dots for empty cells
func formatGrid(grid engine.Grid) string {
	values := grid.Values()
	width := 1
	for _, row := range values {
		for _, v := range row {
			if w := len(strconv.Itoa(v)); v > 0 && w > width {
				width = w
			}
		}
	}

	var b strings.Builder
	for _, row := range values {
		for x, v := range row {
			if x > 0 {
				b.WriteString(" ")
			}
			cell := "."
			if v > 0 {
				cell = strconv.Itoa(v)
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d\n", state.Score)
	fmt.Fprintf(&b, "Time: %d/%ds\n", state.TimeRemaining, state.TimeLimit)
	fmt.Fprintf(&b, "Moves: %d  Max tile: %d\n", state.TotalMoves, state.MaxTile)

	switch state.Phase {
	case engine.PhaseEnded:
		fmt.Fprintf(&b, "Status: GAME OVER (%s)\n", state.EndReason)
	case engine.PhaseRunning:
		b.WriteString("Status: running\n")
	default:
		b.WriteString("Status: not started\n")
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}

	if len(state.Grid) > 0 {
		b.WriteString("\n")
		b.WriteString(formatGrid(state.Grid))
	}

	if state.Phase == engine.PhaseRunning {
		moves := engine.PossibleMoves(state.Grid)
		names := make([]string, 0, len(moves))
		for _, m := range moves {
			names = append(names, string(m))
		}
		fmt.Fprintf(&b, "\nPossible moves: %s\n", strings.Join(names, ", "))
	}
	return b.String()
}

func formatEvents(b *strings.Builder, events []service.GameEvent) {
	for _, e := range events {
		if e.Type == service.EventSpawn {
			continue
		}
		fmt.Fprintf(b, "  [%s] %s\n", e.Type, e.Message)
	}
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "Moved. +%d points, %d merge(s)\n", result.ScoreDelta, len(result.Merges))
	} else {
		fmt.Fprintf(&b, "No change: %s\n", result.Message)
	}
	if result.Spawned != nil {
		fmt.Fprintf(&b, "New tile %d at (%d,%d)\n", result.Spawned.Value, result.Spawned.Position.X, result.Spawned.Position.Y)
	}
	formatEvents(&b, result.Events)
	if result.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatBulkMoveResult(result *service.BulkMoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Executed %d/%d moves, score %d -> %d (+%d)\n",
		result.MovesExecuted, result.RequestedMoves, result.StartScore, result.EndScore, result.ScoreDelta)
	if result.Truncated {
		fmt.Fprintf(&b, "Only the first %d moves were applied\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason)
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range result.Steps {
			status := "moved"
			if !s.Moved {
				status = "no change"
			}
			fmt.Fprintf(&b, "  %d. %-5s %s +%d (score %d)\n", s.Idx, s.Dir, status, s.ScoreDelta, s.ScoreAfter)
		}
	}

	formatEvents(&b, result.Events)
	if result.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatTickResult(ticked int, result *service.TickResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Advanced %ds. Time remaining: %ds\n", ticked, result.TimeRemaining)
	formatEvents(&b, result.Events)
	if result.GameState != nil && result.GameState.Phase == engine.PhaseEnded {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d/%d, %d total):\n\n", history.Page, history.TotalPages, history.TotalMoves)
	for _, m := range history.Moves {
		fmt.Fprintf(&b, "#%d %-5s +%d (merges %d) score %d\n", m.MoveNumber, m.Direction, m.ScoreDelta, m.Merges, m.Score)
	}
	if history.HasNext {
		fmt.Fprintf(&b, "\nMore moves on page %d\n", history.Page+1)
	}
	return b.String()
}

func formatLeaderboard(board *service.LeaderboardResponse) string {
	if len(board.Entries) == 0 {
		return "Leaderboard is empty. Finish a named game to get on it!\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Leaderboard (top %d):\n\n", board.Capacity)
	for i, e := range board.Entries {
		fmt.Fprintf(&b, "%2d. %-20s %6d  %s\n", i+1, e.Name, e.Score, e.Date.Format("2006-01-02"))
	}
	return b.String()
}
