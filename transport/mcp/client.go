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

	"github.com/wricardo/color-lines/game/engine"
	"github.com/wricardo/color-lines/game/service"
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
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Color Lines Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Color Lines Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Move stones to build lines of one color and score as many points as possible
before the board fills up.

AVAILABLE TOOLS:
- create_session: Create a new game session (optional config and seed)
- list_sessions: List all active sessions
- game_state: Board, next stones and score of a session
- make_move: Move the stone at (x1,y1) to the empty cell (x2,y2)
- hint: Suggest a legal move without playing it
- autoplay: Let the random bot play some turns
- move_history: View past moves
- list_configs: List available configurations
- leaderboard: Best finished games
- game_instructions: Rules and scoring`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func coordinateProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     0,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Configuration to use, e.g. classic or small (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed; equal seeds and moves give equal games (optional)",
					"minimum":     0,
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

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, the next stones and the score of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name: "make_move",
		Description: "Move the stone at (x1,y1) to the empty cell (x2,y2). The stone travels through " +
			"empty cells in 8 directions. If no path exists the stone stays but the turn still passes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x1":         coordinateProperty("Column of the stone to move"),
				"y1":         coordinateProperty("Row of the stone to move"),
				"x2":         coordinateProperty("Column of the target cell"),
				"y2":         coordinateProperty("Row of the target cell"),
			},
			Required: []string{"session_id", "x1", "y1", "x2", "y2"},
		},
	}, c.handleMakeMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Suggest a legal move for a session without playing it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleHint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "autoplay",
		Description: "Let the random bot play turns for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"max_turns": map[string]interface{}{
					"type":        "integer",
					"description": "Turns to play; 0 plays until the game is over",
					"minimum":     0,
					"default":     10,
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAutoPlay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the move history of a session with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default: 1)",
					"minimum":     1,
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Moves per page (default: 20, max: 100)",
					"minimum":     1,
					"maximum":     100,
				},
				"order": map[string]interface{}{
					"type":        "string",
					"description": "asc or desc (default: desc)",
					"enum":        []string{"asc", "desc"},
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	// Information
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List all available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "Show the best finished games",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results (default: 10)",
					"minimum":     1,
				},
			},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules, scoring and board notation",
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
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if seed, ok := intArg(args, "seed"); ok && seed >= 0 {
		body["seed"] = uint64(seed)
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&info)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score, status := 0, "playing"
		if s.GameState != nil {
			score = s.GameState.Score
			if s.GameState.GameOver {
				status = "over"
			}
		}
		fmt.Fprintf(&sb, "- %s (Config: %s, Score: %d, %s, Created: %s)\n",
			s.ID, s.ConfigName, score, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(sb.String()), nil
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

func (c *Client) handleMakeMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]int{}
	for _, key := range []string{"x1", "y1", "x2", "y2"} {
		v, ok := intArg(args, key)
		if !ok {
			return mcp.NewToolResultError(key + " is required"), nil
		}
		body[key] = v
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/hint")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var hint service.HintResult
	if err := c.apiCall(ctx, "POST", path, nil, &hint); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m := hint.Move
	result := fmt.Sprintf("Suggested move: (%d,%d) -> (%d,%d)\n"+
		"%d stones can move; this one reaches %d cells.\n"+
		"Play it with make_move x1=%d y1=%d x2=%d y2=%d",
		m.From.X, m.From.Y, m.To.X, m.To.Y, hint.Sources, hint.Targets,
		m.From.X, m.From.Y, m.To.X, m.To.Y)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAutoPlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/autoplay")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	maxTurns, ok := intArg(args, "max_turns")
	if !ok {
		maxTurns = 10
	}

	var result service.AutoPlayResult
	if err := c.apiCall(ctx, "POST", path, map[string]int{"max_turns": maxTurns}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Played %d turns (stopped: %s), score change %+d\n\n%s",
		result.TurnsPlayed, result.StoppedReason, result.ScoreDelta, formatGameState(result.GameState))
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&sb, "• %s (%s)\n  %s\n  Board: %dx%d, Lines of %d, %d new stones per turn\n\n",
			cfg.ConfigID, cfg.Name, cfg.Description, cfg.Size, cfg.Size, cfg.LineSize, cfg.AppendCount)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/leaderboard"
	if limit, ok := intArg(arguments(request), "limit"); ok && limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var response struct {
		Results []service.GameResult `json:"results"`
	}
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Results) == 0 {
		return mcp.NewToolResultText("No finished games yet."), nil
	}

	var sb strings.Builder
	sb.WriteString("Leaderboard:\n\n")
	for i, r := range response.Results {
		fmt.Fprintf(&sb, "%2d. %5d  session %s (%s, %d moves, seed %d)\n",
			i+1, r.Score, r.SessionID, r.ConfigName, r.Moves, r.Seed)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Color Lines - Complete Instructions

GAME OBJECTIVE:
Score as many points as possible by lining up stones of one color. The game
ends when the board has no more room than one batch of new stones.

THE BOARD:
- Square grid, classic size 9x9. Coordinates are (x, y): x is the column,
  y is the row, both starting at 0 in the top-left corner.
- Each cell is empty ('.') or holds a stone shown by the first letter of its
  color (r=red, g=green, y=yellow, m=magenta, c=cyan, w=white). Blue and
  brown both show as 'b'.

A TURN:
1. Pick a stone (x1,y1) and an empty target (x2,y2).
2. The stone moves if a path of empty cells joins them. Paths may step in
   all 8 directions, diagonals included.
3. If there is no path the stone stays where it is, yet the turn still runs.
4. Every horizontal, vertical or diagonal run of at least line_size stones of
   one color is removed.
5. The previewed "Next" stones are dropped on random empty cells and a new
   preview is drawn.

SCORING:
Removing n stones in one turn scores 2n² - 20n + 60.
- 5 stones: 10 points
- 6 stones: 12 points
- 9 stones (two crossing lines): 42 points
Clearing more stones in one turn is worth far more than clearing them apart.

REJECTED MOVES (the turn does not run):
- Source and target are the same cell
- A coordinate is off the board
- The source cell is empty
- The target cell holds a stone
- The game is over

TIPS:
- Use hint to get a legal move, and game_state to see the board.
- Keep open space; the game ends when the board fills up.
- Aim for crossing lines to remove many stones at once.`

// Formatting helpers

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nSeed: %d\nCreated: %s\n\n%s",
		info.ID, info.ConfigName, info.Seed,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(info.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d | Moves: %d | Empty cells: %d | Lines of %d\n\n",
		state.Score, state.TotalMoves, state.EmptyCells, state.LineSize)

	// Column header
	sb.WriteString("   ")
	for x := 0; x < state.Size; x++ {
		fmt.Fprintf(&sb, "%d", x%10)
	}
	sb.WriteString("\n")

	for y, row := range state.Grid {
		fmt.Fprintf(&sb, "%2d ", y)
		for _, cell := range row {
			sb.WriteByte(cell.Color.Letter())
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nNext: %s\n", engine.Letters(state.Next))
	if state.GameOver {
		sb.WriteString("\nGAME OVER")
	}

	return sb.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var sb strings.Builder

	if result.Moved {
		sb.WriteString("✓ Stone moved\n")
	} else {
		sb.WriteString("✗ No path, stone stayed; the turn passed\n")
	}
	if result.Turn != nil {
		if n := len(result.Turn.Removed); n > 0 {
			fmt.Fprintf(&sb, "Removed %d stones for %+d points\n", n, result.Turn.ScoreDelta)
		}
		if n := len(result.Turn.Inserted); n > 0 {
			fmt.Fprintf(&sb, "%d new stones dropped\n", n)
		}
	}
	if result.Message != "" {
		fmt.Fprintf(&sb, "Message: %s\n", result.Message)
	}
	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))

	return sb.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Move History (page %d of %d, %d moves total):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, m := range history.Moves {
		status := "moved"
		if !m.Moved {
			status = "blocked"
		}
		fmt.Fprintf(&sb, "#%d (%d,%d)->(%d,%d) %s", m.MoveNumber, m.From.X, m.From.Y, m.To.X, m.To.Y, status)
		if m.Removed > 0 {
			fmt.Fprintf(&sb, ", removed %d (%+d)", m.Removed, m.ScoreDelta)
		}
		fmt.Fprintf(&sb, ", score %d\n", m.Score)
	}

	if history.HasNext {
		fmt.Fprintf(&sb, "\nMore moves on page %d", history.Page+1)
	}
	return sb.String()
}
