package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/color-lines/game/engine"
	"github.com/wricardo/color-lines/game/service"
)

func testState(t *testing.T) *engine.GameState {
	t.Helper()
	seed := uint64(3)
	game, err := engine.New(5, 4, 2, &seed)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return game.GetState()
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("%s returned error: %v", name, err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("%s returned no content", name)
	}
	content, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("%s: expected text content, got %T", name, result.Content[0])
	}
	return content.Text, result.IsError
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/test" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("Expected JSON content type on requests with a body")
		}
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]int{"echo": body["value"]})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	var result map[string]int
	err := client.apiCall(context.Background(), "POST", "/api/test", map[string]int{"value": 7}, &result)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if result["echo"] != 7 {
		t.Errorf("Expected echo 7, got %v", result)
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	err := client.apiCall(context.Background(), "GET", "/api/test", nil, nil)
	if err == nil {
		t.Error("Expected error for unreachable server")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"error message", `{"error":"session not found: abc"}`, "session not found: abc"},
		{"no message", `not json`, "API error: 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api/x", nil, nil)
			if err == nil || err.Error() != tt.expected {
				t.Errorf("Expected error %q, got %v", tt.expected, err)
			}
		})
	}
}

func TestClient_handleCreateSession(t *testing.T) {
	state := testState(t)
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:         "ab12",
			ConfigName: "small",
			Seed:       3,
			CreatedAt:  time.Now(),
			GameState:  state,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, isError := callTool(t, client.handleCreateSession, "create_session", map[string]interface{}{
		"config_id": "small",
		"seed":      float64(3),
	})

	if isError {
		t.Fatalf("Unexpected tool error: %s", text)
	}
	if received["config_id"] != "small" || received["seed"] != float64(3) {
		t.Errorf("Unexpected request body %v", received)
	}
	for _, want := range []string{"Session: ab12", "Config: small", "Seed: 3", "Next: "} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestClient_handleCreateSession_NoArguments(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(service.SessionInfo{ID: "x"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, isError := callTool(t, client.handleCreateSession, "create_session", nil)
	if isError {
		t.Fatalf("Unexpected tool error: %s", text)
	}
	if len(received) != 0 {
		t.Errorf("Expected empty body, got %v", received)
	}
	if !strings.Contains(text, "No game state available") {
		t.Errorf("Expected missing state note, got:\n%s", text)
	}
}

func TestClient_handleMakeMove(t *testing.T) {
	state := testState(t)
	var received map[string]int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/ab12/move" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(service.MoveResult{
			Success:   true,
			Moved:     true,
			GameState: state,
			Message:   "Removed 4 stones",
			Turn: &engine.TurnResult{
				Moved:      true,
				Removed:    make([]engine.Position, 4),
				ScoreDelta: 12,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, isError := callTool(t, client.handleMakeMove, "make_move", map[string]interface{}{
		"session_id": "ab12",
		"x1":         float64(0),
		"y1":         float64(1),
		"x2":         float64(2),
		"y2":         float64(3),
	})

	if isError {
		t.Fatalf("Unexpected tool error: %s", text)
	}
	if received["x1"] != 0 || received["y1"] != 1 || received["x2"] != 2 || received["y2"] != 3 {
		t.Errorf("Unexpected request body %v", received)
	}
	for _, want := range []string{"Stone moved", "Removed 4 stones for +12 points", "Score: "} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestClient_handleMakeMove_MissingArguments(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	text, isError := callTool(t, client.handleMakeMove, "make_move", map[string]interface{}{
		"x1": float64(0), "y1": float64(0), "x2": float64(1), "y2": float64(1),
	})
	if !isError || !strings.Contains(text, "session_id is required") {
		t.Errorf("Expected session_id error, got %q", text)
	}

	text, isError = callTool(t, client.handleMakeMove, "make_move", map[string]interface{}{
		"session_id": "ab12", "x1": float64(0), "y1": float64(0), "x2": float64(1),
	})
	if !isError || !strings.Contains(text, "y2 is required") {
		t.Errorf("Expected y2 error, got %q", text)
	}
}

func TestClient_handleMakeMove_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "target cell is occupied"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, isError := callTool(t, client.handleMakeMove, "make_move", map[string]interface{}{
		"session_id": "ab12", "x1": float64(0), "y1": float64(0), "x2": float64(1), "y2": float64(1),
	})
	if !isError || text != "target cell is occupied" {
		t.Errorf("Expected API error as tool error, got %q (isError=%v)", text, isError)
	}
}

func TestClient_handleHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/ab12/hint" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(service.HintResult{
			Move:    engine.NewMove(1, 2, 3, 4),
			Sources: 5,
			Targets: 9,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, isError := callTool(t, client.handleHint, "hint", map[string]interface{}{"session_id": "ab12"})
	if isError {
		t.Fatalf("Unexpected tool error: %s", text)
	}
	if !strings.Contains(text, "(1,2) -> (3,4)") || !strings.Contains(text, "5 stones can move") {
		t.Errorf("Unexpected hint output:\n%s", text)
	}
}

func TestClient_handleAutoPlay(t *testing.T) {
	state := testState(t)
	var received map[string]int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(service.AutoPlayResult{
			TurnsPlayed:   received["max_turns"],
			ScoreDelta:    10,
			StoppedReason: "max_turns",
			GameState:     state,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	text, _ := callTool(t, client.handleAutoPlay, "autoplay", map[string]interface{}{"session_id": "ab12"})
	if received["max_turns"] != 10 {
		t.Errorf("Expected default of 10 turns, got %d", received["max_turns"])
	}
	if !strings.Contains(text, "Played 10 turns (stopped: max_turns), score change +10") {
		t.Errorf("Unexpected autoplay output:\n%s", text)
	}

	callTool(t, client.handleAutoPlay, "autoplay", map[string]interface{}{"session_id": "ab12", "max_turns": float64(0)})
	if received["max_turns"] != 0 {
		t.Errorf("Expected 0 turns to be passed through, got %d", received["max_turns"])
	}
}

func TestClient_handleMoveHistory(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		json.NewEncoder(w).Encode(service.HistoryResponse{
			Moves: []engine.MoveHistoryEntry{
				{MoveNumber: 2, From: engine.Position{X: 0, Y: 0}, To: engine.Position{X: 4, Y: 4}, Moved: false, Score: 0},
				{MoveNumber: 1, From: engine.Position{X: 1, Y: 1}, To: engine.Position{X: 2, Y: 2}, Moved: true, Removed: 5, ScoreDelta: 10, Score: 10},
			},
			TotalMoves: 3,
			Page:       1,
			PageSize:   2,
			TotalPages: 2,
			HasNext:    true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, isError := callTool(t, client.handleMoveHistory, "move_history", map[string]interface{}{
		"session_id": "ab12",
		"limit":      float64(2),
		"order":      "desc",
	})
	if isError {
		t.Fatalf("Unexpected tool error: %s", text)
	}
	if query != "limit=2&order=desc" {
		t.Errorf("Unexpected query %q", query)
	}
	for _, want := range []string{
		"page 1 of 2, 3 moves total",
		"#2 (0,0)->(4,4) blocked, score 0",
		"#1 (1,1)->(2,2) moved, removed 5 (+10), score 10",
		"More moves on page 2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestClient_handleListConfigs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]service.ConfigInfo{
			{ConfigID: "classic", Name: "classic", Description: "Classic", Size: 9, LineSize: 5, AppendCount: 3},
		})
	}))
	defer server.Close()

	text, _ := callTool(t, NewClient(server.URL).handleListConfigs, "list_configs", nil)
	if !strings.Contains(text, "Board: 9x9, Lines of 5, 3 new stones per turn") {
		t.Errorf("Unexpected configs output:\n%s", text)
	}
}

func TestClient_handleLeaderboard(t *testing.T) {
	results := []service.GameResult{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"count": len(results), "results": results})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, _ := callTool(t, client.handleLeaderboard, "leaderboard", nil)
	if text != "No finished games yet." {
		t.Errorf("Unexpected empty leaderboard output %q", text)
	}

	results = append(results, service.GameResult{SessionID: "ab12", ConfigName: "classic", Score: 74, Moves: 40, Seed: 9})
	text, _ = callTool(t, client.handleLeaderboard, "leaderboard", map[string]interface{}{"limit": float64(5)})
	if !strings.Contains(text, "74  session ab12 (classic, 40 moves, seed 9)") {
		t.Errorf("Unexpected leaderboard output:\n%s", text)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	text, isError := callTool(t, client.handleGameInstructions, "game_instructions", nil)
	if isError {
		t.Fatal("Instructions should not be an error")
	}
	for _, want := range []string{"GAME OBJECTIVE", "2n² - 20n + 60", "all 8 directions"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in instructions", want)
		}
	}
}

func TestFormatGameState(t *testing.T) {
	state := testState(t)
	text := formatGameState(state)

	if !strings.Contains(text, "Lines of 4") {
		t.Errorf("Expected line size in header:\n%s", text)
	}
	if !strings.Contains(text, "   01234\n") {
		t.Errorf("Expected column header:\n%s", text)
	}
	if !strings.Contains(text, "Next: "+engine.Letters(state.Next)) {
		t.Errorf("Expected next stones:\n%s", text)
	}
	if strings.Contains(text, "GAME OVER") {
		t.Error("Fresh game should not be over")
	}

	state.GameOver = true
	if !strings.Contains(formatGameState(state), "GAME OVER") {
		t.Error("Expected game over marker")
	}
}

func TestFormatMoveResult_Blocked(t *testing.T) {
	text := formatMoveResult(&service.MoveResult{
		Success:   true,
		Moved:     false,
		GameState: testState(t),
		Turn:      &engine.TurnResult{Inserted: make([]engine.Position, 2)},
	})

	if !strings.Contains(text, "No path") || !strings.Contains(text, "2 new stones dropped") {
		t.Errorf("Unexpected blocked move output:\n%s", text)
	}
}
