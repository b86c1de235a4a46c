// Package mcp exposes the Color Lines game to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// the API server, and the JSON response is formatted as text for the agent.
// No game state lives in this package.
//
// MCP Tools:
//   - create_session: Create a session, optionally with a config and a seed
//   - list_sessions: List all active sessions
//   - game_state: Board with coordinates, next stones and score
//   - make_move: Move the stone at (x1,y1) to the empty cell (x2,y2)
//   - hint: Suggest a legal move without playing it
//   - autoplay: Let the random bot play up to max_turns turns
//   - move_history: Paginated move history
//   - list_configs: Available board configurations
//   - leaderboard: Best finished games
//   - game_instructions: Rules and scoring
//
// Tool failures, including API errors, are returned as tool results with
// IsError set rather than as protocol errors.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode: POST JSON-RPC messages to /mcp
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
