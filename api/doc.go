// Package api provides the HTTP REST API for the Color Lines game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session: {"config_id": "classic", "seed": 42}
//   - GET /api/sessions - List sessions (sort=accessed|created|score, order, limit)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current GameState
//   - GET /api/sessions/{id}/board - Text render (text/plain)
//   - POST /api/sessions/{id}/move - Play a turn: {"x1": 0, "y1": 0, "x2": 4, "y2": 4}
//   - POST /api/sessions/{id}/hint - Suggest a move without playing it
//   - POST /api/sessions/{id}/autoplay - Let the bot play: {"max_turns": 10}
//   - GET /api/sessions/{id}/history - Paginated move history (page, limit, order)
//
// Configuration:
//   - GET /api/configs - List configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get a configuration
//
// Other:
//   - GET /api/leaderboard - Best finished games (limit)
//   - GET /api/health - Liveness
//   - GET /ws?session={id} - WebSocket stream of state updates
//
// Errors are returned as {"error": "..."} with the status mapped from the
// error: 404 for unknown sessions or configs, 400 for rejected moves and
// invalid configs, 409 once the game is over, 500 otherwise.
//
// A move whose target cannot be reached is not an error. The turn still
// runs and the response has "moved": false.
package api
