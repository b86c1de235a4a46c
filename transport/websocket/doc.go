// Package websocket streams Color Lines game updates to browser clients.
//
// A Hub keeps the connected clients of each session. Clients attach with
// GET /ws?session=<id>; the API server calls BroadcastToSession after every
// turn so each watcher receives the new GameState together with its text
// render. Clients do not send commands; moves go through the REST API.
//
// Outgoing messages are JSON:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}, "board": "..."}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Each client has its own write goroutine and queue. A client whose queue
// fills up is dropped. When the Run context ends every client is closed.
package websocket
