// Package service provides the business logic layer for the Color Lines game.
//
// The service package implements:
//   - Multi-session game management
//   - Turn processing with per-turn events
//   - Hints and bot autoplay
//   - Move history pagination
//   - A leaderboard of finished games
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
// ResultStore keeps finished games for TopScores.
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the engine. Each session owns its own engine; a session is rebuilt from its
// seed and move log when it is loaded from storage.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.MakeMove(ctx, info.ID, engine.NewMove(0, 0, 4, 4))
package service
