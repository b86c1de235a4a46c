// Package engine provides the core game logic for Color Lines.
//
// The engine package implements the game mechanics including:
//   - A square board of colored stones with bounds-checked access
//   - Reachability checks that decide whether a stone can travel
//   - Line detection, removal and scoring
//   - Random stone insertion and the game-over condition
//   - Configuration loading and validation
//
// Core Types:
//
// Board owns the grid of cells. GameEngine owns a Board plus the game-level
// state (line size, stones per turn, score, next stones, game-over flag) and
// runs one full turn per MakeMove call. BoardView and GameView are the
// read-only capabilities handed to bots and other move-decision agents.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the stone at (0, 0) to (4, 4)
//	result, err := gameEngine.MakeMove(0, 0, 4, 4)
//	fmt.Print(gameEngine)
//
// Game Rules:
//
// Each turn the player moves one stone to an empty cell. The stone travels
// through empty cells in any of the 8 directions; if no such path exists the
// turn is still consumed but the stone stays where it was. Runs of at least
// LineSize same-colored stones along a row, column or diagonal are removed
// and scored. Then AppendCount new stones, previewed by Next, are dropped on
// random empty cells. The game ends when the board cannot take another full
// batch.
package engine
