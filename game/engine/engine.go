package engine

import (
	"fmt"
	"math/rand/v2"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() *GameState
	IsOver() bool
	Score() int
	BonusScore() int
	Next() []Color
	LineSize() int
	AppendCount() int
	Seed() uint64

	// Moves
	MakeMove(x1, y1, x2, y2 int) (*TurnResult, error)

	// Read-only capabilities for agents
	Board() BoardView
	View() GameView

	// Configuration
	GetConfig() *GameConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface. It is not safe for
// concurrent use; callers sharing an engine must serialize access.
type GameEngine struct {
	config      *GameConfig
	board       *Board
	palette     []Color
	lineSize    int
	appendCount int
	score       int
	bonusScore  int
	next        []Color
	over        bool
	seed        uint64
	rng         *rand.Rand
	history     []MoveHistoryEntry
}

// NewEngine creates a new game engine with the provided configuration.
// The seed comes from config.Seed when set, otherwise a fresh one is drawn.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if config != nil && config.Seed != nil {
		return NewEngineWithSeed(config, *config.Seed)
	}
	return NewEngineWithSeed(config, rand.Uint64())
}

// NewEngineWithSeed creates a new game engine whose random source is seeded
// with seed. Equal seeds and equal move sequences give equal games.
func NewEngineWithSeed(config *GameConfig, seed uint64) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:      config,
		board:       NewBoard(config.Size),
		palette:     append([]Color(nil), config.palette()...),
		lineSize:    config.LineSize,
		appendCount: config.AppendCount,
		seed:        seed,
		rng:         rand.New(rand.NewPCG(seed, seed^pcgStream)),
		history:     []MoveHistoryEntry{},
	}

	// The first batch is drawn before the opening update places it.
	e.createNext()
	e.update()

	return e, nil
}

// New creates a game with the default palette from bare parameters.
// A nil seed draws a fresh one.
func New(size, lineSize, appendCount int, seed *uint64) (*GameEngine, error) {
	config := &GameConfig{
		Name:        "custom",
		Size:        size,
		LineSize:    lineSize,
		AppendCount: appendCount,
		Seed:        seed,
	}
	return NewEngine(config)
}

// NewEngineWithDefaults creates a new game engine with the classic configuration
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default config rejected: %v", err))
	}
	return e
}

// Replay rebuilds a game by applying moves to a fresh engine seeded with seed
func Replay(config *GameConfig, seed uint64, moves []Move) (*GameEngine, error) {
	e, err := NewEngineWithSeed(config, seed)
	if err != nil {
		return nil, err
	}

	for i, m := range moves {
		if _, err := e.MakeMove(m.From.X, m.From.Y, m.To.X, m.To.Y); err != nil {
			return nil, fmt.Errorf("replay move %d (%d,%d)->(%d,%d): %w",
				i+1, m.From.X, m.From.Y, m.To.X, m.To.Y, err)
		}
	}

	return e, nil
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	history := make([]MoveHistoryEntry, len(e.history))
	copy(history, e.history)

	return &GameState{
		Grid:        e.board.Rows(),
		Size:        e.board.Size(),
		LineSize:    e.lineSize,
		AppendCount: e.appendCount,
		Score:       e.score,
		BonusScore:  e.bonusScore,
		Next:        e.Next(),
		GameOver:    e.over,
		EmptyCells:  len(e.board.EmptyCells()),
		ConfigName:  e.config.Name,
		Seed:        e.seed,
		MoveHistory: history,
		TotalMoves:  len(e.history),
	}
}

// IsOver returns whether the game is over
func (e *GameEngine) IsOver() bool {
	return e.over
}

// Score returns the current score
func (e *GameEngine) Score() int {
	return e.score
}

// BonusScore returns the per-clear bonus. It is always 0 today.
func (e *GameEngine) BonusScore() int {
	return e.bonusScore
}

// Next returns a copy of the stones that will be inserted after the next move
func (e *GameEngine) Next() []Color {
	next := make([]Color, len(e.next))
	copy(next, e.next)
	return next
}

// LineSize returns the minimum run length that gets cleared
func (e *GameEngine) LineSize() int {
	return e.lineSize
}

// AppendCount returns the number of stones inserted per turn
func (e *GameEngine) AppendCount() int {
	return e.appendCount
}

// Seed returns the seed of the game's random source
func (e *GameEngine) Seed() uint64 {
	return e.seed
}

// Board returns a read-only view of the board
func (e *GameEngine) Board() BoardView {
	return boardView{board: e.board}
}

// View returns a read-only view of the game for move-decision agents
func (e *GameEngine) View() GameView {
	return gameView{engine: e}
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetMoveHistory returns a copy of the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	history := make([]MoveHistoryEntry, len(e.history))
	copy(history, e.history)
	return history
}

// GetLastMove returns a copy of the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// Moves returns the accepted moves in order, suitable for Replay
func (e *GameEngine) Moves() []Move {
	moves := make([]Move, len(e.history))
	for i, h := range e.history {
		moves[i] = h.Move()
	}
	return moves
}

// String renders the board with the next stones, score and status
func (e *GameEngine) String() string {
	return Render(e.View())
}
