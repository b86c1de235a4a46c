package service

import (
	"time"

	"github.com/wricardo/color-lines/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           uint64             `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool               `json:"success"`
	Moved     bool               `json:"moved"` // false when no empty path existed
	GameState *engine.GameState  `json:"game_state"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
	Turn      *engine.TurnResult `json:"turn,omitempty"`
}

// AutoPlayResult summarizes a run of bot-played turns
type AutoPlayResult struct {
	TurnsPlayed   int               `json:"turns_played"`
	ScoreDelta    int               `json:"score_delta"`
	GameOver      bool              `json:"game_over"`
	StoppedReason string            `json:"stopped_reason"` // game_over | max_turns
	GameState     *engine.GameState `json:"game_state"`
}

// HintResult is a move suggested by the random bot
type HintResult struct {
	Move    engine.Move `json:"move"`
	Sources int         `json:"sources"` // stones that can move at all
	Targets int         `json:"targets"` // cells the suggested stone can reach
}

// GameEvent represents an event that occurred during a turn
type GameEvent struct {
	Type      string            `json:"type"` // "move", "blocked", "lines_removed", "stones_added", "game_over"
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Positions []engine.Position `json:"positions,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string         `json:"filename"`
	ConfigID    string         `json:"config_id"` // The identifier to use for session creation
	Name        string         `json:"name"`      // Display name
	Description string         `json:"description"`
	Size        int            `json:"size"`
	LineSize    int            `json:"line_size"`
	AppendCount int            `json:"append_count"`
	Colors      []engine.Color `json:"colors,omitempty"`
}

// GameResult is a finished game kept for the leaderboard
type GameResult struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	ConfigName string    `json:"config_name"`
	Seed       uint64    `json:"seed"`
	Score      int       `json:"score"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}
