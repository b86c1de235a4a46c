package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/color-lines/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, seed *uint64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	MakeMove(ctx context.Context, sessionID string, move engine.Move) (*MoveResult, error)
	SuggestMove(ctx context.Context, sessionID string) (*HintResult, error)
	AutoPlay(ctx context.Context, sessionID string, maxTurns int) (*AutoPlayResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	RenderBoard(ctx context.Context, sessionID string) (string, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error

	// Leaderboard
	TopScores(ctx context.Context, limit int) ([]*GameResult, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, configID string, config *engine.GameConfig, seed *uint64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ErrConfigNotFound is wrapped by ConfigManager.LoadConfig for unknown configs
var ErrConfigNotFound = errors.New("configuration not found")

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// ResultStore records finished games
type ResultStore interface {
	RecordResult(result *GameResult) error
	TopScores(limit int) ([]*GameResult, error)
}

// Session represents an active game session
type Session struct {
	ID             string
	ConfigID       string // config identifier the session was created from
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
