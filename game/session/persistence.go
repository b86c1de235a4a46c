package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/wricardo/color-lines/game/engine"
	"github.com/wricardo/color-lines/game/service"
)

// ErrReplayMismatch is returned when a stored move log does not reproduce
// the stored snapshot
var ErrReplayMismatch = errors.New("replayed game does not match stored state")

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool

	// Lookup reports whether a session exists, returning an error when
	// storage could not be checked
	Lookup(id string) (bool, error)
}

// PersistedSessionData is the stored form of a session. The game itself is
// kept as its seed and move log; GameState is a snapshot used to detect
// replay drift and for humans reading the file.
type PersistedSessionData struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Config         *engine.GameConfig `json:"config,omitempty"`
	Seed           uint64             `json:"seed"`
	Moves          []engine.Move      `json:"moves"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state,omitempty"`
}

// newPersistedData captures a session for storage
func newPersistedData(session *service.Session) *PersistedSessionData {
	return &PersistedSessionData{
		ID:             session.ID,
		ConfigName:     session.ConfigID,
		Config:         session.Config,
		Seed:           session.Engine.Seed(),
		Moves:          session.Engine.Moves(),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
	}
}

// restore rebuilds a session by replaying its move log. The stored config
// wins over the config manager so later edits to a config file cannot change
// a saved game.
func restore(data *PersistedSessionData, configs service.ConfigManager) (*service.Session, error) {
	gameConfig := data.Config
	if gameConfig == nil {
		if configs == nil {
			return nil, fmt.Errorf("session %s has no stored config", data.ID)
		}
		var err error
		gameConfig, err = configs.LoadConfig(data.ConfigName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
		}
	}

	gameEngine, err := engine.Replay(gameConfig, data.Seed, data.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to replay session %s: %w", data.ID, err)
	}

	if snap := data.GameState; snap != nil {
		if snap.Score != gameEngine.Score() || snap.GameOver != gameEngine.IsOver() {
			return nil, fmt.Errorf("%w: session %s (score %d vs %d)",
				ErrReplayMismatch, data.ID, snap.Score, gameEngine.Score())
		}
	}

	return &service.Session{
		ID:             data.ID,
		ConfigID:       data.ConfigName,
		Engine:         gameEngine,
		Config:         gameConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}
