package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/color-lines/game/bot"
	"github.com/wricardo/color-lines/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions  SessionManager
	configs   ConfigManager
	results   ResultStore
	newPlayer func() bot.Player
	mu        sync.RWMutex
}

// Option configures a game service
type Option func(*gameServiceImpl)

// WithResultStore records finished games in store and serves TopScores from it
func WithResultStore(store ResultStore) Option {
	return func(s *gameServiceImpl) {
		s.results = store
	}
}

// WithPlayerFactory sets the player used by SuggestMove and AutoPlay.
// The factory is called once per request.
func WithPlayerFactory(factory func() bot.Player) Option {
	return func(s *gameServiceImpl) {
		s.newPlayer = factory
	}
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		newPlayer: func() bot.Player {
			return bot.NewRandomBot(rand.Uint64())
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName || cfg.ConfigID == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	configID := sess.ConfigID
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		Seed:           sess.Engine.Seed(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session. A nil seed draws a fresh one.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, seed *uint64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configName = s.getConfigID(config.Name)
	}

	session, err := s.sessions.Create("", configName, config, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().Str("session", session.ID).Str("config", configName).
		Uint64("seed", session.Engine.Seed()).Msg("session created")

	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	return nil
}

// MakeMove plays one turn for a session
func (s *gameServiceImpl) MakeMove(ctx context.Context, sessionID string, move engine.Move) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	turn, err := sess.Engine.MakeMove(move.From.X, move.From.Y, move.To.X, move.To.Y)
	if err != nil {
		return nil, fmt.Errorf("move (%d,%d)->(%d,%d): %w", move.From.X, move.From.Y, move.To.X, move.To.Y, err)
	}

	s.afterTurns(sess)

	message := "Stone moved"
	if !turn.Moved {
		message = "No path to the target; the turn passed"
	}
	if turn.GameOver {
		message = fmt.Sprintf("Game over! Final score: %d", sess.Engine.Score())
	}

	return &MoveResult{
		Success:   true,
		Moved:     turn.Moved,
		GameState: sess.Engine.GetState(),
		Message:   message,
		Events:    turnEvents(move, turn, sess.Engine.Score()),
		Turn:      turn,
	}, nil
}

// SuggestMove asks a fresh player for a move without playing it
func (s *gameServiceImpl) SuggestMove(ctx context.Context, sessionID string) (*HintResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if sess.Engine.IsOver() {
		return nil, engine.ErrGameOver
	}
	s.sessions.UpdateLastAccessed(sessionID)

	view := sess.Engine.View()
	move, err := s.newPlayer().GetMove(view)
	if err != nil {
		return nil, fmt.Errorf("no hint available: %w", err)
	}

	return &HintResult{
		Move:    move,
		Sources: len(bot.Sources(view.Board())),
		Targets: len(bot.Targets(view.Board(), move.From)),
	}, nil
}

// AutoPlay lets a player take up to maxTurns turns. Zero or less plays to
// the end of the game.
func (s *gameServiceImpl) AutoPlay(ctx context.Context, sessionID string, maxTurns int) (*AutoPlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if sess.Engine.IsOver() {
		return nil, engine.ErrGameOver
	}
	s.sessions.UpdateLastAccessed(sessionID)

	startScore := sess.Engine.Score()
	turns, runErr := bot.Run(ctx, sess.Engine, s.newPlayer(), maxTurns)
	if turns > 0 {
		s.afterTurns(sess)
	}
	if runErr != nil {
		return nil, fmt.Errorf("autoplay stopped after %d turns: %w", turns, runErr)
	}

	reason := "max_turns"
	if sess.Engine.IsOver() {
		reason = "game_over"
	}
	log.Debug().Str("session", sessionID).Int("turns", turns).Str("reason", reason).Msg("autoplay finished")

	return &AutoPlayResult{
		TurnsPlayed:   turns,
		ScoreDelta:    sess.Engine.Score() - startScore,
		GameOver:      sess.Engine.IsOver(),
		StoppedReason: reason,
		GameState:     sess.Engine.GetState(),
	}, nil
}

// afterTurns persists the session and records the result of a finished game
func (s *gameServiceImpl) afterTurns(sess *Session) {
	if err := s.sessions.Save(sess.ID); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("failed to persist session")
	}

	if !sess.Engine.IsOver() || s.results == nil {
		return
	}
	result := &GameResult{
		SessionID:  sess.ID,
		ConfigName: sess.ConfigID,
		Seed:       sess.Engine.Seed(),
		Score:      sess.Engine.Score(),
		Moves:      len(sess.Engine.GetMoveHistory()),
		FinishedAt: time.Now(),
	}
	if err := s.results.RecordResult(result); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("failed to record result")
		return
	}
	log.Info().Str("session", sess.ID).Int("score", result.Score).Msg("game finished")
}

// turnEvents describes a turn as a list of events
func turnEvents(move engine.Move, turn *engine.TurnResult, score int) []GameEvent {
	now := time.Now()
	events := []GameEvent{}

	if turn.Moved {
		events = append(events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("Moved (%d,%d) to (%d,%d)", move.From.X, move.From.Y, move.To.X, move.To.Y),
			Timestamp: now,
			Positions: []engine.Position{move.From, move.To},
		})
	} else {
		events = append(events, GameEvent{
			Type:      "blocked",
			Message:   fmt.Sprintf("No path from (%d,%d) to (%d,%d)", move.From.X, move.From.Y, move.To.X, move.To.Y),
			Timestamp: now,
			Positions: []engine.Position{move.From, move.To},
		})
	}

	if len(turn.Removed) > 0 {
		events = append(events, GameEvent{
			Type:      "lines_removed",
			Message:   fmt.Sprintf("Removed %d stones for %d points", len(turn.Removed), turn.ScoreDelta),
			Timestamp: now,
			Positions: turn.Removed,
		})
	}

	if len(turn.Inserted) > 0 {
		events = append(events, GameEvent{
			Type:      "stones_added",
			Message:   fmt.Sprintf("%d new stones", len(turn.Inserted)),
			Timestamp: now,
			Positions: turn.Inserted,
		})
	}

	if turn.GameOver {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   fmt.Sprintf("Game over with %d points", score),
			Timestamp: now,
		})
	}

	return events
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// RenderBoard returns the text render of a session's game
func (s *gameServiceImpl) RenderBoard(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("session not found: %w", err)
	}
	return engine.Render(sess.Engine.View()), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig validates and saves a game configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}
	if err := engine.ValidateGameConfig(config); err != nil {
		return err
	}
	return s.configs.SaveConfig(configName, config)
}

// TopScores returns the best finished games. Without a result store the
// leaderboard is empty.
func (s *gameServiceImpl) TopScores(ctx context.Context, limit int) ([]*GameResult, error) {
	if s.results == nil {
		return []*GameResult{}, nil
	}
	return s.results.TopScores(limit)
}
