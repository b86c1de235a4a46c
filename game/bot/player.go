package bot

import (
	"context"
	"fmt"

	"github.com/wricardo/color-lines/game/engine"
)

// Player decides the next move from a read-only view of the game
type Player interface {
	GetMove(view engine.GameView) (engine.Move, error)
}

// PlayerFunc adapts a function to the Player interface
type PlayerFunc func(view engine.GameView) (engine.Move, error)

// GetMove calls f(view)
func (f PlayerFunc) GetMove(view engine.GameView) (engine.Move, error) {
	return f(view)
}

// Game is the part of an engine the driver needs
type Game interface {
	View() engine.GameView
	MakeMove(x1, y1, x2, y2 int) (*engine.TurnResult, error)
	IsOver() bool
	Score() int
}

// Play asks player for moves until the game is over and returns the final score
func Play(ctx context.Context, game Game, player Player) (int, error) {
	if _, err := Run(ctx, game, player, 0); err != nil {
		return game.Score(), err
	}
	return game.Score(), nil
}

// Run plays at most maxTurns turns, or until the game ends when maxTurns is
// 0, and returns the number of turns played. The context is checked before
// every turn.
func Run(ctx context.Context, game Game, player Player, maxTurns int) (int, error) {
	turns := 0
	for !game.IsOver() && (maxTurns <= 0 || turns < maxTurns) {
		if err := ctx.Err(); err != nil {
			return turns, err
		}

		move, err := player.GetMove(game.View())
		if err != nil {
			return turns, fmt.Errorf("turn %d: %w", turns+1, err)
		}

		if _, err := game.MakeMove(move.From.X, move.From.Y, move.To.X, move.To.Y); err != nil {
			return turns, fmt.Errorf("turn %d: move (%d,%d)->(%d,%d): %w",
				turns+1, move.From.X, move.From.Y, move.To.X, move.To.Y, err)
		}
		turns++
	}
	return turns, nil
}
