package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/color-lines/game/engine"
)

func seedOf(v uint64) *uint64 {
	return &v
}

func newGame(t *testing.T, size, lineSize, appendCount int, seed uint64) *engine.GameEngine {
	t.Helper()
	game, err := engine.New(size, lineSize, appendCount, seedOf(seed))
	require.NoError(t, err)
	return game
}

func TestRandomBot_MovesAreLegal(t *testing.T) {
	game := newGame(t, 9, 5, 3, 11)
	player := NewRandomBot(5)

	for turn := 0; turn < 200 && !game.IsOver(); turn++ {
		view := game.View()
		move, err := player.GetMove(view)
		require.NoError(t, err)

		board := view.Board()
		from, err := board.Get(move.From.X, move.From.Y)
		require.NoError(t, err)
		assert.False(t, from.IsEmpty(), "source must hold a stone")

		to, err := board.Get(move.To.X, move.To.Y)
		require.NoError(t, err)
		assert.True(t, to.IsEmpty(), "target must be empty")

		ok, err := board.Reachable(move.From.X, move.From.Y, move.To.X, move.To.Y)
		require.NoError(t, err)
		assert.True(t, ok, "target must be reachable")

		result, err := game.MakeMove(move.From.X, move.From.Y, move.To.X, move.To.Y)
		require.NoError(t, err)
		assert.True(t, result.Moved, "a bot move always lands")
	}
}

func TestRandomBot_SameSeedSameMoves(t *testing.T) {
	game := newGame(t, 9, 5, 3, 3)
	a, b := NewRandomBot(8), NewRandomBot(8)

	for i := 0; i < 10; i++ {
		ma, err := a.GetMove(game.View())
		require.NoError(t, err)
		mb, err := b.GetMove(game.View())
		require.NoError(t, err)
		assert.Equal(t, ma, mb)
	}
}

func TestRandomBot_NoMoves(t *testing.T) {
	// A board without stones has no sources.
	_, err := NewRandomBot(1).GetMove(emptyView{size: 3})
	assert.ErrorIs(t, err, ErrNoMoves)
}

func TestSourcesAndTargets(t *testing.T) {
	game := newGame(t, 5, 5, 1, 9)
	sources := Sources(game.Board())
	require.Len(t, sources, 1, "one stone on the opening board")

	targets := Targets(game.Board(), sources[0])
	assert.Len(t, targets, 24, "every empty cell is reachable on an open board")
	for _, p := range targets {
		assert.NotEqual(t, sources[0], p)
	}
}

func TestPlay_UntilOver(t *testing.T) {
	game := newGame(t, 9, 5, 3, 2024)

	score, err := Play(context.Background(), game, NewRandomBot(7))
	require.NoError(t, err)
	assert.True(t, game.IsOver())
	assert.Equal(t, game.Score(), score)
	assert.NotEmpty(t, game.GetMoveHistory())
}

func TestPlay_SmallBoard(t *testing.T) {
	game := newGame(t, 3, 3, 1, 4)

	_, err := Play(context.Background(), game, NewRandomBot(4))
	require.NoError(t, err)
	assert.True(t, game.IsOver())
}

func TestRun_MaxTurns(t *testing.T) {
	game := newGame(t, 9, 5, 3, 1)

	turns, err := Run(context.Background(), game, NewRandomBot(1), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, turns)
	assert.Len(t, game.GetMoveHistory(), 5)
}

func TestRun_ContextCancelled(t *testing.T) {
	game := newGame(t, 9, 5, 3, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	turns, err := Run(ctx, game, NewRandomBot(1), 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, turns)
}

func TestRun_PlayerError(t *testing.T) {
	game := newGame(t, 9, 5, 3, 1)
	boom := errors.New("boom")

	_, err := Run(context.Background(), game, PlayerFunc(func(engine.GameView) (engine.Move, error) {
		return engine.Move{}, boom
	}), 0)
	assert.ErrorIs(t, err, boom)
}

func TestRun_BadMoveIsReported(t *testing.T) {
	game := newGame(t, 9, 5, 3, 1)

	_, err := Run(context.Background(), game, PlayerFunc(func(engine.GameView) (engine.Move, error) {
		return engine.NewMove(0, 0, 0, 0), nil
	}), 0)
	assert.ErrorIs(t, err, engine.ErrInvalidCoordinates)
}

// emptyView is a GameView over a board with no stones
type emptyView struct {
	size int
}

func (v emptyView) LineSize() int           { return 3 }
func (v emptyView) Board() engine.BoardView { return engine.NewBoard(v.size) }
func (v emptyView) Next() []engine.Color    { return nil }
func (v emptyView) IsOver() bool            { return false }
func (v emptyView) Score() int              { return 0 }
