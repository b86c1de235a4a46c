package bot

import (
	"errors"
	"math/rand/v2"

	"github.com/wricardo/color-lines/game/engine"
)

// ErrNoMoves is returned when the board offers no stone that can move
var ErrNoMoves = errors.New("no legal moves")

var orthogonal = [...]engine.Position{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}

// RandomBot picks a random source stone, then a random reachable target.
// It is not safe for concurrent use.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot creates a bot with its own random source
func NewRandomBot(seed uint64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

// GetMove implements Player
func (b *RandomBot) GetMove(view engine.GameView) (engine.Move, error) {
	board := view.Board()

	sources := Sources(board)
	if len(sources) == 0 {
		return engine.Move{}, ErrNoMoves
	}
	source := sources[b.rng.IntN(len(sources))]

	targets := Targets(board, source)
	if len(targets) == 0 {
		return engine.Move{}, ErrNoMoves
	}
	target := targets[b.rng.IntN(len(targets))]

	return engine.Move{From: source, To: target}, nil
}

// Sources lists the stones with at least one empty orthogonal neighbour,
// column by column
func Sources(board engine.BoardView) []engine.Position {
	return filter(board, func(x, y int) bool {
		if cell, _ := board.Get(x, y); cell.IsEmpty() {
			return false
		}
		for _, d := range orthogonal {
			nx, ny := x+d.X, y+d.Y
			if !board.Valid(nx, ny) {
				continue
			}
			if cell, _ := board.Get(nx, ny); cell.IsEmpty() {
				return true
			}
		}
		return false
	})
}

// Targets lists the empty cells the stone at source can travel to
func Targets(board engine.BoardView, source engine.Position) []engine.Position {
	return filter(board, func(x, y int) bool {
		if cell, _ := board.Get(x, y); !cell.IsEmpty() {
			return false
		}
		ok, err := board.Reachable(source.X, source.Y, x, y)
		return err == nil && ok
	})
}

func filter(board engine.BoardView, keep func(x, y int) bool) []engine.Position {
	var out []engine.Position
	size := board.Size()
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if keep(x, y) {
				out = append(out, engine.Position{X: x, Y: y})
			}
		}
	}
	return out
}
