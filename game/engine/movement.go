package engine

import (
	"slices"
	"time"
)

// lineAxes are the four scan directions. Walking forward along each covers
// every row, column and diagonal once.
var lineAxes = [...]Position{{-1, 1}, {0, 1}, {1, 1}, {1, 0}}

// pcgStream separates the two PCG state words derived from one seed
const pcgStream = 0x9e3779b97f4a7c15

// MakeMove moves the stone at (x1, y1) to the empty cell (x2, y2) and runs
// the rest of the turn.
//
// When no empty path joins the two cells the stone stays put, yet the turn
// still runs: lines are checked, new stones are dropped and the preview is
// redrawn. There is no "illegal move" error.
func (e *GameEngine) MakeMove(x1, y1, x2, y2 int) (*TurnResult, error) {
	if e.over {
		return nil, ErrGameOver
	}
	if x1 == x2 && y1 == y2 {
		return nil, ErrInvalidCoordinates
	}

	source, err := e.board.Get(x1, y1)
	if err != nil {
		return nil, err
	}
	if source.IsEmpty() {
		return nil, ErrEmptySource
	}

	target, err := e.board.Get(x2, y2)
	if err != nil {
		return nil, err
	}
	if !target.IsEmpty() {
		return nil, ErrOccupiedTarget
	}

	// Bounds were checked above, so Reachable and Swap cannot fail here.
	moved, _ := e.board.Reachable(x1, y1, x2, y2)
	if moved {
		_ = e.board.Swap(x1, y1, x2, y2)
	}

	result := e.update()
	result.Moved = moved

	e.history = append(e.history, MoveHistoryEntry{
		From:       Position{X: x1, Y: y1},
		To:         Position{X: x2, Y: y2},
		Moved:      moved,
		Removed:    len(result.Removed),
		ScoreDelta: result.ScoreDelta,
		Score:      e.score,
		GameOver:   e.over,
		Timestamp:  time.Now().Unix(),
		MoveNumber: len(e.history) + 1,
	})

	return result, nil
}

// update runs the turn sequence: remove lines, score them, insert the
// pending stones and draw the next preview
func (e *GameEngine) update() *TurnResult {
	removed := e.removeStones()
	delta := StonesCost(len(removed), e.bonusScore)
	e.score += delta
	inserted := e.insertStones()
	e.createNext()

	return &TurnResult{
		Removed:    removed,
		ScoreDelta: delta,
		Inserted:   inserted,
		GameOver:   e.over,
	}
}

// removeStones clears every stone that belongs to a run of at least
// lineSize along one of the scan axes and returns their positions
func (e *GameEngine) removeStones() []Position {
	size := e.board.Size()
	marked := make(map[Position]bool)

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			cell := e.board.cells[e.board.index(x, y)]
			if cell.IsEmpty() {
				continue
			}
			for _, axis := range lineAxes {
				stones := e.board.run(x, y, axis.X, axis.Y, cell.Color)
				if len(stones) >= e.lineSize {
					for _, p := range stones {
						marked[p] = true
					}
				}
			}
		}
	}

	removed := make([]Position, 0, len(marked))
	for p := range marked {
		removed = append(removed, p)
	}
	slices.SortFunc(removed, comparePositions)

	for _, p := range removed {
		e.board.cells[e.board.index(p.X, p.Y)] = Cell{}
	}

	return removed
}

// insertStones drops the pending stones on random empty cells. The game is
// over once the empties cannot exceed one batch; the batch is still placed.
func (e *GameEngine) insertStones() []Position {
	empty := e.board.EmptyCells()
	e.over = len(empty) <= e.appendCount

	e.rng.Shuffle(len(empty), func(i, j int) {
		empty[i], empty[j] = empty[j], empty[i]
	})

	n := min(len(empty), len(e.next))
	for i := 0; i < n; i++ {
		p := empty[i]
		e.board.cells[e.board.index(p.X, p.Y)] = Stone(e.next[i])
	}

	return empty[:n]
}

// createNext draws appendCount colors uniformly, with replacement
func (e *GameEngine) createNext() {
	e.next = make([]Color, e.appendCount)
	for i := range e.next {
		e.next[i] = e.palette[e.rng.IntN(len(e.palette))]
	}
}
