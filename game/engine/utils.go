package engine

import "cmp"

// StonesCost returns the score for removing n stones in one turn:
// 2n² - 20n + 60 + bonus, or 0 when nothing was removed. Small clears can
// score negative; the curve rewards long simultaneous clears.
func StonesCost(n, bonus int) int {
	if n == 0 {
		return 0
	}
	return 2*n*n - 20*n + 60 + bonus
}

// CountStones counts the occupied cells of a board view
func CountStones(board BoardView) int {
	count := 0
	size := board.Size()
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if cell, err := board.Get(x, y); err == nil && !cell.IsEmpty() {
				count++
			}
		}
	}
	return count
}

// CountColor counts the stones of one color in a grid snapshot
func CountColor(grid [][]Cell, color Color) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell.Color == color {
				count++
			}
		}
	}
	return count
}

func comparePositions(a, b Position) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}
