package engine

import (
	"fmt"
	"strings"
)

// Render draws a game as text: one line per row, '.' for an empty cell or
// the first letter of the stone's color, followed by the next stones, the
// score and, once finished, "Game is over".
func Render(view GameView) string {
	var sb strings.Builder

	board := view.Board()
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell, _ := board.Get(x, y)
			sb.WriteByte(cell.Color.Letter())
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "Next  : %s\n", Letters(view.Next()))
	fmt.Fprintf(&sb, "Score : %d\n", view.Score())
	if view.IsOver() {
		sb.WriteString("Game is over\n")
	}

	return sb.String()
}

// RenderState draws a GameState snapshot in the same format as Render
func RenderState(state *GameState) string {
	var sb strings.Builder

	for _, row := range state.Grid {
		for _, cell := range row {
			sb.WriteByte(cell.Color.Letter())
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "Next  : %s\n", Letters(state.Next))
	fmt.Fprintf(&sb, "Score : %d\n", state.Score)
	if state.GameOver {
		sb.WriteString("Game is over\n")
	}

	return sb.String()
}

// Letters joins the render letters of a color sequence
func Letters(colors []Color) string {
	b := make([]byte, len(colors))
	for i, c := range colors {
		b[i] = c.Letter()
	}
	return string(b)
}
