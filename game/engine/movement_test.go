package engine

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
)

// hasLine reports whether any stone belongs to a run of at least lineSize
func hasLine(b *Board, lineSize int) bool {
	for x := 0; x < b.Size(); x++ {
		for y := 0; y < b.Size(); y++ {
			cell := b.cells[b.index(x, y)]
			if cell.IsEmpty() {
				continue
			}
			for _, axis := range lineAxes {
				if len(b.run(x, y, axis.X, axis.Y, cell.Color)) >= lineSize {
					return true
				}
			}
		}
	}
	return false
}

func TestStonesCost(t *testing.T) {
	tests := []struct {
		n, bonus, expected int
	}{
		{0, 0, 0},
		{0, 7, 0},
		{1, 0, 42},
		{4, 0, 12},
		{5, 0, 10},
		{6, 0, 12},
		{7, 0, 18},
		{8, 0, 28},
		{9, 0, 42},
		{10, 0, 60},
		{5, 3, 13},
	}

	for _, tt := range tests {
		if got := StonesCost(tt.n, tt.bonus); got != tt.expected {
			t.Errorf("StonesCost(%d, %d) = %d, want %d", tt.n, tt.bonus, got, tt.expected)
		}
	}
}

func TestRemoveStones_Lines(t *testing.T) {
	tests := []struct {
		name     string
		stones   []Position
		expected int
	}{
		{"horizontal", []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, 5},
		{"vertical", []Position{{8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 6}}, 5},
		{"diagonal", []Position{{2, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 6}}, 5},
		{"anti-diagonal", []Position{{4, 0}, {3, 1}, {2, 2}, {1, 3}, {0, 4}}, 5},
		{"six in a row", []Position{{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8}}, 6},
		{"four is not enough", []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, 0},
		{"cross shares a cell", []Position{
			{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0},
			{0, 1}, {0, 2}, {0, 3}, {0, 4},
		}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 9, 5, 3)
			resetBoard(e)
			for _, p := range tt.stones {
				put(t, e, p.X, p.Y, 'r')
			}

			removed := e.removeStones()
			if len(removed) != tt.expected {
				t.Fatalf("Expected %d removed, got %d", tt.expected, len(removed))
			}
			for _, p := range removed {
				if cell, _ := e.board.Get(p.X, p.Y); !cell.IsEmpty() {
					t.Errorf("Expected (%d,%d) cleared", p.X, p.Y)
				}
			}
			if got := CountStones(e.Board()); got != len(tt.stones)-tt.expected {
				t.Errorf("Expected %d stones left, got %d", len(tt.stones)-tt.expected, got)
			}
		})
	}
}

func TestRemoveStones_ColorsBreakRuns(t *testing.T) {
	e := newTestEngine(t, 9, 5, 3)
	loadRows(t, e,
		"rrgrr....",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		"bbbbbrrrr",
	)

	removed := e.removeStones()
	expected := []Position{{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}}
	if !reflect.DeepEqual(removed, expected) {
		t.Errorf("Expected %v removed, got %v", expected, removed)
	}
}

func TestRemoveStones_NoLineSurvives(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	colors := []Color{Red, Green}

	for round := 0; round < 200; round++ {
		e := newTestEngine(t, 7, 4, 3)
		resetBoard(e)
		for i := range e.board.cells {
			if rng.IntN(3) > 0 {
				e.board.cells[i] = Stone(colors[rng.IntN(len(colors))])
			}
		}

		e.removeStones()
		if hasLine(e.board, e.lineSize) {
			t.Fatalf("Round %d: a line survived removal\n%s", round, e)
		}
	}
}

func TestMakeMove_Preconditions(t *testing.T) {
	e := newTestEngine(t, 9, 5, 3)
	resetBoard(e)
	put(t, e, 0, 0, 'r')
	put(t, e, 1, 1, 'g')

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		expected       error
	}{
		{"same cell", 0, 0, 0, 0, ErrInvalidCoordinates},
		{"same empty cell", 5, 5, 5, 5, ErrInvalidCoordinates},
		{"source out of range", -1, 0, 2, 2, ErrCoordinate},
		{"target out of range", 0, 0, 9, 0, ErrCoordinate},
		{"empty source", 4, 4, 5, 5, ErrEmptySource},
		{"occupied target", 0, 0, 1, 1, ErrOccupiedTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.MakeMove(tt.x1, tt.y1, tt.x2, tt.y2)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
			if !IsMoveError(err) {
				t.Errorf("Expected IsMoveError for %v", err)
			}
		})
	}

	if len(e.GetMoveHistory()) != 0 {
		t.Error("Rejected moves must not be recorded")
	}
	if got := CountStones(e.Board()); got != 2 {
		t.Errorf("Rejected moves must not run a turn, found %d stones", got)
	}

	e.over = true
	if _, err := e.MakeMove(0, 0, 5, 5); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if IsMoveError(ErrGameOver) {
		t.Error("ErrGameOver is not a move error")
	}
}

func TestMakeMove_MovesReachableStone(t *testing.T) {
	e := newTestEngine(t, 9, 5, 3)
	resetBoard(e)
	put(t, e, 0, 0, 'b')

	result, err := e.MakeMove(0, 0, 8, 8)
	if err != nil {
		t.Fatalf("MakeMove failed: %v", err)
	}

	if !result.Moved {
		t.Error("Expected the stone to move")
	}
	if cell, _ := e.board.Get(8, 8); cell.Color != Blue {
		t.Errorf("Expected blue at (8,8), got %q", cell.Color)
	}
	if len(result.Inserted) != 3 {
		t.Errorf("Expected 3 inserted stones, got %d", len(result.Inserted))
	}
	if got := CountStones(e.Board()); got != 4 {
		t.Errorf("Expected 4 stones, got %d", got)
	}

	last := e.GetLastMove()
	if last == nil {
		t.Fatal("Expected a history entry")
	}
	if !last.Moved || last.MoveNumber != 1 || last.From != (Position{0, 0}) || last.To != (Position{8, 8}) {
		t.Errorf("Unexpected history entry: %+v", last)
	}
}

func TestMakeMove_UnreachableStillRunsTurn(t *testing.T) {
	e := newTestEngine(t, 9, 5, 3)
	resetBoard(e)
	put(t, e, 0, 0, 'b')
	for y := 0; y < 9; y++ {
		if y%2 == 0 {
			put(t, e, 1, y, 'r')
		} else {
			put(t, e, 1, y, 'g')
		}
	}
	next := e.Next()

	result, err := e.MakeMove(0, 0, 8, 8)
	if err != nil {
		t.Fatalf("Expected no error for an unreachable target, got %v", err)
	}

	if result.Moved {
		t.Error("Expected the stone to stay")
	}
	if cell, _ := e.board.Get(0, 0); cell.Color != Blue {
		t.Errorf("Expected blue to stay at (0,0), got %q", cell.Color)
	}
	if got := CountStones(e.Board()); got != 13 {
		t.Errorf("Expected the turn to insert 3 stones (13 total), got %d", got)
	}
	for i, p := range result.Inserted {
		if cell, _ := e.board.Get(p.X, p.Y); cell.Color != next[i] {
			t.Errorf("Inserted stone %d at %v is %q, want %q", i, p, cell.Color, next[i])
		}
	}

	history := e.GetMoveHistory()
	if len(history) != 1 || history[0].Moved {
		t.Errorf("Expected one recorded non-move, got %+v", history)
	}
}

func TestMakeMove_ScoresLine(t *testing.T) {
	e := newTestEngine(t, 9, 5, 3)
	resetBoard(e)
	for x := 0; x < 4; x++ {
		put(t, e, x, 0, 'r')
	}
	put(t, e, 4, 2, 'r')

	result, err := e.MakeMove(4, 2, 4, 0)
	if err != nil {
		t.Fatalf("MakeMove failed: %v", err)
	}

	expected := []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	if !reflect.DeepEqual(result.Removed, expected) {
		t.Errorf("Expected %v removed, got %v", expected, result.Removed)
	}
	if result.ScoreDelta != 10 || e.Score() != 10 {
		t.Errorf("Expected delta and score of 10, got %d and %d", result.ScoreDelta, e.Score())
	}

	last := e.GetLastMove()
	if last.Removed != 5 || last.ScoreDelta != 10 || last.Score != 10 {
		t.Errorf("Unexpected history entry: %+v", last)
	}
}

func TestUpdate_GameOverThreshold(t *testing.T) {
	tests := []struct {
		holes        int
		expectedOver bool
		inserted     int
	}{
		{6, false, 3},
		{4, false, 3},
		{3, true, 3},
		{2, true, 2},
		{0, true, 0},
	}

	for _, tt := range tests {
		e := newTestEngine(t, 5, 5, 3)
		loadRows(t, e, patternRows(5, tt.holes)...)

		result := e.update()
		if e.IsOver() != tt.expectedOver || result.GameOver != tt.expectedOver {
			t.Errorf("%d holes: expected over=%v, got %v", tt.holes, tt.expectedOver, e.IsOver())
		}
		if len(result.Inserted) != tt.inserted {
			t.Errorf("%d holes: expected %d inserted, got %d", tt.holes, tt.inserted, len(result.Inserted))
		}
		if len(e.Next()) != 3 {
			t.Errorf("%d holes: expected a fresh preview of 3, got %d", tt.holes, len(e.Next()))
		}
	}
}

func TestMakeMove_EndsGame(t *testing.T) {
	e := newTestEngine(t, 5, 5, 3)
	loadRows(t, e, patternRows(5, 3)...)

	result, err := e.MakeMove(4, 3, 4, 4)
	if err != nil {
		t.Fatalf("MakeMove failed: %v", err)
	}
	if !result.Moved || !result.GameOver || !e.IsOver() {
		t.Fatalf("Expected the move to land and end the game: %+v", result)
	}
	if !e.GetLastMove().GameOver {
		t.Error("Expected the last history entry to record the end")
	}

	if _, err := e.MakeMove(0, 0, 1, 1); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if !e.IsOver() {
		t.Error("Game over must stick")
	}
}
