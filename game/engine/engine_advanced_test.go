package engine

import (
	"errors"
	"reflect"
	"testing"
)

func playFirstMoves(t *testing.T, e *GameEngine, turns int) {
	t.Helper()
	for i := 0; i < turns && !e.IsOver(); i++ {
		move, ok := firstMove(e.View())
		if !ok {
			t.Fatalf("No move available on turn %d", i)
		}
		if _, err := e.MakeMove(move.From.X, move.From.Y, move.To.X, move.To.Y); err != nil {
			t.Fatalf("MakeMove failed on turn %d: %v", i, err)
		}
	}
}

func TestEngine_SameSeedSameGame(t *testing.T) {
	a, err := NewEngineWithSeed(DefaultConfig(), 2024)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	b, err := NewEngineWithSeed(DefaultConfig(), 2024)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	for turn := 0; turn < 300 && !a.IsOver(); turn++ {
		if !reflect.DeepEqual(a.board.cells, b.board.cells) {
			t.Fatalf("Boards diverged before turn %d", turn)
		}
		if !reflect.DeepEqual(a.Next(), b.Next()) {
			t.Fatalf("Previews diverged before turn %d", turn)
		}

		move, ok := firstMove(a.View())
		if !ok {
			t.Fatalf("No move available on turn %d", turn)
		}
		ra, errA := a.MakeMove(move.From.X, move.From.Y, move.To.X, move.To.Y)
		rb, errB := b.MakeMove(move.From.X, move.From.Y, move.To.X, move.To.Y)
		if errA != nil || errB != nil {
			t.Fatalf("MakeMove failed: %v / %v", errA, errB)
		}
		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("Turn %d results differ: %+v vs %+v", turn, ra, rb)
		}
	}

	if a.Score() != b.Score() || a.IsOver() != b.IsOver() {
		t.Error("Expected identical final score and status")
	}
}

func TestEngine_OverIsMonotonic(t *testing.T) {
	e := newTestEngine(t, 5, 3, 2)

	wasOver := false
	for turn := 0; turn < 1000; turn++ {
		if wasOver && !e.IsOver() {
			t.Fatalf("Game came back to life on turn %d", turn)
		}
		wasOver = e.IsOver()
		if wasOver {
			break
		}
		move, ok := firstMove(e.View())
		if !ok {
			t.Fatalf("No move available on turn %d", turn)
		}
		if _, err := e.MakeMove(move.From.X, move.From.Y, move.To.X, move.To.Y); err != nil {
			t.Fatalf("MakeMove failed: %v", err)
		}
	}

	if !wasOver {
		t.Fatal("Expected the small game to end")
	}
	if _, err := e.MakeMove(0, 0, 1, 0); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if !e.IsOver() {
		t.Error("Expected the game to stay over")
	}
}

func TestReplay(t *testing.T) {
	original, err := NewEngineWithSeed(DefaultConfig(), 77)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	playFirstMoves(t, original, 40)

	replayed, err := Replay(DefaultConfig(), 77, original.Moves())
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if !reflect.DeepEqual(original.GetState().Grid, replayed.GetState().Grid) {
		t.Error("Replayed board differs from the original")
	}
	if original.Score() != replayed.Score() {
		t.Errorf("Expected score %d, got %d", original.Score(), replayed.Score())
	}
	if !reflect.DeepEqual(original.Next(), replayed.Next()) {
		t.Error("Replayed preview differs from the original")
	}
	if len(replayed.GetMoveHistory()) != len(original.GetMoveHistory()) {
		t.Errorf("Expected %d history entries, got %d", len(original.GetMoveHistory()), len(replayed.GetMoveHistory()))
	}
}

func TestReplay_InvalidMove(t *testing.T) {
	moves := []Move{NewMove(3, 3, 3, 3)}

	_, err := Replay(DefaultConfig(), 1, moves)
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("Expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestReplay_InvalidConfig(t *testing.T) {
	config := &GameConfig{Name: "bad", Size: 3, LineSize: 4, AppendCount: 1}

	if _, err := Replay(config, 1, nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration, got %v", err)
	}
}

func TestEngine_MovesMatchHistory(t *testing.T) {
	e := newTestEngine(t, 9, 5, 3)
	playFirstMoves(t, e, 10)

	moves := e.Moves()
	history := e.GetMoveHistory()
	if len(moves) != len(history) {
		t.Fatalf("Expected %d moves, got %d", len(history), len(moves))
	}
	for i := range moves {
		if moves[i] != history[i].Move() {
			t.Errorf("Move %d = %+v, history says %+v", i, moves[i], history[i].Move())
		}
		if history[i].MoveNumber != i+1 {
			t.Errorf("Entry %d has move number %d", i, history[i].MoveNumber)
		}
	}

	state := e.GetState()
	if state.TotalMoves != len(history) || len(state.MoveHistory) != len(history) {
		t.Errorf("Snapshot history size mismatch: %d/%d", state.TotalMoves, len(state.MoveHistory))
	}
}

func TestEngine_HistoryIsCopied(t *testing.T) {
	e, err := NewEngineWithSeed(DefaultConfig(), 12)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	playFirstMoves(t, e, 3)
	want := e.Moves()

	history := e.GetMoveHistory()
	history[0].From = Position{X: -1, Y: -1}
	history[0].Score = 999
	e.GetLastMove().Score = 999

	if !reflect.DeepEqual(e.Moves(), want) {
		t.Error("Changing the returned history changed the engine's moves")
	}
	if e.GetMoveHistory()[0].Score == 999 || e.GetLastMove().Score == 999 {
		t.Error("Changing the returned history changed the engine's history")
	}
}
