package engine

// BoardView is the read-only side of a Board
type BoardView interface {
	Size() int
	Valid(x, y int) bool
	Get(x, y int) (Cell, error)
	Reachable(x1, y1, x2, y2 int) (bool, error)
}

// GameView is what move-decision agents receive instead of the engine
type GameView interface {
	LineSize() int
	Board() BoardView
	Next() []Color
	IsOver() bool
	Score() int
}

// boardView wraps a Board so holders cannot reach Set or Swap
type boardView struct {
	board *Board
}

func (v boardView) Size() int {
	return v.board.Size()
}

func (v boardView) Valid(x, y int) bool {
	return v.board.Valid(x, y)
}

func (v boardView) Get(x, y int) (Cell, error) {
	return v.board.Get(x, y)
}

func (v boardView) Reachable(x1, y1, x2, y2 int) (bool, error) {
	return v.board.Reachable(x1, y1, x2, y2)
}

// gameView wraps a GameEngine so holders cannot call MakeMove
type gameView struct {
	engine *GameEngine
}

func (v gameView) LineSize() int {
	return v.engine.LineSize()
}

func (v gameView) Board() BoardView {
	return v.engine.Board()
}

func (v gameView) Next() []Color {
	return v.engine.Next()
}

func (v gameView) IsOver() bool {
	return v.engine.IsOver()
}

func (v gameView) Score() int {
	return v.engine.Score()
}
