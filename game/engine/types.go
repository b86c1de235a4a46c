package engine

// Color names a stone color from a game's palette
type Color string

const (
	Red     Color = "red"
	Green   Color = "green"
	Blue    Color = "blue"
	Yellow  Color = "yellow"
	Magenta Color = "magenta"
	Cyan    Color = "cyan"
	Brown   Color = "brown"
	White   Color = "white"

	// Validation constants
	MinBoardSize   = 1
	MaxBoardSize   = 50
	MinLineSize    = 1
	MinAppendCount = 1
)

// Letter returns the character used for the color in text renders
func (c Color) Letter() byte {
	if c == "" {
		return '.'
	}
	return c[0]
}

// Cell represents a single board square. The zero value is an empty cell.
type Cell struct {
	Color Color `json:"color,omitempty"`
}

// Stone returns a cell holding a stone of the given color
func Stone(c Color) Cell {
	return Cell{Color: c}
}

// IsEmpty reports whether the cell holds no stone
func (c Cell) IsEmpty() bool {
	return c.Color == ""
}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Move asks for the stone at From to be moved to To
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// NewMove builds a Move from raw coordinates
func NewMove(x1, y1, x2, y2 int) Move {
	return Move{From: Position{X: x1, Y: y1}, To: Position{X: x2, Y: y2}}
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Size        int     `json:"size"`
	LineSize    int     `json:"line_size"`
	AppendCount int     `json:"append_count"`
	Colors      []Color `json:"colors,omitempty"`
	// Seed pins the random source. Nil draws a fresh seed per game.
	Seed *uint64 `json:"seed,omitempty"`
}

// GameState is a serializable snapshot of a game
type GameState struct {
	Grid        [][]Cell           `json:"grid"` // Grid[y][x]
	Size        int                `json:"size"`
	LineSize    int                `json:"line_size"`
	AppendCount int                `json:"append_count"`
	Score       int                `json:"score"`
	BonusScore  int                `json:"bonus_score"`
	Next        []Color            `json:"next"`
	GameOver    bool               `json:"game_over"`
	EmptyCells  int                `json:"empty_cells"`
	ConfigName  string             `json:"config_name"`
	Seed        uint64             `json:"seed"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`
}

// MoveHistoryEntry represents a single accepted move in the game history
type MoveHistoryEntry struct {
	From       Position `json:"from"`
	To         Position `json:"to"`
	Moved      bool     `json:"moved"` // false when no empty path existed
	Removed    int      `json:"removed"`
	ScoreDelta int      `json:"score_delta"`
	Score      int      `json:"score"`
	GameOver   bool     `json:"game_over"`
	Timestamp  int64    `json:"timestamp"`
	MoveNumber int      `json:"move_number"`
}

// Move returns the move recorded by the entry
func (h MoveHistoryEntry) Move() Move {
	return Move{From: h.From, To: h.To}
}

// TurnResult describes what one turn-update did to the board
type TurnResult struct {
	Moved      bool       `json:"moved"`
	Removed    []Position `json:"removed,omitempty"`
	ScoreDelta int        `json:"score_delta"`
	Inserted   []Position `json:"inserted,omitempty"`
	GameOver   bool       `json:"game_over"`
}
