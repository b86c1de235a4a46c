package engine

// neighbours lists the 8 king-move offsets used for stone travel
var neighbours = [...]Position{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Board is a size x size grid of cells addressed by (x, y)
type Board struct {
	size  int
	cells []Cell
}

// NewBoard creates an empty board
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// Size returns the side length of the board
func (b *Board) Size() int {
	return b.size
}

// Valid reports whether (x, y) lies on the board
func (b *Board) Valid(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// Get returns the cell at (x, y)
func (b *Board) Get(x, y int) (Cell, error) {
	if err := b.check(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(x, y)], nil
}

// Set overwrites the cell at (x, y). Occupancy is not checked.
func (b *Board) Set(x, y int, cell Cell) error {
	if err := b.check(x, y); err != nil {
		return err
	}
	b.cells[b.index(x, y)] = cell
	return nil
}

// Swap exchanges the contents of two cells
func (b *Board) Swap(x1, y1, x2, y2 int) error {
	if err := b.check(x1, y1); err != nil {
		return err
	}
	if err := b.check(x2, y2); err != nil {
		return err
	}
	i, j := b.index(x1, y1), b.index(x2, y2)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	return nil
}

// Reachable reports whether a path of empty cells joins (x1, y1) to
// (x2, y2) using 8-directional steps.
//
// The search always starts from (x1, y1) whatever that cell holds, since
// it is normally the stone about to move. Every other cell on the path,
// the target included, must be empty.
func (b *Board) Reachable(x1, y1, x2, y2 int) (bool, error) {
	if err := b.check(x1, y1); err != nil {
		return false, err
	}
	if err := b.check(x2, y2); err != nil {
		return false, err
	}
	if x1 == x2 && y1 == y2 {
		return true, nil
	}

	visited := make([]bool, len(b.cells))
	visited[b.index(x1, y1)] = true
	queue := []Position{{X: x1, Y: y1}}

	// Each cell is expanded at most once, so size² steps bound the search.
	for steps := 0; len(queue) > 0 && steps < len(b.cells); steps++ {
		current := queue[0]
		queue = queue[1:]

		for _, d := range neighbours {
			nx, ny := current.X+d.X, current.Y+d.Y
			if !b.Valid(nx, ny) {
				continue
			}
			i := b.index(nx, ny)
			if visited[i] || !b.cells[i].IsEmpty() {
				continue
			}
			if nx == x2 && ny == y2 {
				return true, nil
			}
			visited[i] = true
			queue = append(queue, Position{X: nx, Y: ny})
		}
	}

	return false, nil
}

// EmptyCells returns the coordinates of every empty cell, column by column
func (b *Board) EmptyCells() []Position {
	var empty []Position
	for x := 0; x < b.size; x++ {
		for y := 0; y < b.size; y++ {
			if b.cells[b.index(x, y)].IsEmpty() {
				empty = append(empty, Position{X: x, Y: y})
			}
		}
	}
	return empty
}

// Rows copies the board into Rows()[y][x] form
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.size)
	for y := range rows {
		rows[y] = make([]Cell, b.size)
		for x := 0; x < b.size; x++ {
			rows[y][x] = b.cells[b.index(x, y)]
		}
	}
	return rows
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// run walks from (x, y) along (dx, dy) and collects the consecutive cells
// holding color
func (b *Board) run(x, y, dx, dy int, color Color) []Position {
	var stones []Position
	for b.Valid(x, y) && b.cells[b.index(x, y)].Color == color {
		stones = append(stones, Position{X: x, Y: y})
		x += dx
		y += dy
	}
	return stones
}

func (b *Board) check(x, y int) error {
	if !b.Valid(x, y) {
		return &CoordinateError{X: x, Y: y, Size: b.size}
	}
	return nil
}

func (b *Board) index(x, y int) int {
	return y*b.size + x
}
