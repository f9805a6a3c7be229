package board

import (
	"fmt"
	"strconv"
	"strings"
)

// MinSize is the smallest supported board dimension.
const MinSize = 2

// Cell is a board position together with the value stored there.
type Cell struct {
	Row, Col int
	Value    int
}

// Grid is an N×N board of tile values stored row-major. 0 means empty.
type Grid struct {
	size  int
	cells []int
}

// NewGrid returns an empty size×size grid.
func NewGrid(size int) (Grid, error) {
	if size < MinSize {
		return Grid{}, fmt.Errorf("%w: size %d is below %d", ErrInvalidConfig, size, MinSize)
	}
	return Grid{size: size, cells: make([]int, size*size)}, nil
}

// GridFromRows builds a grid from a square matrix of tile values.
func GridFromRows(rows [][]int) (Grid, error) {
	g, err := NewGrid(len(rows))
	if err != nil {
		return Grid{}, err
	}
	for r, row := range rows {
		if len(row) != g.size {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, r, len(row), g.size)
		}
		for c, v := range row {
			if !IsTileValue(v) {
				return Grid{}, fmt.Errorf("%w: %d at (%d, %d)", ErrInvalidTile, v, r, c)
			}
			g.cells[r*g.size+c] = v
		}
	}
	return g, nil
}

// IsTileValue reports whether v can appear on a board: 0 or a power of two ≥ 2.
func IsTileValue(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// Size returns the board dimension N.
func (g Grid) Size() int {
	return g.size
}

// Get returns the value at (row, col).
func (g Grid) Get(row, col int) (int, error) {
	if !g.inBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, g.size, g.size)
	}
	return g.cells[row*g.size+col], nil
}

func (g Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Clone returns an independent copy.
func (g Grid) Clone() Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return Grid{size: g.size, cells: cells}
}

// Equal reports whether both grids have the same size and contents.
func (g Grid) Equal(other Grid) bool {
	if g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the grid as a fresh matrix.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.size)
	for r := range g.size {
		rows[r] = make([]int, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// EmptyCells returns all empty positions in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for i, v := range g.cells {
		if v == 0 {
			cells = append(cells, Cell{Row: i / g.size, Col: i % g.size})
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for _, v := range g.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// HasPossibleMerge returns true if two horizontally or vertically adjacent
// tiles hold the same non-zero value. Empty neighbours never count.
func (g Grid) HasPossibleMerge() bool {
	n := g.size
	for r := range n {
		for c := range n {
			v := g.cells[r*n+c]
			if v == 0 {
				continue
			}
			if c < n-1 && g.cells[r*n+c+1] == v {
				return true
			}
			if r < n-1 && g.cells[(r+1)*n+c] == v {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func (g Grid) CanMove() bool {
	return g.HasEmptyCell() || g.HasPossibleMerge()
}

// MaxTile returns the maximum tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, v := range g.cells {
		maxVal = max(maxVal, v)
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (g Grid) Sum() int {
	total := 0
	for _, v := range g.cells {
		total += v
	}
	return total
}

// TileCount returns the number of non-empty cells.
func (g Grid) TileCount() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// String renders the grid as space-separated rows, "." for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range g.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := g.cells[r*g.size+c]
			if v == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}
