package board

import "fmt"

// lineIndices returns the flat cell indices of line i, ordered so that tiles
// slide toward index 0. Right and Down lines come out reversed.
func (g Grid) lineIndices(dir Direction, i int) []int {
	n := g.size
	idx := make([]int, n)
	for k := range n {
		switch dir {
		case DirLeft:
			idx[k] = i*n + k
		case DirRight:
			idx[k] = i*n + (n - 1 - k)
		case DirUp:
			idx[k] = k*n + i
		case DirDown:
			idx[k] = (n-1-k)*n + i
		}
	}
	return idx
}

// compact moves non-zero values to the front, keeping their order.
func compact(line []int) {
	w := 0
	for _, v := range line {
		if v != 0 {
			line[w] = v
			w++
		}
	}
	for ; w < len(line); w++ {
		line[w] = 0
	}
}

// slideLine slides and merges a line toward index 0 in place.
// Returns the score gained from merges.
func slideLine(line []int) (score int) {
	compact(line)

	// One slot per position; a merged tile never merges again this move.
	merged := make([]bool, len(line))
	for i := 0; i < len(line)-1; i++ {
		if line[i] == 0 || merged[i] || merged[i+1] {
			continue
		}
		if line[i] == line[i+1] {
			line[i] *= 2
			line[i+1] = 0
			merged[i] = true
			score += line[i]
			i++
		}
	}

	compact(line)
	return score
}

// Slide performs a move in the given direction.
// Returns the new grid, score gained, and whether the grid changed.
// The input grid is not modified.
func Slide(g Grid, dir Direction) (Grid, int, bool, error) {
	if !dir.Valid() {
		return g, 0, false, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	out := g.Clone()
	line := make([]int, g.size)
	total := 0
	changed := false

	for i := range g.size {
		idx := g.lineIndices(dir, i)
		for k, p := range idx {
			line[k] = out.cells[p]
		}

		total += slideLine(line)

		for k, p := range idx {
			if out.cells[p] != line[k] {
				changed = true
			}
			out.cells[p] = line[k]
		}
	}

	return out, total, changed, nil
}
