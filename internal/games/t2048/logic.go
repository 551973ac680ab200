package t2048

// MoveOutcome is the result of sliding a line or a whole board.
type MoveOutcome struct {
	Changed     bool
	ScoreGained int
	MergedMax   int // Largest tile created by a merge, 0 if nothing merged
}

// absorb folds the outcome of one line into a board-level outcome.
func (o *MoveOutcome) absorb(line MoveOutcome) {
	o.Changed = o.Changed || line.Changed
	o.ScoreGained += line.ScoreGained
	if line.MergedMax > o.MergedMax {
		o.MergedMax = line.MergedMax
	}
}

// MergeLine slides and merges one line toward index 0.
// The input is not modified; the returned slice has the same length.
func MergeLine(line []int) ([]int, MoveOutcome) {
	var out MoveOutcome
	result := make([]int, len(line))

	// Dense prefix of non-zero values
	cnt := 0
	for _, v := range line {
		if v != 0 {
			result[cnt] = v
			cnt++
		}
	}

	moved := false
	for i := range line {
		if line[i] != result[i] {
			moved = true
			break
		}
	}

	// Single left-to-right pass. After a merge at i the loop moves on to i+1,
	// so the merged cell at i-1 is never compared again.
	merged := false
	for i := 1; i < cnt; i++ {
		if result[i-1] != result[i] {
			continue
		}
		result[i-1] += result[i]
		out.ScoreGained += result[i-1]
		merged = true
		if result[i-1] > out.MergedMax {
			out.MergedMax = result[i-1]
		}

		copy(result[i:cnt-1], result[i+1:cnt])
		cnt--
		result[cnt] = 0
	}

	out.Changed = moved || merged
	return result, out
}

// Action applies moves to a flat board of column*column cells.
// The traversal tables depend only on the column and are rebuilt on Resize.
type Action struct {
	column int
	lines  [directionCount][][]int
}

// NewAction creates an Action for boards of the given column.
func NewAction(column int) *Action {
	a := &Action{}
	a.Resize(column)
	return a
}

// Column returns the board dimension the tables were built for.
func (a *Action) Column() int {
	return a.column
}

// Resize rebuilds the traversal tables if the column changed.
func (a *Action) Resize(column int) {
	if column == a.column && a.lines[DirLeft] != nil {
		return
	}
	a.column = column
	for _, dir := range Directions() {
		a.lines[dir] = buildLines(column, dir)
	}
}

// buildLines returns, for each of the column lines, the board indices it
// touches ordered from the edge the tiles move toward.
//
//	left:  0 1 2 3 | right: 3 2 1 0 | up: 0 4 8 12 | down: 12 8 4 0
func buildLines(column int, dir Direction) [][]int {
	lines := make([][]int, column)
	for r := range column {
		lines[r] = make([]int, column)
		for c := range column {
			switch dir {
			case DirLeft:
				lines[r][c] = r*column + c
			case DirRight:
				lines[r][c] = (r+1)*column - (c + 1)
			case DirUp:
				lines[r][c] = c*column + r
			case DirDown:
				lines[r][c] = (column-c-1)*column + r
			}
		}
	}
	return lines
}

// Lines returns a copy of the traversal table for a direction.
func (a *Action) Lines(dir Direction) [][]int {
	if !dir.Valid() {
		return nil
	}
	out := make([][]int, len(a.lines[dir]))
	for i, idx := range a.lines[dir] {
		out[i] = append([]int(nil), idx...)
	}
	return out
}

// Execute moves every line of board in place.
// The board must hold exactly column*column cells.
func (a *Action) Execute(board []int, dir Direction) MoveOutcome {
	var result MoveOutcome
	if !dir.Valid() {
		return result
	}

	line := make([]int, a.column)
	for _, idx := range a.lines[dir] {
		for i, cell := range idx {
			line[i] = board[cell]
		}

		merged, outcome := MergeLine(line)
		for i, cell := range idx {
			board[cell] = merged[i]
		}
		result.absorb(outcome)
	}

	return result
}

// EmptyCells returns the indices of all empty cells in board order.
func EmptyCells(board []int) []int {
	var cells []int
	for i, v := range board {
		if v == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board []int) bool {
	for _, v := range board {
		if v == 0 {
			return true
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board []int) int {
	maxVal := 0
	for _, v := range board {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}
