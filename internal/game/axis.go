package game

// Diagonal selects one of the two board diagonals.
type Diagonal int

const (
	// Major runs from the top-left to the bottom-right corner.
	Major Diagonal = iota
	// Minor (anti-diagonal) runs from the top-right to the bottom-left corner.
	Minor
)

func (d Diagonal) String() string {
	if d == Minor {
		return "minor"
	}
	return "major"
}

// Row returns a copy of row n, counted from the top. An empty slice is
// returned when n is off the board.
func (b *Board) Row(n int) []PlayerMark {
	if n < 0 || n >= b.width {
		return []PlayerMark{}
	}
	out := make([]PlayerMark, b.width)
	copy(out, b.cells[n*b.width:(n+1)*b.width])
	return out
}

// Column returns a copy of column n, counted from the left. An empty slice is
// returned when n is off the board.
func (b *Board) Column(n int) []PlayerMark {
	if n < 0 || n >= b.width {
		return []PlayerMark{}
	}
	out := make([]PlayerMark, b.width)
	for r := range b.width {
		out[r] = b.cells[r*b.width+n]
	}
	return out
}

// Diagonal returns a copy of the requested diagonal.
func (b *Board) Diagonal(d Diagonal) []PlayerMark {
	out := make([]PlayerMark, b.width)
	for r := range b.width {
		col := r
		if d == Minor {
			col = b.width - 1 - r
		}
		out[r] = b.cells[IndexOf(r, col, b.width)]
	}
	return out
}

// Rows returns every row from top to bottom.
func (b *Board) Rows() [][]PlayerMark {
	out := make([][]PlayerMark, b.width)
	for n := range b.width {
		out[n] = b.Row(n)
	}
	return out
}

// Columns returns every column from left to right.
func (b *Board) Columns() [][]PlayerMark {
	out := make([][]PlayerMark, b.width)
	for n := range b.width {
		out[n] = b.Column(n)
	}
	return out
}

// Axes returns every line that can win a game: rows, columns, then the major
// and minor diagonals.
func (b *Board) Axes() [][]PlayerMark {
	axes := make([][]PlayerMark, 0, 2*b.width+2)
	axes = append(axes, b.Rows()...)
	axes = append(axes, b.Columns()...)
	axes = append(axes, b.Diagonal(Major), b.Diagonal(Minor))
	return axes
}

// AxisIndices returns the cell indices of every axis, in the same order as Axes.
func (b *Board) AxisIndices() [][]int {
	w := b.width
	axes := make([][]int, 0, 2*w+2)
	for r := range w {
		line := make([]int, w)
		for c := range w {
			line[c] = IndexOf(r, c, w)
		}
		axes = append(axes, line)
	}
	for c := range w {
		line := make([]int, w)
		for r := range w {
			line[r] = IndexOf(r, c, w)
		}
		axes = append(axes, line)
	}
	major := make([]int, w)
	minor := make([]int, w)
	for r := range w {
		major[r] = IndexOf(r, r, w)
		minor[r] = IndexOf(r, w-1-r, w)
	}
	return append(axes, major, minor)
}

// AdjacentIndices returns the orthogonal neighbours of index in the order
// left, right, up, down. Neighbours never wrap across row boundaries.
func (b *Board) AdjacentIndices(index int) []int {
	if index < 0 || index >= len(b.cells) {
		return []int{}
	}
	row, col := Coordinates(index, b.width)
	out := make([]int, 0, 4)
	if col > 0 {
		out = append(out, index-1)
	}
	if col < b.width-1 {
		out = append(out, index+1)
	}
	if row > 0 {
		out = append(out, index-b.width)
	}
	if row < b.width-1 {
		out = append(out, index+b.width)
	}
	return out
}

// AdjacentCells returns the marks of the cells reported by AdjacentIndices.
func (b *Board) AdjacentCells(index int) []PlayerMark {
	idx := b.AdjacentIndices(index)
	out := make([]PlayerMark, len(idx))
	for i, n := range idx {
		out[i] = b.cells[n]
	}
	return out
}
