package draw

import "fmt"

// Blank is the rune every cell of a new frame holds.
const Blank = ' '

// Frame is one complete screen of the game grid, indexed by (column, row).
// A frame is built by the game loop each tick and then handed to the
// renderer; after the hand-off the loop never touches it again.
type Frame struct {
	cols  int
	rows  int
	cells []rune // Flat slice: [y * cols + x]
}

// NewFrame returns an all-blank frame of the given dimensions.
func NewFrame(cols, rows int) Frame {
	cells := make([]rune, cols*rows)
	for i := range cells {
		cells[i] = Blank
	}
	return Frame{cols: cols, rows: rows, cells: cells}
}

// Cols returns the frame width.
func (f Frame) Cols() int { return f.cols }

// Rows returns the frame height.
func (f Frame) Rows() int { return f.rows }

// Empty reports whether the frame has no cells (the zero Frame).
func (f Frame) Empty() bool { return len(f.cells) == 0 }

// SameSize reports whether both frames have identical dimensions.
func (f Frame) SameSize(other Frame) bool {
	return f.cols == other.cols && f.rows == other.rows
}

// At returns the rune at (x, y). Out-of-range coordinates panic.
func (f Frame) At(x, y int) rune {
	return f.cells[f.index(x, y)]
}

// Set writes r at (x, y). Out-of-range coordinates panic: every entity
// clamps its position to the grid, so a stray write is a bug.
func (f *Frame) Set(x, y int, r rune) {
	f.cells[f.index(x, y)] = r
}

// WriteString writes s starting at (x, y), one rune per column.
func (f *Frame) WriteString(x, y int, s string) {
	for _, r := range s {
		f.Set(x, y, r)
		x++
	}
}

// Clone returns an independent copy of the frame.
func (f Frame) Clone() Frame {
	cells := make([]rune, len(f.cells))
	copy(cells, f.cells)
	return Frame{cols: f.cols, rows: f.rows, cells: cells}
}

// Row returns row y as a string, mostly useful in tests and logs.
func (f Frame) Row(y int) string {
	start := f.index(0, y)
	return string(f.cells[start : start+f.cols])
}

func (f Frame) index(x, y int) int {
	if x < 0 || x >= f.cols || y < 0 || y >= f.rows {
		panic(fmt.Sprintf("draw: cell (%d,%d) outside %dx%d frame", x, y, f.cols, f.rows))
	}
	return y*f.cols + x
}
