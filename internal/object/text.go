package object

import "github.com/tomz197/invaders/internal/draw"

// Text is a single line of text placed on the grid.
// Coordinates are 0-based grid cells; text past the right edge is cut.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw writes the text at its position, clipped to the frame.
func (t Text) Draw(f *draw.Frame) {
	if t.Value == "" || t.Y < 0 || t.Y >= f.Rows() {
		return
	}
	x := max(t.X, 0)
	for _, r := range t.Value {
		if x >= f.Cols() {
			return
		}
		f.Set(x, t.Y, r)
		x++
	}
}

// Centered returns a Text horizontally centred on row y of a cols-wide grid.
func Centered(cols, y int, value string) Text {
	x := (cols - len([]rune(value))) / 2
	return Text{X: max(x, 0), Y: y, Value: value}
}
