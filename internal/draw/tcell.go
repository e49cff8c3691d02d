package draw

import "github.com/gdamore/tcell/v2"

// Glyph colours for the tcell backend. The ANSI backend is monochrome.
var glyphStyles = map[rune]tcell.Style{
	'A': tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	'|': tcell.StyleDefault.Foreground(tcell.ColorYellow),
	'*': tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	'x': tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	'+': tcell.StyleDefault.Foreground(tcell.ColorPurple),
	'>': tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
}

// GlyphStyle returns the tcell style used to paint r.
func GlyphStyle(r rune) tcell.Style {
	if style, ok := glyphStyles[r]; ok {
		return style
	}
	return tcell.StyleDefault
}

// ScreenPainter paints grid cells onto a tcell screen.
type ScreenPainter struct {
	screen tcell.Screen
	offCol int
	offRow int
}

// NewScreenPainter creates a painter over an initialized screen. The
// offsets shift every cell (for centring the grid).
func NewScreenPainter(screen tcell.Screen, offsetCol, offsetRow int) *ScreenPainter {
	return &ScreenPainter{screen: screen, offCol: offsetCol, offRow: offsetRow}
}

// Clear blanks the whole screen.
func (p *ScreenPainter) Clear() {
	p.screen.Clear()
}

// SetCell places r at grid cell (x, y).
func (p *ScreenPainter) SetCell(x, y int, r rune) {
	p.screen.SetContent(x+p.offCol, y+p.offRow, r, nil, GlyphStyle(r))
}

// Flush shows the pending cells. tcell reports no write errors here.
func (p *ScreenPainter) Flush() error {
	p.screen.Show()
	return nil
}
