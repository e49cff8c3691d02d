package draw

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func TestScreenPainterSetCell(t *testing.T) {
	screen := newSimScreen(t)
	p := NewScreenPainter(screen, 5, 3)

	p.SetCell(0, 0, 'A')
	p.SetCell(2, 1, '|')
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if r, _, _, _ := screen.GetContent(5, 3); r != 'A' {
		t.Fatalf("cell (5,3) = %q, want 'A'", r)
	}
	r, _, style, _ := screen.GetContent(7, 4)
	if r != '|' {
		t.Fatalf("cell (7,4) = %q, want '|'", r)
	}
	fg, _, _ := style.Decompose()
	if fg != tcell.ColorYellow {
		t.Fatalf("shot colour = %v, want yellow", fg)
	}
}

func TestScreenPainterClear(t *testing.T) {
	screen := newSimScreen(t)
	p := NewScreenPainter(screen, 0, 0)

	p.SetCell(1, 1, 'x')
	p.Clear()
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if r, _, _, _ := screen.GetContent(1, 1); r != ' ' {
		t.Fatalf("cell after clear = %q, want blank", r)
	}
}

func TestGlyphStyleDefault(t *testing.T) {
	if GlyphStyle('S') != tcell.StyleDefault {
		t.Fatalf("HUD text should use the default style")
	}
	if GlyphStyle('*') == tcell.StyleDefault {
		t.Fatalf("explosions should be coloured")
	}
}
