// Package object holds the game entities: the player and its shots, the
// invader swarm, and the HUD and menu pieces drawn around them.
package object

import (
	"time"

	"github.com/tomz197/invaders/internal/draw"
)

// Drawable is implemented by everything that paints itself onto a frame.
type Drawable interface {
	// Draw writes the object's cells into f. Positions are always inside the grid.
	Draw(f *draw.Frame)
}

// Updatable is implemented by entities that advance with elapsed time.
type Updatable interface {
	Update(elapsed time.Duration)
}

// DrawAll paints each drawable onto f in order; later ones win shared cells.
func DrawAll(f *draw.Frame, drawables ...Drawable) {
	for _, d := range drawables {
		d.Draw(f)
	}
}

// Compile-time checks that every entity satisfies its capabilities.
var (
	_ Drawable  = (*Shot)(nil)
	_ Drawable  = (*Player)(nil)
	_ Drawable  = (*Swarm)(nil)
	_ Drawable  = (*Score)(nil)
	_ Drawable  = (*Level)(nil)
	_ Drawable  = (*Menu)(nil)
	_ Updatable = (*Shot)(nil)
	_ Updatable = (*Player)(nil)
)
