package object

import (
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/timer"
)

// Invader glyphs; the swarm alternates between them as its timer runs down.
const (
	InvaderSymbol    = 'x'
	InvaderAltSymbol = '+'
)

// spawnRowLimit is the first row below the spawn area.
const spawnRowLimit = 9

// Invader is one member of the swarm.
type Invader struct {
	X, Y int
}

// Swarm is the marching grid of invaders. One timer and one direction
// drive every invader, so they always move in lockstep.
type Swarm struct {
	Invaders []Invader

	timer     timer.Timer
	direction int // +1 right, -1 left
	spawned   int // Invaders at creation, for pacing
	drops     int // Rows dropped so far, for pacing
	level     int

	cols int
	rows int
	cfg  config.Config
}

// NewSwarm spawns the invader grid for the given level (1-based).
// Invaders sit on even columns inside (1, cols-2) and even rows inside (0, 9).
func NewSwarm(cfg config.Config, level int) *Swarm {
	s := &Swarm{
		direction: 1,
		level:     level,
		cols:      cfg.Cols,
		rows:      cfg.Rows,
		cfg:       cfg,
	}
	for y := 1; y < spawnRowLimit && y < cfg.Rows-1; y++ {
		if y%2 != 0 {
			continue
		}
		for x := 2; x < cfg.Cols-2; x += 2 {
			s.Invaders = append(s.Invaders, Invader{X: x, Y: y})
		}
	}
	s.spawned = len(s.Invaders)
	s.timer = timer.New(s.period())
	return s
}

// Period returns the current step period of the swarm.
func (s *Swarm) Period() time.Duration {
	return s.period()
}

// period shortens as the swarm drops rows, on higher levels, and as
// invaders die. With one invader left it approaches SwarmMinPeriod.
func (s *Swarm) period() time.Duration {
	minPeriod := s.cfg.SwarmMinPeriod
	base := s.cfg.SwarmPeriod -
		time.Duration(s.drops)*s.cfg.DropSpeedup -
		time.Duration(max(s.level-1, 0))*s.cfg.LevelSpeedup
	if base < minPeriod {
		base = minPeriod
	}
	if s.spawned == 0 {
		return base
	}
	alive := time.Duration(len(s.Invaders))
	return minPeriod + (base-minPeriod)*alive/time.Duration(s.spawned)
}

// Update advances the shared timer. When it fires, the whole swarm steps one
// column in its direction, or, if any invader is at the edge it is heading
// for, reverses and drops one row. Returns true when the swarm moved.
func (s *Swarm) Update(elapsed time.Duration) bool {
	s.timer.Update(elapsed)
	if !s.timer.Ready() {
		return false
	}

	if s.atEdge() {
		s.direction = -s.direction
		s.drops++
		for i := range s.Invaders {
			s.Invaders[i].Y++
		}
	} else {
		for i := range s.Invaders {
			s.Invaders[i].X += s.direction
		}
	}
	s.timer.SetDuration(s.period())
	return true
}

// atEdge reports whether a horizontal step would push an invader off the grid.
func (s *Swarm) atEdge() bool {
	for _, inv := range s.Invaders {
		next := inv.X + s.direction
		if next < 0 || next >= s.cols {
			return true
		}
	}
	return false
}

// KillInvaderAt removes every invader at (x, y) and returns how many died.
func (s *Swarm) KillInvaderAt(x, y int) int {
	kept := s.Invaders[:0]
	for _, inv := range s.Invaders {
		if inv.X != x || inv.Y != y {
			kept = append(kept, inv)
		}
	}
	killed := len(s.Invaders) - len(kept)
	s.Invaders = kept
	return killed
}

// AllKilled reports whether the swarm is empty.
func (s *Swarm) AllKilled() bool {
	return len(s.Invaders) == 0
}

// ReachedBottom reports whether any invader reached the player's row.
func (s *Swarm) ReachedBottom() bool {
	for _, inv := range s.Invaders {
		if inv.Y >= s.rows-1 {
			return true
		}
	}
	return false
}

// Draw paints every invader. The glyph flips halfway through each step.
func (s *Swarm) Draw(f *draw.Frame) {
	symbol := rune(InvaderAltSymbol)
	if s.timer.Fraction() > 0.5 {
		symbol = InvaderSymbol
	}
	for _, inv := range s.Invaders {
		f.Set(inv.X, inv.Y, symbol)
	}
}
