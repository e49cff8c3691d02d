package object

import (
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/timer"
)

// Shot glyphs.
const (
	ShotSymbol      = '|'
	ExplosionSymbol = '*'
)

// Shot is a projectile fired straight up by the player.
type Shot struct {
	X, Y      int
	exploding bool
	timer     timer.Timer
	explosion time.Duration
}

// NewShot creates a shot at (x, y) that climbs one row every period.
// explosion is how long the shot lingers after a hit.
func NewShot(x, y int, period, explosion time.Duration) *Shot {
	return &Shot{
		X:         x,
		Y:         y,
		timer:     timer.New(period),
		explosion: explosion,
	}
}

// Update advances the movement timer and climbs a row when it fires.
// An exploding shot only counts down.
func (s *Shot) Update(elapsed time.Duration) {
	s.timer.Update(elapsed)
	if s.timer.Ready() && !s.exploding {
		if s.Y > 0 {
			s.Y--
		}
		s.timer.Reset()
	}
}

// Explode marks the shot as a hit and starts the explosion countdown.
func (s *Shot) Explode() {
	s.exploding = true
	s.timer = timer.New(s.explosion)
}

// Exploding reports whether the shot has hit something.
func (s *Shot) Exploding() bool { return s.exploding }

// Dead reports whether the shot should be removed: its explosion is over,
// or it reached the top row without hitting anything.
func (s *Shot) Dead() bool {
	return (s.exploding && s.timer.Ready()) || s.Y == 0
}

// Draw paints the shot, or its explosion.
func (s *Shot) Draw(f *draw.Frame) {
	symbol := rune(ShotSymbol)
	if s.exploding {
		symbol = ExplosionSymbol
	}
	f.Set(s.X, s.Y, symbol)
}
