package object

import (
	"fmt"

	"github.com/tomz197/invaders/internal/draw"
)

// Score counts invaders killed in the current game.
type Score struct {
	count int
}

// NewScore creates a zero score.
func NewScore() *Score {
	return &Score{}
}

// Add adds points; negative amounts are ignored so the score never drops.
func (s *Score) Add(points int) {
	if points > 0 {
		s.count += points
	}
}

// Count returns the current score.
func (s *Score) Count() int { return s.count }

// Draw writes "SCORE: 0000" at the left of the top row.
func (s *Score) Draw(f *draw.Frame) {
	f.WriteString(0, 0, fmt.Sprintf("SCORE: %04d", s.count))
}

// Level is the current wave number, starting at 1 and capped at max.
type Level struct {
	level int
	max   int
}

// NewLevel creates a level counter at 1 with the given cap.
func NewLevel(max int) *Level {
	return &Level{level: 1, max: max}
}

// Increment moves to the next level. It returns true, leaving the level
// at the cap, when the last level has been cleared.
func (l *Level) Increment() bool {
	if l.level >= l.max {
		return true
	}
	l.level++
	return false
}

// Value returns the current level.
func (l *Level) Value() int { return l.level }

// Max returns the level cap.
func (l *Level) Max() int { return l.max }

// Draw writes "LEVEL: 01" at the right of the top row.
func (l *Level) Draw(f *draw.Frame) {
	text := fmt.Sprintf("LEVEL: %02d", l.level)
	f.WriteString(f.Cols()-len(text), 0, text)
}
