package object

import (
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
)

// PlayerSymbol is the glyph of the player's cannon.
const PlayerSymbol = 'A'

// Player is the cannon on the bottom row.
type Player struct {
	X, Y  int
	shots []*Shot

	cols       int
	maxShots   int
	shotPeriod time.Duration
	explosion  time.Duration
}

// NewPlayer creates a player centred on the bottom row of the grid.
func NewPlayer(cfg config.Config) *Player {
	return &Player{
		X:          cfg.Cols / 2,
		Y:          cfg.Rows - 1,
		shots:      make([]*Shot, 0, cfg.MaxShots),
		cols:       cfg.Cols,
		maxShots:   cfg.MaxShots,
		shotPeriod: cfg.ShotPeriod,
		explosion:  cfg.ExplosionDuration,
	}
}

// MoveLeft moves one column left, stopping at the edge.
func (p *Player) MoveLeft() {
	if p.X > 0 {
		p.X--
	}
}

// MoveRight moves one column right, stopping at the edge.
func (p *Player) MoveRight() {
	if p.X < p.cols-1 {
		p.X++
	}
}

// Shoot fires a shot from the cell above the player.
// Returns false, changing nothing, when the shot limit is reached.
func (p *Player) Shoot() bool {
	if len(p.shots) >= p.maxShots {
		return false
	}
	p.shots = append(p.shots, NewShot(p.X, p.Y-1, p.shotPeriod, p.explosion))
	return true
}

// Shots returns the live shots. The slice must not be modified.
func (p *Player) Shots() []*Shot {
	return p.shots
}

// Update advances every shot and discards the dead ones.
func (p *Player) Update(elapsed time.Duration) {
	kept := p.shots[:0]
	for _, shot := range p.shots {
		shot.Update(elapsed)
		if !shot.Dead() {
			kept = append(kept, shot)
		}
	}
	clear(p.shots[len(kept):])
	p.shots = kept
}

// DetectHits kills invaders sharing a cell with a flying shot and sets those
// shots exploding. Returns the number of invaders killed.
func (p *Player) DetectHits(swarm *Swarm) int {
	hits := 0
	for _, shot := range p.shots {
		if shot.Exploding() {
			continue
		}
		if count := swarm.KillInvaderAt(shot.X, shot.Y); count > 0 {
			hits += count
			shot.Explode()
		}
	}
	return hits
}

// Draw paints the cannon and its shots.
func (p *Player) Draw(f *draw.Frame) {
	f.Set(p.X, p.Y, PlayerSymbol)
	for _, shot := range p.shots {
		shot.Draw(f)
	}
}
