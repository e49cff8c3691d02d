package config

import (
	"errors"
	"fmt"
	"time"
)

// Grid dimensions. The game area is a fixed character grid; these are the
// values Default uses and the ones every command plays with.
const (
	GridCols = 40
	GridRows = 20
)

// Minimum grid: the HUD needs "SCORE: 0000" and "LEVEL: 00" side by side on
// row 0, and the swarm spawns on rows 2..8 above the player row.
const (
	minCols = 24
	minRows = 12
)

// Config centralizes all tunable game parameters.
// It is threaded through every constructor so tests can play on other sizes.
type Config struct {
	Cols int // Grid width in cells
	Rows int // Grid height in cells; the player lives on Rows-1

	// Shots
	ShotPeriod        time.Duration // Time per row of upward shot movement
	ExplosionDuration time.Duration // How long a hit shot stays on screen
	MaxShots          int           // Live shots allowed per player

	// Swarm pacing
	SwarmPeriod    time.Duration // Starting step period of a full swarm on level 1
	SwarmMinPeriod time.Duration // Fastest step period
	DropSpeedup    time.Duration // Period removed each time the swarm drops a row
	LevelSpeedup   time.Duration // Period removed per level above 1

	// Progression
	MaxLevel int // Clearing this level wins the game

	// Loop
	FrameTime time.Duration // Target tick duration
}

// Default returns the standard game configuration.
func Default() Config {
	return Config{
		Cols:              GridCols,
		Rows:              GridRows,
		ShotPeriod:        50 * time.Millisecond,
		ExplosionDuration: 250 * time.Millisecond,
		MaxShots:          2,
		SwarmPeriod:       2 * time.Second,
		SwarmMinPeriod:    250 * time.Millisecond,
		DropSpeedup:       250 * time.Millisecond,
		LevelSpeedup:      250 * time.Millisecond,
		MaxLevel:          3,
		FrameTime:         time.Second / 60,
	}
}

// Validate reports the first setting that cannot produce a playable game.
func (c Config) Validate() error {
	if c.Cols < minCols || c.Rows < minRows {
		return fmt.Errorf("grid %dx%d is smaller than %dx%d", c.Cols, c.Rows, minCols, minRows)
	}
	if c.ShotPeriod <= 0 || c.ExplosionDuration <= 0 {
		return errors.New("shot timings must be positive")
	}
	if c.SwarmMinPeriod <= 0 || c.SwarmPeriod < c.SwarmMinPeriod {
		return fmt.Errorf("swarm period %v must be at least the minimum %v", c.SwarmPeriod, c.SwarmMinPeriod)
	}
	if c.DropSpeedup < 0 || c.LevelSpeedup < 0 {
		return errors.New("speedups must not be negative")
	}
	if c.MaxShots < 1 {
		return errors.New("at least one shot must be allowed")
	}
	if c.MaxLevel < 1 || c.MaxLevel > 99 {
		return fmt.Errorf("max level %d out of range 1..99", c.MaxLevel)
	}
	return nil
}
