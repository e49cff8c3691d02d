package loop

import (
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
)

// GameState is the phase the controller is in.
type GameState int

const (
	GameStateMenu    GameState = iota // Option list, waiting for a choice
	GameStatePlaying                  // Active gameplay
)

func (s GameState) String() string {
	switch s {
	case GameStateMenu:
		return "menu"
	case GameStatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// State holds every entity of one session. It is owned by the loop
// goroutine and never shared.
type State struct {
	GameState GameState
	Player    *object.Player
	Swarm     *object.Swarm
	Score     *object.Score
	Level     *object.Level
	Menu      *object.Menu
	Banner    string // Shown under the menu after a game ends
	Running   bool
	Won       bool
}

// NewState creates the state for a session that starts at the menu. Score
// and level live as long as the session; games only replace the field.
func NewState(cfg config.Config) *State {
	s := &State{
		GameState: GameStateMenu,
		Score:     object.NewScore(),
		Level:     object.NewLevel(cfg.MaxLevel),
		Menu:      object.NewMenu(),
		Running:   true,
	}
	s.resetField(cfg)
	return s
}

// resetField puts a fresh player and swarm for the current level on the grid.
func (s *State) resetField(cfg config.Config) {
	s.Player = object.NewPlayer(cfg)
	s.Swarm = object.NewSwarm(cfg, s.Level.Value())
}

// Summary is the outcome of a finished session.
type Summary struct {
	Score int
	Level int
	Won   bool
}

func (s *State) summary() Summary {
	return Summary{Score: s.Score.Count(), Level: s.Level.Value(), Won: s.Won}
}
