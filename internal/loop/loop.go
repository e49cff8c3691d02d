// Package loop runs one game session: it polls input, advances the
// entities, and hands each finished frame to a render worker.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/render"
)

// Options wires a Game to its collaborators.
type Options struct {
	Config  config.Config
	Input   input.Source
	Painter render.Painter
	Audio   audio.Player        // Nil plays nothing
	Logger  *log.Logger         // Nil discards
	Clock   func() time.Time    // Nil uses time.Now
	Sleep   func(time.Duration) // Nil uses time.Sleep
}

// Game is a single-player session.
type Game struct {
	cfg     config.Config
	input   input.Source
	painter render.Painter
	audio   audio.Player
	logger  *log.Logger
	clock   func() time.Time
	sleep   func(time.Duration)

	state *State
}

// closer is implemented by sources whose producer can go away.
type closer interface {
	Closed() bool
}

// New validates opts and creates a game waiting at the menu.
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Input == nil {
		return nil, errors.New("input source is required")
	}
	if opts.Painter == nil {
		return nil, errors.New("painter is required")
	}

	g := &Game{
		cfg:     opts.Config,
		input:   opts.Input,
		painter: opts.Painter,
		audio:   opts.Audio,
		logger:  opts.Logger,
		clock:   opts.Clock,
		sleep:   opts.Sleep,
	}
	if g.audio == nil {
		g.audio = audio.Nop{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.sleep == nil {
		g.sleep = time.Sleep
	}
	g.state = NewState(g.cfg)
	return g, nil
}

// Run plays until the player wins, picks Exit, interrupts, the input source
// closes, or ctx is cancelled. It always joins the render worker and waits
// for queued sounds before returning. The error is the first painter
// failure, if any.
func (g *Game) Run(ctx context.Context) (Summary, error) {
	// The relay queues whatever the worker has not painted yet, so sending a
	// frame never waits on the terminal.
	frames := make(chan draw.Frame)
	worker := render.Start(g.painter, render.Relay(frames), g.logger)

	g.audio.Play(audio.SoundStartup)
	g.logger.Info("session started", "cols", g.cfg.Cols, "rows", g.cfg.Rows, "max_level", g.cfg.MaxLevel)

	last := g.clock()
	for g.state.Running {
		if err := ctx.Err(); err != nil {
			g.logger.Info("session cancelled", "err", err)
			break
		}

		// ===== TIMING =====
		tickStart := g.clock()
		elapsed := tickStart.Sub(last)
		last = tickStart

		// ===== INPUT + UPDATE + DRAW =====
		frame := draw.NewFrame(g.cfg.Cols, g.cfg.Rows)
		keys := g.input.Poll()
		switch g.state.GameState {
		case GameStateMenu:
			g.updateMenu(keys, &frame)
		case GameStatePlaying:
			g.updatePlaying(keys, elapsed, &frame)
		}
		frames <- frame

		if c, ok := g.input.(closer); ok && c.Closed() && g.state.Running {
			g.logger.Info("input closed, ending session")
			g.state.Running = false
		}

		// ===== FRAME TIMING =====
		if rest := g.cfg.FrameTime - g.clock().Sub(tickStart); rest > 0 && g.state.Running {
			g.sleep(rest)
		}
	}

	// Closing flushes every queued frame before the worker exits.
	close(frames)
	err := worker.Wait()
	g.audio.Wait()

	summary := g.state.summary()
	g.logger.Info("session ended",
		"score", summary.Score,
		"level", summary.Level,
		"won", summary.Won)
	return summary, err
}

// State exposes the session state for inspection between runs.
func (g *Game) State() *State {
	return g.state
}
