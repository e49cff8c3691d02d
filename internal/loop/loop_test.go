package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

// script hands out one batch of keys per Poll. Once exhausted it interrupts
// so a broken test cannot spin forever.
type script struct {
	polls [][]input.Key
	next  int
}

func (s *script) Poll() []input.Key {
	if s.next >= len(s.polls) {
		return []input.Key{input.KeyInterrupt}
	}
	keys := s.polls[s.next]
	s.next++
	return keys
}

// closingScript reports Closed after its keys are used up.
type closingScript struct {
	script
	closed bool
}

func (s *closingScript) Poll() []input.Key {
	if s.next >= len(s.polls) {
		s.closed = true
		return nil
	}
	return s.script.Poll()
}

func (s *closingScript) Closed() bool { return s.closed }

// screen is a Painter that keeps the visible grid.
type screen struct {
	cells   map[[2]int]rune
	flushes int
	err     error
	delay   time.Duration // Real time each Flush takes
}

func newScreen() *screen { return &screen{cells: map[[2]int]rune{}} }

func (s *screen) Clear()                   { s.cells = map[[2]int]rune{} }
func (s *screen) SetCell(x, y int, r rune) { s.cells[[2]int{x, y}] = r }
func (s *screen) Flush() error {
	time.Sleep(s.delay)
	s.flushes++
	return s.err
}

func (s *screen) at(x, y int) rune {
	if r, ok := s.cells[[2]int{x, y}]; ok {
		return r
	}
	return ' '
}

type jukebox struct {
	played []audio.Sound
	waited bool
}

func (j *jukebox) Play(name audio.Sound) { j.played = append(j.played, name) }
func (j *jukebox) Wait()                 { j.waited = true }

func (j *jukebox) count(name audio.Sound) int {
	n := 0
	for _, s := range j.played {
		if s == name {
			n++
		}
	}
	return n
}

// fakeClock advances only when the loop sleeps.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	game   *Game
	screen *screen
	sounds *jukebox
	clock  *fakeClock
}

func newHarness(t *testing.T, src input.Source) *harness {
	t.Helper()
	h := &harness{
		screen: newScreen(),
		sounds: &jukebox{},
		clock:  &fakeClock{now: time.Unix(0, 0)},
	}
	g, err := New(Options{
		Config:  config.Default(),
		Input:   src,
		Painter: h.screen,
		Audio:   h.sounds,
		Clock:   h.clock.Now,
		Sleep:   h.clock.Sleep,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.game = g
	return h
}

func (h *harness) run(t *testing.T) Summary {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	summary, err := h.game.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !h.sounds.waited {
		t.Fatalf("Run returned without waiting for audio")
	}
	return summary
}

// playing puts the harness straight into a game.
func (h *harness) playing() *State {
	h.game.startGame()
	return h.game.State()
}

func TestNewRejectsBadOptions(t *testing.T) {
	bad := config.Default()
	bad.MaxShots = 0

	tests := []struct {
		name string
		opts Options
	}{
		{"invalid config", Options{Config: bad, Input: &script{}, Painter: newScreen()}},
		{"no input", Options{Config: config.Default(), Painter: newScreen()}},
		{"no painter", Options{Config: config.Default(), Input: &script{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Fatalf("New accepted %s", tt.name)
			}
		})
	}
}

func TestMenuExit(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{
		nil,
		{input.KeyDown},
		{input.KeyConfirm},
	}})
	summary := h.run(t)

	if summary != (Summary{Score: 0, Level: 1}) {
		t.Fatalf("summary = %+v", summary)
	}
	if len(h.sounds.played) != 1 || h.sounds.played[0] != audio.SoundStartup {
		t.Fatalf("sounds = %v, want only startup", h.sounds.played)
	}
	if h.screen.at(0, 1) != object.SelectorSymbol || h.screen.at(0, 0) != ' ' {
		t.Fatalf("selector not on Exit row")
	}
	if h.screen.flushes != 3 {
		t.Fatalf("flushes = %d, want one per tick", h.screen.flushes)
	}
}

func TestNewGameFromMenu(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{
		{input.KeyConfirm},
		{input.KeyRight, input.KeyRight},
	}})
	h.run(t)

	s := h.game.State()
	if s.GameState != GameStatePlaying {
		t.Fatalf("state = %v, want playing", s.GameState)
	}
	cfg := config.Default()
	if s.Player.X != cfg.Cols/2+2 {
		t.Fatalf("player x = %d, want %d", s.Player.X, cfg.Cols/2+2)
	}
	if h.screen.at(s.Player.X, cfg.Rows-1) != object.PlayerSymbol {
		t.Fatalf("player not painted")
	}
}

func TestShootingPlaysPew(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{
		{input.KeyConfirm, input.KeyConfirm, input.KeyConfirm},
	}})
	h.playing()
	h.run(t)

	if got := h.sounds.count(audio.SoundPew); got != 2 {
		t.Fatalf("pew played %d times, want 2 (shot limit)", got)
	}
}

func TestHitScoresAndExplodes(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{{input.KeyConfirm}}})
	s := h.playing()
	rows := config.Default().Rows
	s.Swarm.Invaders = []object.Invader{{X: s.Player.X, Y: rows - 2}, {X: 0, Y: 1}}

	summary := h.run(t)
	if summary.Score != 1 {
		t.Fatalf("score = %d, want 1", summary.Score)
	}
	if h.sounds.count(audio.SoundExplode) != 1 {
		t.Fatalf("sounds = %v", h.sounds.played)
	}
	if len(s.Swarm.Invaders) != 1 {
		t.Fatalf("invaders left = %d, want 1", len(s.Swarm.Invaders))
	}
}

func TestClearedSwarmAdvancesLevel(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{nil}})
	s := h.playing()
	s.Swarm.Invaders = nil

	summary := h.run(t)
	if summary.Level != 2 || summary.Won {
		t.Fatalf("summary = %+v, want level 2 not won", summary)
	}
	if s.Swarm.AllKilled() {
		t.Fatalf("no swarm respawned")
	}
}

func TestClearingLastLevelWins(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{nil}})
	s := h.playing()
	for s.Level.Value() < s.Level.Max() {
		s.Level.Increment()
	}
	s.Swarm.Invaders = nil

	summary := h.run(t)
	if !summary.Won {
		t.Fatalf("summary = %+v, want won", summary)
	}
	if h.sounds.count(audio.SoundWin) != 1 {
		t.Fatalf("sounds = %v", h.sounds.played)
	}
}

func TestSwarmLandingReturnsToMenu(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{nil, nil}})
	s := h.playing()
	rows := config.Default().Rows
	s.Swarm.Invaders = []object.Invader{{X: 5, Y: rows - 1}}

	h.run(t)
	if s.GameState != GameStateMenu || s.Banner != "GAME OVER" {
		t.Fatalf("state = %v banner = %q", s.GameState, s.Banner)
	}
	if h.sounds.count(audio.SoundLose) != 1 {
		t.Fatalf("sounds = %v", h.sounds.played)
	}
	if s.Swarm.ReachedBottom() || s.Player.X != config.Default().Cols/2 {
		t.Fatalf("field not reset")
	}
}

func TestBackAbortsToMenu(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{{input.KeyBack}, nil}})
	s := h.playing()

	h.run(t)
	if s.GameState != GameStateMenu || s.Banner != "GAME ABORTED" {
		t.Fatalf("state = %v banner = %q", s.GameState, s.Banner)
	}
	if h.sounds.count(audio.SoundLose) != 1 {
		t.Fatalf("sounds = %v", h.sounds.played)
	}
}

func TestCancelledContextStopsImmediately(t *testing.T) {
	h := newHarness(t, &script{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := h.game.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Won || h.screen.flushes != 0 {
		t.Fatalf("cancelled run played: %+v, %d flushes", summary, h.screen.flushes)
	}
}

func TestClosedInputEndsSession(t *testing.T) {
	src := &closingScript{script: script{polls: [][]input.Key{nil, nil}}}
	h := newHarness(t, src)
	h.run(t)

	if h.screen.flushes != 3 {
		t.Fatalf("flushes = %d, want 3", h.screen.flushes)
	}
}

func TestFrameTimingSleepsRemainder(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{nil, nil, nil}})
	start := h.clock.now
	h.run(t)

	// Three full ticks sleep; the interrupting fourth does not.
	if got, want := h.clock.now.Sub(start), 3*config.Default().FrameTime; got != want {
		t.Fatalf("slept %v, want %v", got, want)
	}
}

func TestPainterErrorIsReturned(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{nil, nil}})
	h.screen.err = errors.New("connection reset")

	_, err := h.game.Run(context.Background())
	if err == nil {
		t.Fatalf("painter error swallowed")
	}
}

func TestScoreAndLevelSurviveLossAndNewGame(t *testing.T) {
	h := newHarness(t, &script{polls: [][]input.Key{
		nil,
		{input.KeyConfirm},
		nil,
	}})
	s := h.playing()
	s.Score.Add(7)
	s.Level.Increment()
	rows := config.Default().Rows
	s.Swarm.Invaders = []object.Invader{{X: 5, Y: rows - 1}}

	summary := h.run(t)
	if s.GameState != GameStatePlaying {
		t.Fatalf("state = %v, want playing after new game", s.GameState)
	}
	if summary.Score != 7 || summary.Level != 2 {
		t.Fatalf("after new game: score=%d level=%d, want 7 and 2", summary.Score, summary.Level)
	}
	if s.Swarm.AllKilled() || s.Swarm.ReachedBottom() {
		t.Fatalf("new game did not bring a fresh swarm")
	}
}

func TestSlowPainterSeesEveryFrame(t *testing.T) {
	const polls = 300
	h := newHarness(t, &script{polls: make([][]input.Key, polls)})
	h.screen.delay = 2 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := h.game.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// One frame per poll plus the interrupting tick.
	if h.screen.flushes != polls+1 {
		t.Fatalf("renderer saw %d of %d frames", h.screen.flushes, polls+1)
	}
}
