package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

// updatePlaying runs one gameplay tick: input, update, collisions, draw,
// then end-of-tick results.
func (g *Game) updatePlaying(keys []input.Key, elapsed time.Duration, frame *draw.Frame) {
	s := g.state
	for _, key := range keys {
		switch key {
		case input.KeyLeft:
			s.Player.MoveLeft()
		case input.KeyRight:
			s.Player.MoveRight()
		case input.KeyConfirm:
			if s.Player.Shoot() {
				g.audio.Play(audio.SoundPew)
			}
		case input.KeyBack:
			g.audio.Play(audio.SoundLose)
			g.logger.Info("game aborted", "score", s.Score.Count(), "level", s.Level.Value())
			g.toMenu("GAME ABORTED")
			g.drawMenu(frame)
			return
		case input.KeyInterrupt:
			g.logger.Info("interrupted")
			s.Running = false
			object.DrawAll(frame, s.Player, s.Swarm, s.Score, s.Level)
			return
		}
	}

	s.Player.Update(elapsed)
	if s.Swarm.Update(elapsed) {
		g.audio.Play(audio.SoundMove)
	}
	if hits := s.Player.DetectHits(s.Swarm); hits > 0 {
		s.Score.Add(hits)
		g.audio.Play(audio.SoundExplode)
	}

	object.DrawAll(frame, s.Player, s.Swarm, s.Score, s.Level)

	g.handleResults()
}

// handleResults advances the level when the swarm is cleared and ends the
// game when the swarm lands.
func (g *Game) handleResults() {
	s := g.state
	switch {
	case s.Swarm.AllKilled():
		if s.Level.Increment() {
			g.audio.Play(audio.SoundWin)
			g.logger.Info("game won", "score", s.Score.Count())
			s.Won = true
			s.Running = false
			return
		}
		g.logger.Info("level cleared", "level", s.Level.Value(), "score", s.Score.Count())
		s.Swarm = object.NewSwarm(g.cfg, s.Level.Value())
	case s.Swarm.ReachedBottom():
		g.audio.Play(audio.SoundLose)
		g.logger.Info("game lost", "score", s.Score.Count(), "level", s.Level.Value())
		g.toMenu("GAME OVER")
	}
}

// toMenu returns to the menu with a fresh player and swarm. The score of
// the game just ended stays visible in the banner.
func (g *Game) toMenu(reason string) {
	s := g.state
	s.GameState = GameStateMenu
	s.Banner = reason
	s.resetField(g.cfg)
}
