package loop

import (
	"fmt"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

const title = "S P A C E   I N V A D E R S"

// updateMenu applies menu navigation and draws the menu screen.
func (g *Game) updateMenu(keys []input.Key, frame *draw.Frame) {
	s := g.state
	for _, key := range keys {
		switch key {
		case input.KeyUp:
			s.Menu.ChangeOption(true)
		case input.KeyDown:
			s.Menu.ChangeOption(false)
		case input.KeyConfirm:
			if s.Menu.Selected() != object.OptionExit {
				g.startGame()
				object.DrawAll(frame, s.Player, s.Swarm, s.Score, s.Level)
				return
			}
			g.logger.Info("exit selected")
			s.Running = false
		case input.KeyInterrupt:
			g.logger.Info("interrupted")
			s.Running = false
		}
		if !s.Running {
			break
		}
	}
	g.drawMenu(frame)
}

// startGame begins a new game with a fresh player and swarm. Score and
// level carry over from earlier games.
func (g *Game) startGame() {
	s := g.state
	s.resetField(g.cfg)
	s.Banner = ""
	s.Won = false
	s.GameState = GameStatePlaying
	g.logger.Info("game started", "invaders", len(s.Swarm.Invaders), "score", s.Score.Count(), "level", s.Level.Value())
}

// drawMenu paints the option list plus the title, or the result of the last
// game when there is one.
func (g *Game) drawMenu(frame *draw.Frame) {
	s := g.state
	s.Menu.Draw(frame)

	mid := frame.Rows() / 2
	if s.Banner == "" {
		object.Centered(frame.Cols(), mid, title).Draw(frame)
		return
	}
	object.Centered(frame.Cols(), mid, s.Banner).Draw(frame)
	object.Centered(frame.Cols(), mid+1,
		fmt.Sprintf("SCORE %04d  LEVEL %02d", s.Score.Count(), s.Level.Value())).Draw(frame)
}
