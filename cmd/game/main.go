package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"golang.org/x/term"
)

func main() {
	useTcell := flag.Bool("tcell", false, "render through tcell instead of raw ANSI output")
	mute := flag.Bool("mute", config.GetEnvBool("INVADERS_MUTE", false), "disable sound")
	flag.Parse()

	summary, err := run(*useTcell, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invaders: %v\n", err)
		os.Exit(1)
	}

	result := "game over"
	if summary.Won {
		result = "you saved the planet"
	}
	fmt.Printf("%s: score %d, level %d\n", result, summary.Score, summary.Level)
}

func run(useTcell, mute bool) (loop.Summary, error) {
	logOut, closeLog, err := config.OpenLogFile()
	if err != nil {
		return loop.Summary{}, err
	}
	defer closeLog()

	logger, err := config.NewLogger(logOut, "invaders")
	if err != nil {
		return loop.Summary{}, err
	}

	var player audio.Player = audio.Nop{}
	if !mute {
		spk, err := audio.NewSpeaker(logger)
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer spk.Close()
			player = spk
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	cfg := config.Default()
	if useTcell {
		return runScreen(ctx, cfg, player, logger)
	}
	return runTerminal(ctx, cfg, player, logger)
}

// runTerminal plays on the controlling terminal in raw mode with ANSI output.
func runTerminal(ctx context.Context, cfg config.Config, player audio.Player, logger *log.Logger) (loop.Summary, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return loop.Summary{}, fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	out := os.Stdout
	draw.EnterAltScreen(out)
	draw.HideCursor(out)
	defer func() {
		draw.ShowCursor(out)
		draw.LeaveAltScreen(out)
	}()

	width, height, err := draw.DefaultTermSizeFunc()
	if err != nil {
		logger.Warn("terminal size unknown, drawing at top-left", "err", err)
	}
	offCol, offRow := draw.CenterOffset(width, height, cfg.Cols, cfg.Rows)

	keys := input.StartStream(os.Stdin)
	defer keys.Stop()

	game, err := loop.New(loop.Options{
		Config:  cfg,
		Input:   keys,
		Painter: draw.NewChunkWriter(out, offCol, offRow),
		Audio:   player,
		Logger:  logger,
	})
	if err != nil {
		return loop.Summary{}, err
	}
	return game.Run(ctx)
}

// runScreen plays through a tcell screen.
func runScreen(ctx context.Context, cfg config.Config, player audio.Player, logger *log.Logger) (loop.Summary, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return loop.Summary{}, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return loop.Summary{}, fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	width, height := screen.Size()
	offCol, offRow := draw.CenterOffset(width, height, cfg.Cols, cfg.Rows)

	keys := input.StartScreenStream(screen)
	defer keys.Stop()

	game, err := loop.New(loop.Options{
		Config:  cfg,
		Input:   keys,
		Painter: draw.NewScreenPainter(screen, offCol, offRow),
		Audio:   player,
		Logger:  logger,
	})
	if err != nil {
		return loop.Summary{}, err
	}
	return game.Run(ctx)
}
