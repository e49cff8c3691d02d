package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/render"
	"github.com/tomz197/invaders/internal/session"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownGrace      = 15 * time.Second
)

func main() {
	logger, err := config.NewLogger(os.Stderr, "invaders-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invaders-ssh: %v\n", err)
		os.Exit(1)
	}
	if err := run(logger); err != nil {
		logger.Fatal("server failed", "err", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath)

	sessions := session.NewRegistry(logger.WithPrefix("sessions"))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(sessions, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	}

	logger.Info("shutting down", "sessions", sessions.Count())
	if remaining := sessions.Shutdown(shutdownGrace); remaining > 0 {
		logger.Warn("sessions still open after grace period", "remaining", remaining)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// gameMiddleware runs an independent game for every SSH session.
func gameMiddleware(sessions *session.Registry, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			h := sessions.Register(sess.Context(), sess.User())
			defer sessions.Unregister(h.ID)
			sessLog := logger.With("session", h.ID, "user", sess.User())
			sessLog.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Track window changes so the grid stays centred
			size := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					size.update(win.Width, win.Height)
				}
			}()

			summary, err := playSession(h.Context(), sess, size, sessLog)
			if err != nil {
				sessLog.Error("game error", "err", err)
			}
			sessLog.Info("session ended", "score", summary.Score, "level", summary.Level, "won", summary.Won)
			next(sess)
		}
	}
}

// playSession runs one game over the session's terminal. The summary line
// is printed after the alternate screen is left so it stays visible.
func playSession(ctx context.Context, term io.ReadWriter, size *sizeTracker, logger *log.Logger) (loop.Summary, error) {
	cfg := config.Default()

	draw.EnterAltScreen(term)
	draw.HideCursor(term)
	restore := func() {
		draw.ShowCursor(term)
		draw.LeaveAltScreen(term)
	}

	keys := input.StartStream(term)
	defer keys.Stop()

	game, err := loop.New(loop.Options{
		Config:  cfg,
		Input:   keys,
		Painter: newSessionPainter(term, size, cfg),
		Audio:   audio.Nop{},
		Logger:  logger,
	})
	if err != nil {
		restore()
		return loop.Summary{}, err
	}
	summary, err := game.Run(ctx)
	restore()
	if err != nil {
		return summary, err
	}

	result := "Game over"
	if summary.Won {
		result = "You won"
	}
	fmt.Fprintf(term, "%s! Score %d, level %d\r\n", result, summary.Score, summary.Level)
	return summary, nil
}

// sessionPainter is a ChunkWriter that re-centres itself when the client's
// window changes size.
type sessionPainter struct {
	*draw.ChunkWriter
	size       *sizeTracker
	cols, rows int
	seen       uint64
}

// Ensure sessionPainter repaints on resize.
var _ render.Resizer = (*sessionPainter)(nil)

func newSessionPainter(w io.Writer, size *sizeTracker, cfg config.Config) *sessionPainter {
	p := &sessionPainter{
		ChunkWriter: draw.NewChunkWriter(w, 0, 0),
		size:        size,
		cols:        cfg.Cols,
		rows:        cfg.Rows,
	}
	p.recenter()
	return p
}

// Resized is called from the render goroutine before each frame.
func (p *sessionPainter) Resized() bool {
	if p.size.generation() == p.seen {
		return false
	}
	p.recenter()
	return true
}

func (p *sessionPainter) recenter() {
	p.seen = p.size.generation()
	width, height, _ := p.size.getSize()
	p.SetOffset(draw.CenterOffset(width, height, p.cols, p.rows))
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
	gen    uint64
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.gen++
}

func (s *sizeTracker) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
