// Package render paints game frames onto a terminal. A Worker owns the
// painter for one session and diffs each frame against the previous one so
// only changed cells are written.
package render

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/draw"
)

// Painter is a cell-addressable output surface.
type Painter interface {
	// Clear blanks the whole surface.
	Clear()
	// SetCell places r at grid position (x, y).
	SetCell(x, y int, r rune)
	// Flush pushes everything queued since the last flush to the terminal.
	Flush() error
}

// Resizer is implemented by painters whose surface can move or change
// size. Resized reports a change since the previous call; the worker then
// repaints the whole frame instead of a diff.
type Resizer interface {
	Resized() bool
}

// Ensure the draw painters satisfy Painter.
var (
	_ Painter = (*draw.ChunkWriter)(nil)
	_ Painter = (*draw.ScreenPainter)(nil)
)

// Render paints curr. With force set, or when last has a different size,
// the surface is cleared and every non-blank cell painted. Otherwise only
// cells that differ from last are painted. Returns the number of cells
// written.
func Render(p Painter, last, curr draw.Frame, force bool) (int, error) {
	painted := 0
	if force || !curr.SameSize(last) {
		p.Clear()
		for y := 0; y < curr.Rows(); y++ {
			for x := 0; x < curr.Cols(); x++ {
				if r := curr.At(x, y); r != draw.Blank {
					p.SetCell(x, y, r)
					painted++
				}
			}
		}
	} else {
		for y := 0; y < curr.Rows(); y++ {
			for x := 0; x < curr.Cols(); x++ {
				if r := curr.At(x, y); r != last.At(x, y) {
					p.SetCell(x, y, r)
					painted++
				}
			}
		}
	}
	if err := p.Flush(); err != nil {
		return painted, fmt.Errorf("flush frame: %w", err)
	}
	return painted, nil
}

// Worker consumes frames from a channel and renders them in order.
type Worker struct {
	painter Painter
	frames  <-chan draw.Frame
	logger  *log.Logger
	done    chan struct{}
	err     error
}

// Start spawns the render goroutine. It exits once frames is closed and
// drained.
func Start(p Painter, frames <-chan draw.Frame, logger *log.Logger) *Worker {
	w := &Worker{
		painter: p,
		frames:  frames,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)

	var last draw.Frame
	first := true
	rendered := 0
	for frame := range w.frames {
		if w.err != nil {
			continue
		}
		force := first
		if r, ok := w.painter.(Resizer); ok && r.Resized() {
			w.logger.Debug("surface resized, full redraw", "frame", rendered)
			force = true
		}
		painted, err := Render(w.painter, last, frame, force)
		if err != nil {
			w.err = err
			w.logger.Error("render failed, dropping remaining frames", "err", err, "frame", rendered)
			continue
		}
		w.logger.Debug("frame rendered", "frame", rendered, "cells", painted)
		last = frame
		first = false
		rendered++
	}
	w.logger.Debug("render worker stopped", "frames", rendered)
}

// Wait blocks until the worker exits and returns the first painter error.
func (w *Worker) Wait() error {
	<-w.done
	return w.err
}
