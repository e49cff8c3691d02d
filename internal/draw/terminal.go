// Package draw holds the frame buffer and the terminal painters that put
// frames on screen.
package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once.
// Matches typical MTU size for smooth SSH transmission.
const maxChunkSize = 1400

// ChunkWriter accumulates ANSI cursor moves and glyphs for the changed
// cells of a frame and writes them in chunks on Flush. It is the painter
// for raw terminals and SSH sessions.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all cursor coordinates (for centring the grid).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence. col and row are
// 1-based grid coordinates; the offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Clear queues a full screen clear. The next Flush sends it before any cell.
func (cw *ChunkWriter) Clear() {
	cw.buf.WriteString("\033[H\033[2J")
}

// SetCell queues r at 0-based grid cell (x, y).
func (cw *ChunkWriter) SetCell(x, y int, r rune) {
	cw.MoveCursor(x+1, y+1)
	cw.buf.WriteRune(r)
}

// Write implements io.Writer so raw sequences can be queued.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Pending returns the number of queued bytes not yet flushed.
func (cw *ChunkWriter) Pending() int {
	return cw.buf.Len()
}

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// CenterOffset returns the column and row offset that centres a cols×rows
// grid in a termWidth×termHeight terminal. Small terminals get zero offsets.
func CenterOffset(termWidth, termHeight, cols, rows int) (offsetCol, offsetRow int) {
	if termWidth > cols {
		offsetCol = (termWidth - cols) / 2
	}
	if termHeight > rows {
		offsetRow = (termHeight - rows) / 2
	}
	return offsetCol, offsetRow
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnterAltScreen switches to the alternate screen buffer.
func EnterAltScreen(w io.Writer) {
	fmt.Fprint(w, "\033[?1049h")
}

// LeaveAltScreen returns to the main screen buffer.
func LeaveAltScreen(w io.Writer) {
	fmt.Fprint(w, "\033[?1049l")
}
