// Package input turns raw terminal bytes or tcell events into discrete key
// events the game loop drains once per tick.
package input

import (
	"bufio"
	"io"
	"sync"
)

// streamBuffer is how many undelivered keys a stream holds before its
// reader goroutine blocks.
const streamBuffer = 128

// Key is one decoded key press.
type Key int

const (
	KeyNone      Key = iota // Unmapped byte, never delivered
	KeyLeft                 // Arrow left, a, h
	KeyRight                // Arrow right, d, l
	KeyUp                   // Arrow up, w, k
	KeyDown                 // Arrow down, s, j
	KeyConfirm              // Space or enter: fire / select
	KeyBack                 // Escape or q: abort to menu
	KeyInterrupt            // Ctrl-C: leave immediately
)

var keyNames = [...]string{"none", "left", "right", "up", "down", "confirm", "back", "interrupt"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Source is a queue of pending keys.
type Source interface {
	// Poll returns every key queued since the last call without blocking.
	Poll() []Key
}

// Stream delivers keys from a producer goroutine through a channel.
type Stream struct {
	ch       chan Key
	done     chan struct{}
	stopOnce sync.Once
	closed   bool
}

// Ensure Stream satisfies Source.
var _ Source = (*Stream)(nil)

func newStream() *Stream {
	return &Stream{ch: make(chan Key, streamBuffer), done: make(chan struct{})}
}

// deliver queues key for Poll. It reports false once the stream is stopped.
func (s *Stream) deliver(key Key) bool {
	select {
	case s.ch <- key:
		return true
	case <-s.done:
		return false
	}
}

// Stop abandons the stream. The producer goroutine exits at its next key
// instead of waiting for a Poll that will never come. Safe to call more
// than once.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// StartStream spawns a goroutine that decodes bytes from r into keys.
// The stream reports Closed once r returns an error (EOF, closed session)
// or after Stop.
func StartStream(r io.Reader) *Stream {
	s := newStream()
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	go func() {
		defer close(s.ch)
		for {
			key, err := decodeKey(br)
			if err != nil {
				return
			}
			if key != KeyNone && !s.deliver(key) {
				return
			}
		}
	}()
	return s
}

// Poll drains all available keys (non-blocking).
func (s *Stream) Poll() []Key {
	var keys []Key
	for {
		select {
		case key, ok := <-s.ch:
			if !ok {
				s.closed = true
				return keys
			}
			keys = append(keys, key)
		default:
			return keys
		}
	}
}

// Closed reports whether the producer has stopped and every key was drained.
func (s *Stream) Closed() bool {
	return s.closed
}

// decodeKey reads one key press. Escape sequences for the arrow keys
// (ESC [ A..D and ESC O A..D) are recognised when their bytes arrived
// together with the ESC; a lone ESC is KeyBack.
func decodeKey(br *bufio.Reader) (Key, error) {
	b, err := br.ReadByte()
	if err != nil {
		return KeyNone, err
	}
	if b != '\x1b' {
		return keyForByte(b), nil
	}

	if br.Buffered() < 2 {
		return KeyBack, nil
	}
	seq, err := br.Peek(2)
	if err != nil || (seq[0] != '[' && seq[0] != 'O') {
		return KeyBack, nil
	}
	var key Key
	switch seq[1] {
	case 'A':
		key = KeyUp
	case 'B':
		key = KeyDown
	case 'C':
		key = KeyRight
	case 'D':
		key = KeyLeft
	default:
		return KeyBack, nil
	}
	if _, err := br.Discard(2); err != nil {
		return KeyNone, err
	}
	return key, nil
}

// keyForByte maps a single byte to its key.
func keyForByte(b byte) Key {
	switch b {
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'w', 'W', 'k', 'K':
		return KeyUp
	case 's', 'S', 'j', 'J':
		return KeyDown
	case ' ', '\r', '\n':
		return KeyConfirm
	case 'q', 'Q', '\x1b':
		return KeyBack
	case '\x03':
		return KeyInterrupt
	default:
		return KeyNone
	}
}
