package input

import "github.com/gdamore/tcell/v2"

// StartScreenStream spawns a goroutine that converts tcell key events into
// keys. Resize events repaint the screen from tcell's own buffer. The
// stream closes when the screen is finalized.
func StartScreenStream(screen tcell.Screen) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if key := KeyFromEvent(ev); key != KeyNone && !s.deliver(key) {
					return
				}
			}
		}
	}()
	return s
}

// KeyFromEvent maps a tcell key event to a key.
func KeyFromEvent(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyEnter:
		return KeyConfirm
	case tcell.KeyEscape:
		return KeyBack
	case tcell.KeyCtrlC:
		return KeyInterrupt
	case tcell.KeyRune:
		r := ev.Rune()
		if r > 0x7f {
			return KeyNone
		}
		return keyForByte(byte(r))
	default:
		return KeyNone
	}
}
