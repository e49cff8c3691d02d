package render

import "github.com/tomz197/invaders/internal/draw"

// Relay forwards frames from in to the returned channel in the order they
// were sent. Frames the consumer has not taken yet wait in a queue that
// grows without limit, so a sender on in is never held up by a slow
// consumer. Once in is closed and every queued frame has been delivered,
// the returned channel is closed.
func Relay(in <-chan draw.Frame) <-chan draw.Frame {
	out := make(chan draw.Frame)
	go func() {
		defer close(out)
		var queue []draw.Frame
		for in != nil || len(queue) > 0 {
			// A nil channel never becomes ready, which disables the send case
			// while the queue is empty.
			var send chan<- draw.Frame
			var next draw.Frame
			if len(queue) > 0 {
				send = out
				next = queue[0]
			}

			select {
			case f, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				queue = append(queue, f)
			case send <- next:
				queue[0] = draw.Frame{}
				queue = queue[1:]
			}
		}
	}()
	return out
}
