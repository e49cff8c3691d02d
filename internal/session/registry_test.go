package session

import (
	"context"
	"testing"
	"time"
)

func TestRegisterAssignsIDs(t *testing.T) {
	r := NewRegistry(nil)
	a := r.Register(context.Background(), "alice")
	b := r.Register(context.Background(), "bob")

	if a.ID == b.ID {
		t.Fatalf("duplicate id %d", a.ID)
	}
	if r.Count() != 2 {
		t.Fatalf("count = %d, want 2", r.Count())
	}
	if a.Context().Err() != nil {
		t.Fatalf("fresh session already cancelled")
	}
}

func TestUnregisterCancels(t *testing.T) {
	r := NewRegistry(nil)
	h := r.Register(context.Background(), "alice")

	r.Unregister(h.ID)
	r.Unregister(h.ID) // second call is a no-op

	if r.Count() != 0 {
		t.Fatalf("count = %d, want 0", r.Count())
	}
	if h.Context().Err() == nil {
		t.Fatalf("unregistered session not cancelled")
	}
}

func TestParentCancellationPropagates(t *testing.T) {
	r := NewRegistry(nil)
	parent, cancel := context.WithCancel(context.Background())
	h := r.Register(parent, "alice")
	cancel()

	select {
	case <-h.Context().Done():
	case <-time.After(time.Second):
		t.Fatalf("session context outlived its parent")
	}
}

func TestShutdownCancelsAndWaits(t *testing.T) {
	r := NewRegistry(nil)
	r.pollInterval = 5 * time.Millisecond

	// Each fake session leaves once its context is cancelled.
	for _, user := range []string{"alice", "bob", "carol"} {
		h := r.Register(context.Background(), user)
		go func() {
			<-h.Context().Done()
			r.Unregister(h.ID)
		}()
	}

	if remaining := r.Shutdown(2 * time.Second); remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
}

func TestShutdownTimesOut(t *testing.T) {
	r := NewRegistry(nil)
	r.pollInterval = 5 * time.Millisecond
	h := r.Register(context.Background(), "stubborn")

	start := time.Now()
	if remaining := r.Shutdown(30 * time.Millisecond); remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("shutdown ignored its timeout")
	}
	if h.Context().Err() == nil {
		t.Fatalf("stubborn session was not cancelled")
	}
}
