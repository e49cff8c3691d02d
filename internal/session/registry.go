// Package session tracks the games running on a multi-user server so they
// can be cancelled together at shutdown.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const defaultPollInterval = 200 * time.Millisecond

// Handle is one registered session.
type Handle struct {
	ID      int
	User    string
	Started time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Context is cancelled when the session is unregistered or the registry
// shuts down.
func (h *Handle) Context() context.Context {
	return h.ctx
}

// Registry holds every live session.
type Registry struct {
	mu           sync.RWMutex
	sessions     map[int]*Handle
	nextID       int
	logger       *log.Logger
	pollInterval time.Duration
}

// NewRegistry creates an empty registry. A nil logger discards.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		sessions:     make(map[int]*Handle),
		nextID:       1,
		logger:       logger,
		pollInterval: defaultPollInterval,
	}
}

// Register adds a session for user whose context derives from parent.
func (r *Registry) Register(parent context.Context, user string) *Handle {
	ctx, cancel := context.WithCancel(parent)

	r.mu.Lock()
	h := &Handle{
		ID:      r.nextID,
		User:    user,
		Started: time.Now(),
		ctx:     ctx,
		cancel:  cancel,
	}
	r.nextID++
	r.sessions[h.ID] = h
	active := len(r.sessions)
	r.mu.Unlock()

	r.logger.Info("session registered", "id", h.ID, "user", user, "active", active)
	return h
}

// Unregister cancels and removes a session. Unknown ids are ignored.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	h, ok := r.sessions[id]
	delete(r.sessions, id)
	active := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return
	}
	h.cancel()
	r.logger.Info("session unregistered",
		"id", id,
		"user", h.User,
		"duration", time.Since(h.Started).Round(time.Second),
		"active", active)
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Shutdown cancels every session and waits for all of them to unregister,
// up to timeout. It returns how many were still registered when it gave up.
func (r *Registry) Shutdown(timeout time.Duration) int {
	r.mu.RLock()
	for _, h := range r.sessions {
		h.cancel()
	}
	r.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		remaining := r.Count()
		if remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			r.logger.Warn("shutdown timed out", "remaining", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}
