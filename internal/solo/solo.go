package solo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/motus-games/motus/internal/logging"
)

// Session is one single-player game. The target word stays server side,
// clients only ever hold the session id.
type Session struct {
	ID        string
	Word      string
	CreatedAt time.Time
}

type Registry struct {
	mtx      sync.RWMutex
	sessions map[string]*Session

	ttl           time.Duration
	sweepInterval time.Duration
}

func NewRegistry(ttl, sweepInterval time.Duration) *Registry {
	return &Registry{
		sessions:      make(map[string]*Session),
		ttl:           ttl,
		sweepInterval: sweepInterval,
	}
}

// Create opens a solo session for the given target word.
func (r *Registry) Create(word string) *Session {
	session := &Session{
		ID:        uuid.NewString(),
		Word:      word,
		CreatedAt: time.Now(),
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.sessions[session.ID] = session
	return session
}

// Word resolves a session id to its target word.
func (r *Registry) Word(id string) (string, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return "", false
	}
	return session.Word, true
}

func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.sessions)
}

// Run sweeps expired solo sessions until the context is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := r.sweep(time.Now()); dropped > 0 {
				logging.FromContext(ctx).Infof("dropped %d expired solo sessions", dropped)
			}
		}
	}
}

func (r *Registry) sweep(now time.Time) int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	dropped := 0
	for id, session := range r.sessions {
		if now.Sub(session.CreatedAt) > r.ttl {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}
