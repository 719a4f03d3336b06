package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/events"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"
)

// ErrDuplicateSession is returned by Register for an id that is already
// registered.
var ErrDuplicateSession = errors.New("session already registered")

// ErrSessionNotOpening is returned by Register for a session that has
// already been opened or closed.
var ErrSessionNotOpening = errors.New("session is not opening")

const defaultBroadcastConcurrency = 16

// Registry is the set of open sessions keyed by connection id. The map is
// guarded by mu; sends happen outside the lock on a snapshot.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	concurrency int
	logger      *slog.Logger
}

// NewRegistry creates an empty registry. concurrency bounds the goroutines
// used by one BroadcastAll.
func NewRegistry(concurrency int, logger *slog.Logger) *Registry {
	if concurrency <= 0 {
		concurrency = defaultBroadcastConcurrency
	}
	return &Registry{
		sessions:    make(map[string]*Session),
		concurrency: concurrency,
		logger:      logger.With("component", "session_registry"),
	}
}

// Register adds an opening session and moves it to StateOpen.
func (r *Registry) Register(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, s.ID)
	}
	if !s.transition(StateOpening, StateOpen) {
		return fmt.Errorf("%w: %s is %s", ErrSessionNotOpening, s.ID, s.State())
	}
	r.sessions[s.ID] = s

	r.logger.Debug("session registered",
		"connection_id", s.ID,
		"user_id", s.UserID,
		"session_count", len(r.sessions))
	return nil
}

// Unregister removes and closes the session. Unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	remaining := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return
	}

	if _, err := s.close(); err != nil {
		r.logger.Debug("error closing session channel", "connection_id", id, "error", err)
	}
	r.logger.Debug("session unregistered",
		"connection_id", id,
		"user_id", s.UserID,
		"session_count", remaining)
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// BroadcastAll sends the event to every session registered when the call
// starts and returns how many accepted it. Sessions whose channel fails are
// unregistered; the rest are unaffected.
func (r *Registry) BroadcastAll(ctx context.Context, name events.Name, payload domain.TaskSnapshot) int {
	data, err := events.Encode(name, payload)
	if err != nil {
		r.logger.Error("failed to encode broadcast", "error", err, "event", name)
		return 0
	}

	sessions := r.snapshot()
	if len(sessions) == 0 {
		return 0
	}

	var delivered atomic.Int64
	p := pool.New().WithMaxGoroutines(r.concurrency)
	for _, s := range sessions {
		p.Go(func() {
			if err := s.channel.Send(ctx, data); err != nil {
				r.logger.Warn("delivery failed, dropping session",
					"connection_id", s.ID,
					"user_id", s.UserID,
					"event", name,
					"error", err)
				r.Unregister(s.ID)
				return
			}
			delivered.Add(1)
		})
	}
	p.Wait()

	r.logger.Debug("broadcast complete",
		"event", name,
		"task_id", payload.ID,
		"sessions", len(sessions),
		"delivered", delivered.Load())
	return int(delivered.Load())
}

// CloseAll unregisters and closes every session, combining close errors.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		sessions = append(sessions, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	var errs error
	for _, s := range sessions {
		if _, err := s.close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("close session %s: %w", s.ID, err))
		}
	}
	return errs
}
