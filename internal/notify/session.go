package notify

import (
	"context"
	"sync/atomic"
	"time"
)

// Channel is the push side of one open connection.
type Channel interface {
	// Send queues msg for delivery. An error means the channel can no
	// longer be used.
	Send(ctx context.Context, msg []byte) error

	// Close tears the channel down. It must be safe to call more than once.
	Close() error
}

// State is the lifecycle stage of a session.
type State int32

const (
	StateOpening State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the server-side record of one authenticated channel. Only the
// Registry moves it past StateOpening.
type Session struct {
	ID       string
	UserID   int64
	OpenedAt time.Time

	channel Channel
	state   atomic.Int32
}

// NewSession creates a session in StateOpening.
func NewSession(id string, userID int64, channel Channel) *Session {
	s := &Session{
		ID:       id,
		UserID:   userID,
		OpenedAt: time.Now().UTC(),
		channel:  channel,
	}
	s.state.Store(int32(StateOpening))
	return s
}

// State returns the session's current lifecycle stage.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) transition(from, to State) bool {
	return s.state.CompareAndSwap(int32(from), int32(to))
}

// close moves the session to StateClosed and closes its channel once.
// It reports whether this call did the closing.
func (s *Session) close() (bool, error) {
	for {
		cur := s.State()
		if cur == StateClosed {
			return false, nil
		}
		if s.transition(cur, StateClosed) {
			return true, s.channel.Close()
		}
	}
}
