package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
)

// Fanout is a Publisher that forwards every event to the publishers
// registered with it, in registration order.
type Fanout struct {
	publishers []Publisher
	mu         sync.RWMutex
	logger     *slog.Logger
}

var _ Publisher = (*Fanout)(nil)

// NewFanout creates an empty Fanout.
func NewFanout(logger *slog.Logger) *Fanout {
	return &Fanout{
		publishers: make([]Publisher, 0),
		logger:     logger.With("component", "event_fanout"),
	}
}

// Register adds a publisher to receive events.
func (f *Fanout) Register(p Publisher) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishers = append(f.publishers, p)
	f.logger.Debug("registered publisher", "publisher_count", len(f.publishers))
}

// Publish forwards the event to all registered publishers. A panicking
// publisher is logged and does not stop delivery to the rest.
func (f *Fanout) Publish(ctx context.Context, name Name, payload domain.TaskSnapshot) {
	f.mu.RLock()
	publishers := make([]Publisher, len(f.publishers))
	copy(publishers, f.publishers)
	f.mu.RUnlock()

	f.logger.Debug("publishing event",
		"event", name,
		"task_id", payload.ID,
		"publisher_count", len(publishers))

	if len(publishers) == 0 {
		f.logger.Warn("no publishers registered for event",
			"event", name,
			"task_id", payload.ID)
		return
	}

	for i, p := range publishers {
		f.publishOne(ctx, i, p, name, payload)
	}
}

func (f *Fanout) publishOne(ctx context.Context, index int, p Publisher, name Name, payload domain.TaskSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("publisher panicked",
				"panic", r,
				"publisher_index", index,
				"event", name,
				"task_id", payload.ID)
		}
	}()
	p.Publish(ctx, name, payload)
}

// LogPublisher records each event at debug level. It is registered next to
// the hub so that published notifications show up in server logs.
type LogPublisher struct {
	Logger *slog.Logger
}

// Publish logs the event.
func (l LogPublisher) Publish(ctx context.Context, name Name, payload domain.TaskSnapshot) {
	l.Logger.DebugContext(ctx, "task notification published",
		"event", name,
		"task_id", payload.ID,
		"project_id", payload.ProjectID,
		"assigned_user_id", payload.AssignedUserID)
}
