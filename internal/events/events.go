package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
)

// Name identifies the kind of task notification.
type Name string

const (
	// TaskUpdated is published after any committed create, update or
	// assignment. Every listener that keeps a task list cares about it.
	TaskUpdated Name = "TaskUpdated"

	// TaskAssigned is published when a task gains an assignee. Clients only
	// surface it to the assignee.
	TaskAssigned Name = "TaskAssigned"
)

// Valid reports whether n is a known event name.
func (n Name) Valid() bool {
	return n == TaskUpdated || n == TaskAssigned
}

// Message is the envelope pushed over a notification channel, one per
// mutation.
type Message struct {
	Name    Name                `json:"name"`
	Payload domain.TaskSnapshot `json:"payload"`
}

// Encode serializes a Message for the wire.
func Encode(name Name, payload domain.TaskSnapshot) ([]byte, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("unknown event name %q", name)
	}
	data, err := json.Marshal(Message{Name: name, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", name, err)
	}
	return data, nil
}

// Publisher fans a task notification out to interested parties.
// Publish is best-effort and fire-and-forget: it never reports delivery
// failures, and callers must not make their own success depend on it.
type Publisher interface {
	Publish(ctx context.Context, name Name, payload domain.TaskSnapshot)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, name Name, payload domain.TaskSnapshot)

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, name Name, payload domain.TaskSnapshot) {
	f(ctx, name, payload)
}

// Nop discards every event.
type Nop struct{}

var _ Publisher = Nop{}

// Publish does nothing.
func (Nop) Publish(context.Context, Name, domain.TaskSnapshot) {}
