package notifyclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/BetulAktoprak/task-management-system/internal/events"
)

// DefaultDedupWindow is how long a repeat of the same event is suppressed.
const DefaultDedupWindow = 5 * time.Second

var errMalformed = errors.New("malformed notification")

type dedupKey struct {
	name   events.Name
	taskID int64
}

// Filter turns raw channel messages into the events the local user should
// see. Safe for concurrent use.
type Filter struct {
	userID int64
	next   func(events.Message)
	window time.Duration
	logger *slog.Logger

	// seen holds one entry per delivered key until the window after its
	// first delivery ends. Hits do not extend the entry.
	seen *ttlcache.Cache[dedupKey, struct{}]
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithWindow sets the deduplication window.
func WithWindow(d time.Duration) FilterOption {
	return func(f *Filter) {
		if d > 0 {
			f.window = d
		}
	}
}

// WithFilterLogger sets the logger used for dropped messages.
func WithFilterLogger(logger *slog.Logger) FilterOption {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFilter creates a Filter for userID that forwards accepted events to
// next.
func NewFilter(userID int64, next func(events.Message), opts ...FilterOption) *Filter {
	f := &Filter{
		userID: userID,
		next:   next,
		window: DefaultDedupWindow,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.seen = ttlcache.New(
		ttlcache.WithTTL[dedupKey, struct{}](f.window),
		ttlcache.WithDisableTouchOnHit[dedupKey, struct{}](),
	)
	return f
}

// Handle is a Handler. Malformed and unknown messages are dropped and
// logged at debug level.
func (f *Filter) Handle(raw []byte) {
	msg, err := decodeMessage(raw)
	if err != nil {
		f.logger.Debug("dropped notification", "error", err)
		return
	}

	if msg.Name == events.TaskAssigned && !msg.Payload.IsAssignedTo(f.userID) {
		return
	}

	if !f.admit(dedupKey{name: msg.Name, taskID: msg.Payload.ID}) {
		f.logger.Debug("suppressed duplicate notification",
			"event", string(msg.Name), "task_id", msg.Payload.ID)
		return
	}

	if f.next != nil {
		f.next(msg)
	}
}

// admit records key and reports whether it was not already seen within the
// window. Expired entries are dropped on the way in; the cache runs no
// cleanup goroutine.
func (f *Filter) admit(key dedupKey) bool {
	f.seen.DeleteExpired()
	_, found := f.seen.GetOrSet(key, struct{}{})
	return !found
}

// tracked returns the number of unexpired remembered keys.
func (f *Filter) tracked() int {
	return f.seen.Len()
}

func decodeMessage(raw []byte) (events.Message, error) {
	var msg events.Message

	normalized, err := normalizeKeys(raw)
	if err != nil {
		return msg, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if err := json.Unmarshal(normalized, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if !msg.Name.Valid() {
		return msg, fmt.Errorf("%w: unknown event %q", errMalformed, msg.Name)
	}
	if msg.Payload.ID <= 0 {
		return msg, fmt.Errorf("%w: missing task id", errMalformed)
	}
	return msg, nil
}
