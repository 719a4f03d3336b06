package notifyclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

var (
	// ErrUnauthorized is returned when the server rejects the credential.
	// The Manager never retries it.
	ErrUnauthorized = errors.New("notification channel credential rejected")

	// ErrClosed is returned to Open callers whose attempt was cancelled by
	// Close.
	ErrClosed = errors.New("notification channel closed")
)

// Conn is one established channel. ReadMessage blocks until the next
// message arrives or the channel fails.
type Conn interface {
	ReadMessage() ([]byte, error)
	Close() error
}

// Dialer performs the channel-open handshake with a credential.
type Dialer interface {
	Dial(ctx context.Context, credential string) (Conn, error)
}

// Handler receives every raw message delivered over the channel.
type Handler func(data []byte)

// Options tunes reconnection and observation. Zero values select the
// defaults.
type Options struct {
	// BaseDelay is the first reconnect wait; it doubles on each retry.
	BaseDelay time.Duration
	// MaxDelay caps a single reconnect wait.
	MaxDelay time.Duration
	// MaxRetries bounds reconnect attempts after a drop.
	MaxRetries uint64
	// JitterPercent randomizes each wait by up to this percentage.
	JitterPercent uint64

	// OnStateChange is called on every transition with the manager's lock
	// held. It must not call back into the Manager.
	OnStateChange func(from, to State)

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.BaseDelay <= 0 {
		o.BaseDelay = 500 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = 10
	}
	if o.JitterPercent == 0 {
		o.JitterPercent = 10
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func (o Options) backoff() retry.Backoff {
	b := retry.NewExponential(o.BaseDelay)
	b = retry.WithJitterPercent(o.JitterPercent, b)
	b = retry.WithCappedDuration(o.MaxDelay, b)
	return retry.WithMaxRetries(o.MaxRetries, b)
}

// attempt is the single in-flight initial connection shared by every
// concurrent Open call.
type attempt struct {
	done chan struct{}
	err  error
}

// Subscription is the handle returned by Open.
type Subscription struct {
	m       *Manager
	handler Handler
}

// Unsubscribe detaches the handler if it is still the active one. A later
// Open has already replaced it otherwise.
func (s *Subscription) Unsubscribe() {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.sub == s {
		s.m.sub = nil
	}
}

// Manager owns the process-wide notification channel.
//
// Every Close starts a new generation. Goroutines remember the generation
// they were started in and discard their results once it is stale, which
// is how a handshake that completes after Close is dropped.
type Manager struct {
	dialer Dialer
	opts   Options
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	gen        uint64
	credential string
	conn       Conn
	attempt    *attempt
	sub        *Subscription
	cancel     context.CancelFunc

	// dispatchMu is held while a handler runs so Close can wait for it.
	dispatchMu sync.Mutex
}

// NewManager creates a disconnected Manager.
func NewManager(dialer Dialer, opts Options) *Manager {
	opts = opts.withDefaults()
	return &Manager{
		dialer: dialer,
		opts:   opts,
		logger: opts.Logger.With("component", "notify_client"),
		state:  StateDisconnected,
	}
}

// State returns the current channel state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// setState must be called with mu held.
func (m *Manager) setState(to State) {
	from := m.state
	if from == to {
		return
	}
	m.state = to
	m.logger.Debug("channel state changed", "from", from.String(), "to", to.String())
	if m.opts.OnStateChange != nil {
		m.opts.OnStateChange(from, to)
	}
}

// Open makes handler the single active handler and ensures the channel is
// open. When connected it returns at once; while a first connection
// attempt is in flight it waits for that attempt instead of starting
// another; while reconnecting it returns at once and the new credential is
// used for the next retry. ctx only bounds the wait, not the attempt; a
// caller whose wait ends early has its handler removed.
func (m *Manager) Open(ctx context.Context, credential string, handler Handler) (*Subscription, error) {
	if credential == "" {
		return nil, fmt.Errorf("%w: empty credential", ErrUnauthorized)
	}
	sub := &Subscription{m: m, handler: handler}

	m.mu.Lock()
	m.sub = sub

	var a *attempt
	switch m.state {
	case StateConnected:
		m.credential = credential
		m.mu.Unlock()
		return sub, nil
	case StateReconnecting:
		m.credential = credential
		m.mu.Unlock()
		return sub, nil
	case StateConnecting:
		a = m.attempt
	default:
		a = &attempt{done: make(chan struct{})}
		m.attempt = a
		m.credential = credential

		epochCtx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		m.setState(StateConnecting)
		go m.connect(epochCtx, m.gen, credential, a)
	}
	m.mu.Unlock()

	select {
	case <-a.done:
		if a.err != nil {
			return nil, a.err
		}
		return sub, nil
	case <-ctx.Done():
		// The caller gets no Subscription, so it must not keep receiving.
		sub.Unsubscribe()
		return nil, ctx.Err()
	}
}

// connect performs the initial handshake. A failure is returned to the
// waiting Open callers and is not retried.
func (m *Manager) connect(ctx context.Context, gen uint64, credential string, a *attempt) {
	conn, err := m.dialer.Dial(ctx, credential)

	m.mu.Lock()
	if m.gen != gen {
		// Close already resolved the attempt.
		m.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		m.logger.Debug("discarded handshake completed after close")
		return
	}

	m.attempt = nil
	if err != nil {
		m.sub = nil
		m.stopLocked()
		m.setState(StateDisconnected)
		a.err = fmt.Errorf("open notification channel: %w", err)
		close(a.done)
		m.mu.Unlock()
		m.logger.Warn("failed to open notification channel", "error", err)
		return
	}

	m.conn = conn
	m.setState(StateConnected)
	close(a.done)
	m.mu.Unlock()

	m.logger.Info("notification channel connected")
	go m.run(ctx, gen, conn)
}

// run reads from conn until it fails, then reconnects, for as long as gen
// is current.
func (m *Manager) run(ctx context.Context, gen uint64, conn Conn) {
	for {
		for {
			data, err := conn.ReadMessage()
			if err != nil {
				m.logger.Debug("notification channel read failed", "error", err)
				break
			}
			m.dispatch(gen, data)
		}
		_ = conn.Close()

		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			return
		}
		m.conn = nil
		m.setState(StateReconnecting)
		m.mu.Unlock()

		m.logger.Info("notification channel lost, reconnecting")

		next, err := m.reconnect(ctx, gen)
		if err != nil {
			m.mu.Lock()
			if m.gen == gen {
				m.stopLocked()
				m.setState(StateDisconnected)
			}
			m.mu.Unlock()
			if !errors.Is(err, ErrClosed) {
				m.logger.Warn("notification channel gave up reconnecting", "error", err)
			}
			return
		}
		conn = next
		m.logger.Info("notification channel reconnected")
	}
}

func (m *Manager) reconnect(ctx context.Context, gen uint64) (Conn, error) {
	var conn Conn
	err := retry.Do(ctx, m.opts.backoff(), func(ctx context.Context) error {
		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			return ErrClosed
		}
		credential := m.credential
		m.mu.Unlock()

		c, err := m.dialer.Dial(ctx, credential)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				return err
			}
			m.logger.Debug("reconnect attempt failed", "error", err)
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrClosed
		}
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		_ = conn.Close()
		return nil, ErrClosed
	}
	m.conn = conn
	m.setState(StateConnected)
	return conn, nil
}

// dispatch hands data to the active handler unless gen is stale.
func (m *Manager) dispatch(gen uint64, data []byte) {
	m.dispatchMu.Lock()
	defer m.dispatchMu.Unlock()

	m.mu.Lock()
	if m.gen != gen || m.sub == nil {
		m.mu.Unlock()
		return
	}
	handler := m.sub.handler
	m.mu.Unlock()

	if handler != nil {
		handler(data)
	}
}

// stopLocked cancels the current generation's background work.
func (m *Manager) stopLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Close tears the channel down, clears the handler and settles in
// StateDisconnected. It is safe to call at any time and more than once. A
// handshake still in flight fails its waiters with ErrClosed and its late
// result is discarded. Close waits for a running handler to return, so a
// handler must not call Close itself.
func (m *Manager) Close() {
	m.mu.Lock()
	m.gen++
	m.stopLocked()
	if m.attempt != nil {
		m.attempt.err = ErrClosed
		close(m.attempt.done)
		m.attempt = nil
	}
	conn := m.conn
	m.conn = nil
	m.sub = nil
	m.credential = ""
	m.setState(StateDisconnected)
	m.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}

	// Barrier: no handler call is in progress once this returns, and any
	// later dispatch sees the new generation.
	m.dispatchMu.Lock()
	//nolint:staticcheck // empty critical section is the barrier
	m.dispatchMu.Unlock()
}
