package notify

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/config"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/events"
	"github.com/BetulAktoprak/task-management-system/internal/redact"
	"github.com/BetulAktoprak/task-management-system/internal/service/auth"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/multierr"
)

// Route is where the hub is mounted.
const Route = "/hubs/task"

// TokenQueryParam carries the credential on the handshake request.
const TokenQueryParam = "access_token"

// maxInboundMessage caps what a client may send; inbound messages are
// discarded anyway.
const maxInboundMessage = 4096

// Options tunes per-session transport behaviour.
type Options struct {
	SendBuffer     int
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	AllowedOrigins []string
}

// OptionsFromConfig converts the notify section of the configuration.
func OptionsFromConfig(cfg config.NotifyConfig, allowedOrigins []string) Options {
	return Options{
		SendBuffer:     cfg.SendBuffer,
		PingInterval:   time.Duration(cfg.PingIntervalSeconds) * time.Second,
		PongWait:       time.Duration(cfg.PongWaitSeconds) * time.Second,
		WriteWait:      10 * time.Second,
		AllowedOrigins: allowedOrigins,
	}
}

func (o Options) withDefaults() Options {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 64
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.PongWait <= o.PingInterval {
		o.PongWait = 2 * o.PingInterval
	}
	if o.WriteWait <= 0 {
		o.WriteWait = 10 * time.Second
	}
	return o
}

// Hub accepts notification channels and broadcasts task events to them.
type Hub struct {
	registry       *Registry
	validator      auth.TokenValidator
	opts           Options
	upgrader       websocket.Upgrader
	allowedOrigins map[string]bool
	allowedHosts   map[string]bool
	logger         *slog.Logger

	// mu orders session hand-off against Shutdown so that every read loop
	// started is waited for.
	mu      sync.Mutex
	closed  atomic.Bool
	readers sync.WaitGroup
}

var (
	_ events.Publisher = (*Hub)(nil)
	_ http.Handler     = (*Hub)(nil)
)

// NewHub creates a hub that registers sessions in registry and validates
// handshakes with validator.
func NewHub(registry *Registry, validator auth.TokenValidator, opts Options, logger *slog.Logger) *Hub {
	h := &Hub{
		registry:       registry,
		validator:      validator,
		opts:           opts.withDefaults(),
		allowedOrigins: make(map[string]bool),
		allowedHosts:   make(map[string]bool),
		logger:         logger.With("component", "notify_hub"),
	}

	for _, origin := range opts.AllowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		h.allowedOrigins[trimmed] = true
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			h.allowedHosts[parsed.Host] = true
		}
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Registry returns the hub's session registry.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// ServeHTTP performs the channel-open handshake. The credential is
// validated before the upgrade, so a rejected handshake never creates a
// channel or a session.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.IsClosed() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	log := h.logger.With("remote_addr", r.RemoteAddr, "url", redact.URL(r.URL))

	identity, err := h.validator.Validate(r.Context(), tokenFromRequest(r))
	if err != nil {
		log.Debug("handshake rejected", "error", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an error response.
		log.Debug("websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	sessionLog := h.logger.With("connection_id", id, "user_id", identity.UserID)
	session := NewSession(id, identity.UserID, newWSChannel(conn, h.opts, sessionLog))

	if err := h.registry.Register(session); err != nil {
		sessionLog.Error("failed to register session", "error", err)
		_, _ = session.close()
		return
	}
	h.mu.Lock()
	if h.closed.Load() {
		h.mu.Unlock()
		// Shutdown raced the handshake and CloseAll may already have run.
		h.registry.Unregister(id)
		return
	}
	h.readers.Add(1)
	h.mu.Unlock()

	sessionLog.Info("notification channel opened")
	go h.readLoop(conn, session, sessionLog)
}

// readLoop keeps the read deadline fresh via pongs and discards inbound
// messages. Any read error ends the session.
func (h *Hub) readLoop(conn *websocket.Conn, session *Session, log *slog.Logger) {
	defer func() {
		h.registry.Unregister(session.ID)
		log.Info("notification channel closed")
		h.readers.Done()
	}()

	conn.SetReadLimit(maxInboundMessage)
	_ = conn.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("channel read error", "error", err)
			}
			return
		}
	}
}

// Publish broadcasts a task event to every open session. It is detached
// from ctx cancellation and never reports delivery failures.
func (h *Hub) Publish(ctx context.Context, name events.Name, payload domain.TaskSnapshot) {
	if h.IsClosed() {
		return
	}
	h.registry.BroadcastAll(context.WithoutCancel(ctx), name, payload)
}

// Shutdown stops accepting handshakes, closes every session and waits for
// their read loops to finish or ctx to expire.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	if h.closed.Load() {
		h.mu.Unlock()
		return nil
	}
	h.closed.Store(true)
	h.mu.Unlock()

	err := h.registry.CloseAll()

	done := make(chan struct{})
	go func() {
		h.readers.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}

	if err != nil {
		h.logger.Warn("notification hub shut down with errors", "error", err)
	} else {
		h.logger.Info("notification hub shut down")
	}
	return err
}

// tokenFromRequest prefers the access_token query parameter, which is the
// only option for browser WebSocket clients, and falls back to a bearer
// Authorization header.
func tokenFromRequest(r *http.Request) string {
	if token := r.URL.Query().Get(TokenQueryParam); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	if len(h.allowedOrigins) > 0 {
		return h.allowedHosts[parsed.Host]
	}
	return strings.EqualFold(parsed.Host, r.Host)
}

// IsClosed reports whether Shutdown has been called.
func (h *Hub) IsClosed() bool {
	return h.closed.Load()
}
