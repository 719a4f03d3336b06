package notify

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Channel errors.
var (
	ErrChannelClosed  = errors.New("channel closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// wsChannel is a Channel over a gorilla WebSocket connection. Messages are
// queued on send and written by a single write pump goroutine, which also
// sends keepalive pings.
type wsChannel struct {
	conn         *websocket.Conn
	send         chan []byte
	done         chan struct{}
	closeOnce    sync.Once
	pingInterval time.Duration
	writeWait    time.Duration
	logger       *slog.Logger
}

func newWSChannel(conn *websocket.Conn, opts Options, logger *slog.Logger) *wsChannel {
	c := &wsChannel{
		conn:         conn,
		send:         make(chan []byte, opts.SendBuffer),
		done:         make(chan struct{}),
		pingInterval: opts.PingInterval,
		writeWait:    opts.WriteWait,
		logger:       logger,
	}
	go c.writePump()
	return c
}

// Send never blocks: a full queue means the peer is too slow.
func (c *wsChannel) Send(ctx context.Context, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}
	select {
	case c.send <- msg:
		return nil
	case <-c.done:
		return ErrChannelClosed
	default:
		return ErrSendBufferFull
	}
}

// Close stops the write pump and closes the connection after a best-effort
// close frame.
func (c *wsChannel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(c.writeWait))
		if cerr := c.conn.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = cerr
		}
	})
	return err
}

func (c *wsChannel) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Debug("write failed", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeWait)); err != nil {
				c.logger.Debug("ping failed", "error", err)
				return
			}
		case <-c.done:
			return
		}
	}
}
