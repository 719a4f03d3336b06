package notifyclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// TokenQueryParam carries the credential on the handshake URL.
	TokenQueryParam = "access_token"

	defaultHandshakeTimeout = 10 * time.Second
	// defaultReadWait must exceed the server's ping interval.
	defaultReadWait = 60 * time.Second
	controlWriteWait = 5 * time.Second
)

// WSDialer opens the notification channel over WebSocket.
type WSDialer struct {
	// URL is the hub endpoint, for example ws://localhost:8080/hubs/task.
	URL string
	// ReadWait is how long the channel may stay silent before it is
	// considered lost. Every server ping extends it.
	ReadWait time.Duration

	dialer *websocket.Dialer
}

// NewWSDialer returns a dialer for the hub at rawURL.
func NewWSDialer(rawURL string) *WSDialer {
	return &WSDialer{
		URL:      rawURL,
		ReadWait: defaultReadWait,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: defaultHandshakeTimeout,
		},
	}
}

// Dial implements Dialer. A 401 or 403 handshake response maps to
// ErrUnauthorized.
func (d *WSDialer) Dial(ctx context.Context, credential string) (Conn, error) {
	u, err := url.Parse(d.URL)
	if err != nil {
		return nil, fmt.Errorf("parse hub url: %w", err)
	}
	q := u.Query()
	q.Set(TokenQueryParam, credential)
	u.RawQuery = q.Encode()

	conn, resp, err := d.dialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil &&
			(resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: handshake status %d", ErrUnauthorized, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial hub %s://%s%s: %w", u.Scheme, u.Host, u.Path, err)
	}

	readWait := d.ReadWait
	if readWait <= 0 {
		readWait = defaultReadWait
	}
	return newWSConn(conn, readWait), nil
}

type wsConn struct {
	conn     *websocket.Conn
	readWait time.Duration
}

func newWSConn(conn *websocket.Conn, readWait time.Duration) *wsConn {
	c := &wsConn{conn: conn, readWait: readWait}
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(controlWriteWait))
		if err == websocket.ErrCloseSent {
			return nil
		}
		return err
	})
	return c
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.readWait))
		if kind == websocket.TextMessage {
			return data, nil
		}
	}
}

func (c *wsConn) Close() error {
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(controlWriteWait),
	)
	return c.conn.Close()
}
