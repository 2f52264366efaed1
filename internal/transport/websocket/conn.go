package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

var ErrClosed = errors.New("connection closed")

// Conn is a client connection to the relay. Safe for one reader and many writers.
type Conn struct {
	logger *slog.Logger

	conn *gorilla.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial - opens a connection to url, bounded by ctx.
func Dial(ctx context.Context, logger *slog.Logger, url string) (*Conn, error) {
	log := logger.With("component", "websocket", "method", "Dial")

	dialer := gorilla.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: writeWait,
	}

	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to dial relay: %w", err)
	}

	conn.SetReadLimit(maxMessageSize)

	log.Info("connected to relay", "url", url)

	return &Conn{
		logger: logger.With("component", "websocket"),
		conn:   conn,
	}, nil
}

// Send - writes one envelope.
func (that *Conn) Send(action string, payload any) error {
	msg := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}

		msg.Payload = raw
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Receive - blocks until the next envelope arrives. Returns ErrClosed once the peer is gone.
func (that *Conn) Receive() (*Message, error) {
	var msg Message

	if err := that.conn.ReadJSON(&msg); err != nil {
		if gorilla.IsCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseGoingAway) ||
			errors.Is(err, net.ErrClosed) {
			return nil, ErrClosed
		}

		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	return &msg, nil
}

// Close - sends a close frame and releases the connection.
func (that *Conn) Close() error {
	var err error

	that.closeOnce.Do(func() {
		that.writeMu.Lock()
		_ = that.conn.WriteControl(
			gorilla.CloseMessage,
			gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""),
			time.Now().Add(writeWait),
		)
		that.writeMu.Unlock()

		err = that.conn.Close()
		that.logger.Debug("connection closed")
	})

	return err
}
