package online

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/reversi-client/internal/transport/websocket"
)

// Channel is an ordered, bidirectional event stream to the relay.
type Channel interface {
	Send(action string, payload any) error
	Receive() (*websocket.Message, error)
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context) (Channel, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context) (Channel, error)

func (that DialerFunc) Dial(ctx context.Context) (Channel, error) {
	return that(ctx)
}

// WebsocketDialer - dials the relay at url over websocket.
func WebsocketDialer(logger *slog.Logger, url string) Dialer {
	return DialerFunc(func(ctx context.Context) (Channel, error) {
		conn, err := websocket.Dial(ctx, logger, url)
		if err != nil {
			return nil, err
		}

		return conn, nil
	})
}
