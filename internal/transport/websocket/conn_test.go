package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEchoRelay - relay that answers every envelope with "<action>:ack" and the same payload.
func newEchoRelay(t *testing.T) string {
	t.Helper()

	upgrader := gorilla.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}

			msg.Action += ":ack"
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestConn_SendReceive(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("Envelope round trip through the relay", func(t *testing.T) {
		// Given: a connection to an echoing relay
		conn, err := Dial(ctx, logger, newEchoRelay(t))
		require.NoError(t, err)
		defer conn.Close()

		// When: sending a create_game request
		require.NoError(t, conn.Send("create_game", map[string]int{"board_size": 8}))

		// Then: the acknowledgement carries the same payload
		msg, err := conn.Receive()
		require.NoError(t, err)
		assert.Equal(t, "create_game:ack", msg.Action)

		var payload struct {
			BoardSize int `json:"board_size"`
		}
		require.NoError(t, msg.Decode(&payload))
		assert.Equal(t, 8, payload.BoardSize)
	})

	t.Run("Nil payload is omitted", func(t *testing.T) {
		conn, err := Dial(ctx, logger, newEchoRelay(t))
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Send("get_open_games", nil))

		msg, err := conn.Receive()
		require.NoError(t, err)
		assert.Equal(t, "get_open_games:ack", msg.Action)
		assert.Empty(t, msg.Payload)
	})

	t.Run("Receive after Close fails", func(t *testing.T) {
		conn, err := Dial(ctx, logger, newEchoRelay(t))
		require.NoError(t, err)

		require.NoError(t, conn.Close())
		require.NoError(t, conn.Close())

		_, err = conn.Receive()
		assert.Error(t, err)
	})

	t.Run("Dial to a missing relay fails", func(t *testing.T) {
		_, err := Dial(ctx, logger, "ws://127.0.0.1:1/ws")
		assert.Error(t, err)
	})
}

func TestMessage_Decode(t *testing.T) {
	msg := Message{Action: "game_created", Payload: json.RawMessage(`{"game_id":"42"}`)}

	var payload struct {
		GameID string `json:"game_id"`
	}
	require.NoError(t, msg.Decode(&payload))
	assert.Equal(t, "42", payload.GameID)

	empty := Message{Action: "noop"}
	assert.NoError(t, empty.Decode(&payload))
}
