package online

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rocketscienceinc/reversi-client/internal/entity"
	"github.com/rocketscienceinc/reversi-client/internal/reversi"
	"github.com/rocketscienceinc/reversi-client/internal/transport/websocket"
)

var errChannelClosed = errors.New("channel closed")

// fakeChannel is an in-memory Channel. Sends go to onSend, pushes land in the inbox.
type fakeChannel struct {
	inbox  chan *websocket.Message
	closed chan struct{}
	once   sync.Once

	mu     sync.Mutex
	sent   []string
	onSend func(ch *fakeChannel, action string, payload json.RawMessage)
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		inbox:  make(chan *websocket.Message, 64),
		closed: make(chan struct{}),
	}
}

func (that *fakeChannel) Send(action string, payload any) error {
	select {
	case <-that.closed:
		return errChannelClosed
	default:
	}

	var raw json.RawMessage
	if payload != nil {
		var err error
		if raw, err = json.Marshal(payload); err != nil {
			return err
		}
	}

	that.mu.Lock()
	that.sent = append(that.sent, action)
	hook := that.onSend
	that.mu.Unlock()

	if hook != nil {
		hook(that, action, raw)
	}

	return nil
}

func (that *fakeChannel) Receive() (*websocket.Message, error) {
	select {
	case msg := <-that.inbox:
		return msg, nil
	case <-that.closed:
		return nil, errChannelClosed
	}
}

func (that *fakeChannel) Close() error {
	that.once.Do(func() { close(that.closed) })
	return nil
}

func (that *fakeChannel) push(action string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}

	select {
	case that.inbox <- &websocket.Message{Action: action, Payload: raw}:
	case <-that.closed:
	}
}

func (that *fakeChannel) actions() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return slices.Clone(that.sent)
}

func (that *fakeChannel) isClosed() bool {
	select {
	case <-that.closed:
		return true
	default:
		return false
	}
}

// dialerFor - dialer handing out ch.
func dialerFor(ch *fakeChannel) Dialer {
	return DialerFunc(func(context.Context) (Channel, error) {
		return ch, nil
	})
}

type fakeRoom struct {
	id    string
	size  int
	board entity.Board
	turn  entity.Player
	seats map[entity.Player]*fakeChannel
	seq   int64
}

// fakeRelay pairs clients and referees moves with the offline engine.
type fakeRelay struct {
	mu    sync.Mutex
	rooms map[string]*fakeRoom
	next  int
}

func newFakeRelay() *fakeRelay {
	return &fakeRelay{rooms: make(map[string]*fakeRoom)}
}

func (that *fakeRelay) dialer() Dialer {
	return DialerFunc(func(context.Context) (Channel, error) {
		ch := newFakeChannel()
		ch.onSend = that.handle
		ch.push(eventSessionReady, sessionReadyPayload{SID: fmt.Sprintf("sid-%p", ch)})

		return ch, nil
	})
}

func (that *fakeRelay) handle(ch *fakeChannel, action string, raw json.RawMessage) {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch action {
	case actionGetOpenGames:
		games := []entity.OpenRoom{}
		for _, room := range that.rooms {
			if len(room.seats) == 1 {
				games = append(games, entity.OpenRoom{ID: room.id, Size: room.size})
			}
		}

		ch.push(eventOpenGamesList, openGamesPayload{Games: games})

	case actionCreateGame:
		var payload createGamePayload
		_ = json.Unmarshal(raw, &payload)

		that.next++
		room := &fakeRoom{
			id:    fmt.Sprintf("room-%d", that.next),
			size:  payload.BoardSize,
			board: entity.NewBoard(payload.BoardSize),
			turn:  entity.Black,
			seats: map[entity.Player]*fakeChannel{entity.Black: ch},
		}
		that.rooms[room.id] = room

		ch.push(eventGameCreated, gameCreatedPayload{GameID: room.id, PlayerColor: entity.Black, BoardSize: room.size})

	case actionJoinGame:
		var payload joinGamePayload
		_ = json.Unmarshal(raw, &payload)

		room, ok := that.rooms[payload.GameID]
		if !ok || len(room.seats) != 1 {
			ch.push(eventError, noticePayload{Message: "Game not found or full"})
			return
		}

		room.seats[entity.White] = ch
		ch.push(eventGameJoined, gameJoinedPayload{
			GameID:      room.id,
			PlayerColor: entity.White,
			BoardSize:   room.size,
			Board:       room.board,
		})

		that.broadcast(room, entity.RoomPlaying, 0, "")

	case actionMakeMove:
		var payload movePayload
		_ = json.Unmarshal(raw, &payload)

		room, color := that.seatOf(ch)
		if room == nil || color != room.turn {
			ch.push(eventMoveError, noticePayload{Message: "Not your turn"})
			return
		}

		next, flipped := reversi.Apply(room.board, entity.Move{Row: payload.Row, Col: payload.Col}, color)
		if flipped == 0 {
			ch.push(eventMoveError, noticePayload{Message: "Invalid move"})
			return
		}

		room.board = next
		message := fmt.Sprintf("Player %d moved to (%d, %d)", color, payload.Row, payload.Col)

		switch {
		case len(reversi.LegalMoves(next, color.Opponent())) > 0:
			room.turn = color.Opponent()
		case len(reversi.LegalMoves(next, color)) > 0:
			room.turn = color
		default:
			that.broadcast(room, entity.RoomFinished, winnerCode(next.Count()), message)
			return
		}

		that.broadcast(room, entity.RoomPlaying, 0, message)

	case actionLeaveGame:
		room, color := that.seatOf(ch)
		if room == nil {
			return
		}

		delete(room.seats, color)
		for _, other := range room.seats {
			other.push(eventOpponentLeft, noticePayload{Message: "Opponent left the game"})
		}
	}
}

func (that *fakeRelay) broadcast(room *fakeRoom, status entity.RoomStatus, winner int, message string) {
	room.seq++
	seq := room.seq

	for _, ch := range room.seats {
		ch.push(eventGameStateUpdate, stateUpdatePayload{
			Board:   room.board,
			Turn:    room.turn,
			Status:  status,
			Winner:  winner,
			Message: message,
			Seq:     &seq,
		})
	}
}

func (that *fakeRelay) seatOf(ch *fakeChannel) (*fakeRoom, entity.Player) {
	for _, room := range that.rooms {
		for color, seat := range room.seats {
			if seat == ch {
				return room, color
			}
		}
	}

	return nil, entity.NoPlayer
}

func winnerCode(score entity.Score) int {
	switch {
	case score.Black > score.White:
		return winnerBlack
	case score.White > score.Black:
		return winnerWhite
	default:
		return 0
	}
}
