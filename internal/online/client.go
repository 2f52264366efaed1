// Package online mirrors a relay-hosted game. The relay owns the authoritative state;
// the client applies its events in receipt order and gates local input.
package online

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
	"github.com/rocketscienceinc/reversi-client/internal/transport/websocket"
)

type engine interface {
	LegalMoves(ctx context.Context, board entity.Board, player entity.Player) ([]entity.Move, error)
	AIMove(ctx context.Context, board entity.Board, player entity.Player, difficulty entity.Difficulty) (*entity.AIMove, error)
}

type store interface {
	Snapshot() entity.GameSession
	Update(fn func(game *entity.GameSession) error) error
	Notify(err error)
}

type reply struct {
	msg *websocket.Message
	err error
}

// waiter is the single outstanding request waiting for its acknowledgement.
type waiter struct {
	expect string
	result chan reply
}

type Client struct {
	logger *slog.Logger

	dialer     Dialer
	engine     engine
	store      store
	ackTimeout time.Duration

	gameID   string
	handlers map[string]func(ctx context.Context, msg *websocket.Message) error

	mu      sync.Mutex
	channel Channel
	cancel  context.CancelFunc
	done    chan struct{}
	closing bool
	waiter  *waiter
	moving  bool
	lastSeq int64
	hasSeq  bool
	relayID string
}

// New - binds a client to the session currently held by store.
func New(logger *slog.Logger, dialer Dialer, engine engine, store store, ackTimeout time.Duration) *Client {
	client := &Client{
		logger:     logger.With("component", "online"),
		dialer:     dialer,
		engine:     engine,
		store:      store,
		ackTimeout: ackTimeout,
		gameID:     store.Snapshot().ID,
	}

	client.handlers = map[string]func(context.Context, *websocket.Message) error{
		eventSessionReady:    client.handleSessionReady,
		eventGameCreated:     client.handleGameCreated,
		eventGameJoined:      client.handleGameJoined,
		eventGameStateUpdate: client.handleGameStateUpdate,
		eventOpponentLeft:    client.handleOpponentLeft,
		eventMoveError:       client.handleMoveError,
		eventOpenGamesList:   client.handleOpenGamesList,
		eventError:           client.handleError,
	}

	return client
}

// Start - connects to the relay.
func (that *Client) Start(ctx context.Context) error {
	return that.Connect(ctx)
}

// Connect - dials the relay and starts applying its events. No-op when already connected.
func (that *Client) Connect(ctx context.Context) error {
	log := that.logger.With("method", "Connect")

	that.mu.Lock()
	connected := that.channel != nil
	that.mu.Unlock()

	if connected {
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, that.ackTimeout)
	defer cancel()

	channel, err := that.dialer.Dial(dialCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: relay did not answer within %s", apperror.ErrStalled, that.ackTimeout)
		}

		return fmt.Errorf("%w: %w", apperror.ErrNotConnected, err)
	}

	loopCtx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})

	that.mu.Lock()
	that.channel = channel
	that.cancel = stop
	that.done = done
	that.closing = false
	that.moving = false
	that.hasSeq = false
	that.mu.Unlock()

	go that.receive(loopCtx, channel, done)

	log.Info("connected to relay")

	return nil
}

// Connected - reports whether the relay channel is up.
func (that *Client) Connected() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.channel != nil
}

// RelayID - session id announced by the relay, empty until session_ready.
func (that *Client) RelayID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.relayID
}

// Play - submits a move for the local colour.
func (that *Client) Play(ctx context.Context, move entity.Move) error {
	return that.SubmitMove(ctx, move)
}

// SubmitMove - sends a move to the relay. The local state changes only when the relay
// answers with a state update or a move error.
func (that *Client) SubmitMove(_ context.Context, move entity.Move) error {
	game := that.store.Snapshot()

	that.mu.Lock()

	if err := that.confirmMovable(&game); err != nil {
		that.mu.Unlock()
		return err
	}

	that.moving = true
	channel := that.channel
	that.mu.Unlock()

	if err := channel.Send(actionMakeMove, movePayload{Row: move.Row, Col: move.Col}); err != nil {
		that.mu.Lock()
		that.moving = false
		that.mu.Unlock()

		return fmt.Errorf("failed to send move: %w: %w", apperror.ErrNotConnected, err)
	}

	that.logger.Debug("move submitted", "move", move, "room", game.Room.ID)

	return nil
}

// confirmMovable - must be called with mu held.
func (that *Client) confirmMovable(game *entity.GameSession) error {
	switch {
	case that.channel == nil:
		return apperror.ErrNotConnected
	case game.ID != that.gameID:
		return apperror.ErrNoGame
	case game.Room == nil:
		return apperror.ErrNoActiveRoom
	case game.Terminal || game.Room.IsOver():
		return apperror.ErrGameFinished
	case !game.Room.IsPlaying() || game.CurrentPlayer != game.Room.Color:
		return apperror.ErrNotYourTurn
	case that.moving:
		return apperror.ErrBusy
	default:
		return nil
	}
}

// Advance - online games have no automatic moves.
func (that *Client) Advance(_ context.Context) (bool, error) {
	return false, nil
}

// Hint - engine suggestion for the local colour, never sent to the relay.
func (that *Client) Hint(ctx context.Context) (*entity.Move, error) {
	game := that.store.Snapshot()

	that.mu.Lock()
	err := that.confirmMovable(&game)
	that.mu.Unlock()

	if err != nil {
		return nil, err
	}

	result, err := that.engine.AIMove(ctx, game.Board, game.Room.Color, game.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to get hint: %w", err)
	}

	err = that.update(func(game *entity.GameSession) error {
		game.Hint = &result.Move
		game.Stats = &result.Stats

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result.Move, nil
}

// Close - leaves the live room and drops the channel.
func (that *Client) Close(ctx context.Context) error {
	if game := that.store.Snapshot(); game.ID == that.gameID && game.Room != nil && !game.Room.IsOver() {
		if err := that.LeaveRoom(ctx); err != nil {
			that.logger.Warn("failed to leave room", "error", err)
		}
	}

	that.mu.Lock()
	channel, stop, done := that.channel, that.cancel, that.done
	that.closing = true
	that.mu.Unlock()

	if channel == nil {
		return nil
	}

	stop()

	if err := channel.Close(); err != nil {
		return fmt.Errorf("failed to close channel: %w", err)
	}

	select {
	case <-done:
	case <-ctx.Done():
	}

	return nil
}

// request - sends action and waits for the expected acknowledgement.
func (that *Client) request(ctx context.Context, action string, payload any, expect string) (*websocket.Message, error) {
	w := &waiter{expect: expect, result: make(chan reply, 1)}

	that.mu.Lock()

	if that.channel == nil {
		that.mu.Unlock()
		return nil, apperror.ErrNotConnected
	}

	if that.waiter != nil {
		that.mu.Unlock()
		return nil, apperror.ErrBusy
	}

	that.waiter = w
	channel := that.channel
	that.mu.Unlock()

	defer that.dropWaiter(w)

	if err := channel.Send(action, payload); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w: %w", action, apperror.ErrNotConnected, err)
	}

	timer := time.NewTimer(that.ackTimeout)
	defer timer.Stop()

	select {
	case r := <-w.result:
		return r.msg, r.err
	case <-timer.C:
		return nil, fmt.Errorf("%w: no %s within %s", apperror.ErrStalled, expect, that.ackTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (that *Client) dropWaiter(w *waiter) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.waiter == w {
		that.waiter = nil
	}
}

// deliver - hands msg to the outstanding request when it is the awaited answer or its error.
func (that *Client) deliver(msg *websocket.Message, err error) bool {
	that.mu.Lock()

	w := that.waiter
	if w == nil || (w.expect != msg.Action && !answersWithError(w.expect, msg.Action)) {
		that.mu.Unlock()
		return false
	}

	that.waiter = nil
	that.mu.Unlock()

	w.result <- reply{msg: msg, err: err}

	return true
}

// answersWithError - the relay reports failed create and join requests with an error event.
// Errors about anything else never answer a pending request.
func answersWithError(expect, action string) bool {
	return action == eventError && (expect == eventGameCreated || expect == eventGameJoined)
}

// receive - applies relay events one at a time, in order, until the channel fails.
func (that *Client) receive(ctx context.Context, channel Channel, done chan struct{}) {
	defer close(done)

	log := that.logger.With("method", "receive")

	for {
		msg, err := channel.Receive()
		if err != nil {
			that.lost(channel, err)
			return
		}

		err = that.dispatch(ctx, msg)
		if err == nil {
			continue
		}

		if errors.Is(err, apperror.ErrProtocol) {
			log.Error("closing channel", "action", msg.Action, "error", err)
			_ = channel.Close()
			that.lost(channel, err)

			return
		}

		log.Warn("relay event failed", "action", msg.Action, "error", err)
		that.store.Notify(err)
	}
}

func (that *Client) dispatch(ctx context.Context, msg *websocket.Message) error {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		that.logger.Debug("ignoring unknown event", "action", msg.Action)
		return nil
	}

	err := handler(ctx, msg)
	if errors.Is(err, apperror.ErrProtocol) {
		return err
	}

	if that.deliver(msg, err) {
		return nil
	}

	return err
}

// lost - tears down the connection state after the channel failed or was closed.
func (that *Client) lost(channel Channel, cause error) {
	that.mu.Lock()

	if that.channel != channel {
		that.mu.Unlock()
		return
	}

	intentional := that.closing
	w := that.waiter

	that.channel = nil
	that.waiter = nil
	that.moving = false
	that.cancel()
	that.mu.Unlock()

	if w != nil {
		w.result <- reply{err: apperror.ErrNotConnected}
	}

	if intentional {
		return
	}

	that.logger.Warn("relay connection lost", "error", cause)

	err := that.update(func(game *entity.GameSession) error {
		if game.Room != nil && !game.Room.IsOver() {
			game.Room = nil
			game.LegalMoves = nil
		}

		return nil
	})
	if err != nil {
		that.logger.Debug("session gone, nothing to invalidate", "error", err)
	}

	if errors.Is(cause, apperror.ErrProtocol) {
		that.store.Notify(cause)
		return
	}

	that.store.Notify(fmt.Errorf("%w: %w", apperror.ErrNotConnected, cause))
}

// update - store update scoped to the bound session.
func (that *Client) update(fn func(game *entity.GameSession) error) error {
	return that.store.Update(func(game *entity.GameSession) error {
		if game.ID != that.gameID {
			return apperror.ErrNoGame
		}

		return fn(game)
	})
}
