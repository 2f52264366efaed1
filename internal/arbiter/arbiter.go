// Package arbiter runs local games: it sequences human and AI turns against the
// engine and decides passes and game end.
package arbiter

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

type engine interface {
	Init(ctx context.Context, size int) (entity.Board, error)
	LegalMoves(ctx context.Context, board entity.Board, player entity.Player) ([]entity.Move, error)
	ApplyMove(ctx context.Context, board entity.Board, move entity.Move, player entity.Player) (entity.Board, error)
	AIMove(ctx context.Context, board entity.Board, player entity.Player, difficulty entity.Difficulty) (*entity.AIMove, error)
}

type store interface {
	Snapshot() entity.GameSession
	Update(fn func(game *entity.GameSession) error) error
}

type Arbiter struct {
	logger *slog.Logger

	engine engine
	store  store
	seats  Seats

	gameID string
	closed atomic.Bool
}

// New - binds an arbiter to the session currently held by store.
func New(logger *slog.Logger, engine engine, store store, seats Seats) *Arbiter {
	return &Arbiter{
		logger: logger.With("component", "arbiter"),
		engine: engine,
		store:  store,
		seats:  seats,
		gameID: store.Snapshot().ID,
	}
}

// Start - loads the opening position from the engine and surfaces Black's moves.
func (that *Arbiter) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	snapshot := that.store.Snapshot()

	board, err := that.engine.Init(ctx, snapshot.Size)
	if err != nil {
		return fmt.Errorf("failed to init game: %w", err)
	}

	if err = checkBoard(board, snapshot.Size); err != nil {
		return fmt.Errorf("failed to init game: %w", err)
	}

	moves, err := that.engine.LegalMoves(ctx, board, entity.Black)
	if err != nil {
		return fmt.Errorf("failed to get opening moves: %w", err)
	}

	err = that.update(func(game *entity.GameSession) error {
		game.SetBoard(board)
		game.CurrentPlayer = entity.Black
		game.LegalMoves = that.surface(entity.Black, moves)

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("game started", "game", that.gameID, "size", snapshot.Size, "seats", that.seats)

	return nil
}

// Play - applies a human move for the current player.
func (that *Arbiter) Play(ctx context.Context, move entity.Move) error {
	var (
		board  entity.Board
		player entity.Player
	)

	err := that.update(func(game *entity.GameSession) error {
		if err := game.ConfirmPlayable(); err != nil {
			return err
		}

		if that.seats.IsAI(game.CurrentPlayer) {
			return apperror.ErrNotYourTurn
		}

		if !entity.ContainsMove(game.LegalMoves, move) {
			return fmt.Errorf("%w: %s", apperror.ErrIllegalMove, move)
		}

		game.Thinking = true
		board, player = game.Board.Clone(), game.CurrentPlayer

		return nil
	})
	if err != nil {
		return err
	}

	next, err := that.engine.ApplyMove(ctx, board, move, player)
	if err != nil {
		that.abort()
		return fmt.Errorf("failed to play %s: %w", move, err)
	}

	return that.resolveAfterMove(ctx, next, player, move, nil)
}

// Advance - plays one automatic move when the current seat is AI-controlled.
// Reports whether another automatic move is pending afterwards.
func (that *Arbiter) Advance(ctx context.Context) (bool, error) {
	var (
		board      entity.Board
		player     entity.Player
		difficulty entity.Difficulty
		idle       bool
	)

	err := that.update(func(game *entity.GameSession) error {
		if game.Terminal || !that.seats.IsAI(game.CurrentPlayer) {
			idle = true
			return nil
		}

		if game.Thinking {
			return apperror.ErrBusy
		}

		game.Thinking = true
		board, player, difficulty = game.Board.Clone(), game.CurrentPlayer, game.Difficulty

		return nil
	})
	if err != nil || idle {
		return false, err
	}

	result, err := that.engine.AIMove(ctx, board, player, difficulty)
	if err != nil {
		that.abort()
		return false, fmt.Errorf("failed to get ai move: %w", err)
	}

	if err = that.resolveAfterMove(ctx, result.Board, player, result.Move, &result.Stats); err != nil {
		return false, err
	}

	return that.Pending(), nil
}

// Hint - asks the engine for the current player's best move without playing it.
func (that *Arbiter) Hint(ctx context.Context) (*entity.Move, error) {
	var (
		board      entity.Board
		player     entity.Player
		difficulty entity.Difficulty
	)

	err := that.update(func(game *entity.GameSession) error {
		if err := game.ConfirmPlayable(); err != nil {
			return err
		}

		if that.seats.IsAI(game.CurrentPlayer) {
			return apperror.ErrNotYourTurn
		}

		game.Thinking = true
		board, player, difficulty = game.Board.Clone(), game.CurrentPlayer, game.Difficulty

		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := that.engine.AIMove(ctx, board, player, difficulty)
	if err != nil {
		that.abort()
		return nil, fmt.Errorf("failed to get hint: %w", err)
	}

	err = that.update(func(game *entity.GameSession) error {
		game.Thinking = false
		game.Hint = &result.Move
		game.Stats = &result.Stats

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result.Move, nil
}

// Pending - reports whether an automatic move is due.
func (that *Arbiter) Pending() bool {
	game := that.store.Snapshot()

	return !that.closed.Load() && game.ID == that.gameID && !game.Terminal && !game.Thinking && that.seats.IsAI(game.CurrentPlayer)
}

// Close - detaches the arbiter; late engine answers are discarded.
func (that *Arbiter) Close(_ context.Context) error {
	that.closed.Store(true)
	return nil
}

// resolveAfterMove - decides who moves next on board after player moved, then commits
// the move, the turn and the legal set together. Nothing is committed on engine failure.
func (that *Arbiter) resolveAfterMove(
	ctx context.Context,
	board entity.Board,
	player entity.Player,
	move entity.Move,
	stats *entity.SearchStats,
) error {
	log := that.logger.With("method", "resolveAfterMove")

	if err := checkBoard(board, that.store.Snapshot().Size); err != nil {
		that.abort()
		return fmt.Errorf("failed to apply %s: %w", move, err)
	}

	opponent := player.Opponent()
	next, terminal := opponent, false

	moves, err := that.engine.LegalMoves(ctx, board, opponent)
	if err != nil {
		that.abort()
		return fmt.Errorf("failed to get legal moves for %s: %w", opponent, err)
	}

	if len(moves) == 0 {
		moves, err = that.engine.LegalMoves(ctx, board, player)
		if err != nil {
			that.abort()
			return fmt.Errorf("failed to get legal moves for %s: %w", player, err)
		}

		if len(moves) == 0 {
			terminal = true
		} else {
			next = player
			log.Info("no legal moves, turn passes back", "passed", opponent, "player", player)
		}
	}

	return that.update(func(game *entity.GameSession) error {
		game.SetBoard(board)
		game.AppendMove(player, move)
		game.Thinking = false
		game.Hint = nil

		if stats != nil {
			game.Stats = stats
		}

		if terminal {
			game.Finish(entity.OutcomeFromScore(game.Score))
			log.Info("game over", "winner", game.Winner, "black", game.Score.Black, "white", game.Score.White)

			return nil
		}

		game.CurrentPlayer = next
		game.LegalMoves = that.surface(next, moves)

		return nil
	})
}

// checkBoard - the engine may not change the board size of a running game.
func checkBoard(board entity.Board, size int) error {
	if board.Size() != size || !board.Valid() {
		return fmt.Errorf("%w: engine returned a board of size %d for a %dx%d game", apperror.ErrRejected, board.Size(), size, size)
	}

	return nil
}

// surface - the legal set shown to a human; AI seats never get one.
func (that *Arbiter) surface(player entity.Player, moves []entity.Move) []entity.Move {
	if that.seats.IsAI(player) {
		return nil
	}

	return moves
}

func (that *Arbiter) abort() {
	err := that.update(func(game *entity.GameSession) error {
		game.Thinking = false
		return nil
	})
	if err != nil {
		that.logger.Warn("failed to clear thinking flag", "error", err)
	}
}

// update - store update scoped to the game this arbiter was started for.
func (that *Arbiter) update(fn func(game *entity.GameSession) error) error {
	return that.store.Update(func(game *entity.GameSession) error {
		if that.closed.Load() || game.ID != that.gameID {
			return apperror.ErrNoGame
		}

		return fn(game)
	})
}
