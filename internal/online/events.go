package online

import (
	"context"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
	"github.com/rocketscienceinc/reversi-client/internal/transport/websocket"
)

func (that *Client) handleSessionReady(_ context.Context, msg *websocket.Message) error {
	var payload sessionReadyPayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	that.mu.Lock()
	that.relayID = payload.SID
	that.mu.Unlock()

	that.logger.Info("relay session ready", "sid", payload.SID)

	return nil
}

// handleGameCreated - we host a new room: fresh opening board, waiting for an opponent.
func (that *Client) handleGameCreated(_ context.Context, msg *websocket.Message) error {
	var payload gameCreatedPayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	if !payload.PlayerColor.Valid() || entity.ValidateSize(payload.BoardSize) != nil {
		return fmt.Errorf("%w: game_created with color %d size %d", apperror.ErrProtocol, payload.PlayerColor, payload.BoardSize)
	}

	that.resetSequence()

	err := that.update(func(game *entity.GameSession) error {
		resetForRoom(game, entity.NewBoard(payload.BoardSize))
		game.Room = &entity.Room{
			ID:     payload.GameID,
			Color:  payload.PlayerColor,
			Size:   payload.BoardSize,
			Status: entity.RoomWaiting,
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store created room: %w", err)
	}

	that.logger.Info("room created", "room", payload.GameID, "color", payload.PlayerColor, "size", payload.BoardSize)

	return nil
}

// handleGameJoined - we joined an existing room; the game starts with Black to move.
func (that *Client) handleGameJoined(ctx context.Context, msg *websocket.Message) error {
	var payload gameJoinedPayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	if !payload.PlayerColor.Valid() || !payload.Board.Valid() {
		return fmt.Errorf("%w: game_joined with color %d", apperror.ErrProtocol, payload.PlayerColor)
	}

	that.resetSequence()

	moves := that.advisoryMoves(ctx, payload.Board, entity.Black, payload.PlayerColor)

	err := that.update(func(game *entity.GameSession) error {
		resetForRoom(game, payload.Board)
		game.LegalMoves = moves
		game.Room = &entity.Room{
			ID:     payload.GameID,
			Color:  payload.PlayerColor,
			Size:   payload.Board.Size(),
			Status: entity.RoomPlaying,
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store joined room: %w", err)
	}

	that.logger.Info("room joined", "room", payload.GameID, "color", payload.PlayerColor, "size", payload.Board.Size())

	return nil
}

// handleGameStateUpdate - the relay's state replaces ours wholesale.
func (that *Client) handleGameStateUpdate(ctx context.Context, msg *websocket.Message) error {
	var payload stateUpdatePayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	if !payload.Board.Valid() {
		return fmt.Errorf("%w: game_state_update without a valid board", apperror.ErrProtocol)
	}

	if err := that.checkSequence(payload.Seq); err != nil {
		return err
	}

	that.mu.Lock()
	that.moving = false
	that.mu.Unlock()

	game := that.store.Snapshot()
	if game.ID != that.gameID || game.Room == nil {
		that.logger.Warn("state update without a room, ignored")
		return nil
	}

	finished := payload.Status == entity.RoomFinished

	if payload.Board.Size() != game.Room.Size {
		return fmt.Errorf("%w: %dx%d board in a room of size %d", apperror.ErrProtocol, payload.Board.Size(), payload.Board.Size(), game.Room.Size)
	}

	if !finished && !payload.Turn.Valid() {
		return fmt.Errorf("%w: game_state_update without a player to move", apperror.ErrProtocol)
	}

	var moves []entity.Move
	if !finished {
		moves = that.advisoryMoves(ctx, payload.Board, payload.Turn, game.Room.Color)
	}

	return that.update(func(game *entity.GameSession) error {
		if game.Room == nil {
			return nil
		}

		game.SetBoard(payload.Board)
		game.CurrentPlayer = payload.Turn
		game.Hint = nil

		if payload.Status != "" {
			game.Room.Status = payload.Status
		}

		if strings.HasPrefix(payload.Message, moveMessagePrefix) {
			game.AppendMessage(payload.Turn.Opponent(), payload.Message)
		}

		if finished {
			game.Finish(outcomeFromCode(payload.Winner))
			return nil
		}

		game.Terminal = false
		game.Winner = entity.OutcomeNone
		game.LegalMoves = moves

		return nil
	})
}

// handleOpponentLeft - the game ends and the remaining player wins, unless the relay
// already declared an outcome.
func (that *Client) handleOpponentLeft(_ context.Context, msg *websocket.Message) error {
	var payload noticePayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	that.mu.Lock()
	that.moving = false
	that.mu.Unlock()

	that.logger.Info("opponent left", "message", payload.Message)

	return that.update(func(game *entity.GameSession) error {
		if game.Room == nil || game.Terminal || game.Room.IsOver() {
			return nil
		}

		game.Room.Status = entity.RoomDisconnected
		game.Finish(entity.OutcomeFor(game.Room.Color))

		return nil
	})
}

func (that *Client) handleMoveError(_ context.Context, msg *websocket.Message) error {
	var payload noticePayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	that.mu.Lock()
	that.moving = false
	that.mu.Unlock()

	return fmt.Errorf("%w: %s", apperror.ErrRejected, payload.Message)
}

func (that *Client) handleOpenGamesList(_ context.Context, msg *websocket.Message) error {
	var payload openGamesPayload

	return decode(msg, &payload)
}

func (that *Client) handleError(_ context.Context, msg *websocket.Message) error {
	var payload noticePayload
	if err := decode(msg, &payload); err != nil {
		return err
	}

	return fmt.Errorf("%w: %s", apperror.ErrRejected, payload.Message)
}

// advisoryMoves - exactly one legal-move query when player is the local colour.
// Failures are reported to listeners and leave the legal set empty.
func (that *Client) advisoryMoves(ctx context.Context, board entity.Board, player, local entity.Player) []entity.Move {
	if player != local {
		return nil
	}

	moves, err := that.engine.LegalMoves(ctx, board, player)
	if err != nil {
		that.logger.Warn("failed to query legal moves", "error", err)
		that.store.Notify(fmt.Errorf("failed to query legal moves: %w", err))

		return nil
	}

	return moves
}

// checkSequence - rejects updates that are not strictly newer than the last one seen.
func (that *Client) checkSequence(seq *int64) error {
	if seq == nil {
		return nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.hasSeq && *seq <= that.lastSeq {
		return fmt.Errorf("%w: update %d after %d", apperror.ErrProtocol, *seq, that.lastSeq)
	}

	that.lastSeq, that.hasSeq = *seq, true

	return nil
}

func (that *Client) resetSequence() {
	that.mu.Lock()
	that.lastSeq, that.hasSeq = 0, false
	that.moving = false
	that.mu.Unlock()
}

// resetForRoom - a room starts from board with Black to move and an empty history.
func resetForRoom(game *entity.GameSession, board entity.Board) {
	game.Size = board.Size()
	game.SetBoard(board)
	game.CurrentPlayer = entity.Black
	game.LegalMoves = nil
	game.History = nil
	game.Terminal = false
	game.Winner = entity.OutcomeNone
	game.Thinking = false
	game.Hint = nil
	game.Stats = nil
}

func decode(msg *websocket.Message, v any) error {
	if err := msg.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed %s: %w", apperror.ErrProtocol, msg.Action, err)
	}

	return nil
}
