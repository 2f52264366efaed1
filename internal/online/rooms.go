package online

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

// ListOpenRooms - asks the relay for joinable rooms. The answer is never cached.
func (that *Client) ListOpenRooms(ctx context.Context) ([]entity.OpenRoom, error) {
	msg, err := that.request(ctx, actionGetOpenGames, nil, eventOpenGamesList)
	if err != nil {
		return nil, fmt.Errorf("failed to list open rooms: %w", err)
	}

	var payload openGamesPayload
	if err = msg.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode open rooms: %w: %w", apperror.ErrProtocol, err)
	}

	if payload.Games == nil {
		payload.Games = []entity.OpenRoom{}
	}

	return payload.Games, nil
}

// CreateRoom - opens a room of the given size and waits for an opponent.
func (that *Client) CreateRoom(ctx context.Context, size int) (*entity.Room, error) {
	if err := entity.ValidateSize(size); err != nil {
		return nil, err
	}

	if err := that.leaveLiveRoom(ctx); err != nil {
		return nil, err
	}

	if _, err := that.request(ctx, actionCreateGame, createGamePayload{BoardSize: size}, eventGameCreated); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return that.room()
}

// JoinRoom - joins an open room. A room that is full or gone is reported as ErrRoomUnavailable.
func (that *Client) JoinRoom(ctx context.Context, id string) (*entity.Room, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty room id", apperror.ErrRoomUnavailable)
	}

	if err := that.leaveLiveRoom(ctx); err != nil {
		return nil, err
	}

	if _, err := that.request(ctx, actionJoinGame, joinGamePayload{GameID: id}, eventGameJoined); err != nil {
		if errors.Is(err, apperror.ErrRejected) {
			return nil, fmt.Errorf("%w: %w", apperror.ErrRoomUnavailable, err)
		}

		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	return that.room()
}

// LeaveRoom - tells the relay we are leaving a live room and forgets it locally.
func (that *Client) LeaveRoom(_ context.Context) error {
	game := that.store.Snapshot()
	if game.ID != that.gameID || game.Room == nil {
		return apperror.ErrNoActiveRoom
	}

	that.mu.Lock()
	channel := that.channel
	that.moving = false
	that.hasSeq = false
	that.mu.Unlock()

	if channel != nil && !game.Room.IsOver() {
		if err := channel.Send(actionLeaveGame, joinGamePayload{GameID: game.Room.ID}); err != nil {
			that.logger.Warn("failed to notify relay about leaving", "room", game.Room.ID, "error", err)
		}
	}

	err := that.update(func(game *entity.GameSession) error {
		game.Room = nil
		game.LegalMoves = nil
		game.Hint = nil

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to drop room: %w", err)
	}

	that.logger.Info("left room", "room", game.Room.ID)

	return nil
}

func (that *Client) leaveLiveRoom(ctx context.Context) error {
	game := that.store.Snapshot()
	if game.Room == nil || game.Room.IsOver() {
		return nil
	}

	return that.LeaveRoom(ctx)
}

func (that *Client) room() (*entity.Room, error) {
	game := that.store.Snapshot()
	if game.ID != that.gameID || game.Room == nil {
		return nil, apperror.ErrNoActiveRoom
	}

	return game.Room, nil
}
