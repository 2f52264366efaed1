package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

const (
	recordKeyPrefix = "game:"
	recentKey       = "games:recent"
	recentLimit     = 100
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, record *entity.GameRecord) error
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	DeleteByID(ctx context.Context, id string) error
	Recent(ctx context.Context, limit int64) ([]*entity.GameRecord, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

// CreateOrUpdate - stores the record and moves its id to the head of the recent list.
func (that *dbGame) CreateOrUpdate(ctx context.Context, record *entity.GameRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal game record: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKeyPrefix+record.ID, recordJSON, 0)
		pipe.LRem(ctx, recentKey, 0, record.ID)
		pipe.LPush(ctx, recentKey, record.ID)
		pipe.LTrim(ctx, recentKey, 0, recentLimit-1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save game record: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.GameRecord, error) {
	response, err := that.client.Get(ctx, recordKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game record by id: %w", err)
	}

	var record entity.GameRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}

	return &record, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, recordKeyPrefix+id)
		pipe.LRem(ctx, recentKey, 0, id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete game record by id: %w", err)
	}

	return nil
}

// Recent - newest records first. Ids whose record has expired or been deleted are skipped.
func (that *dbGame) Recent(ctx context.Context, limit int64) ([]*entity.GameRecord, error) {
	if limit <= 0 {
		return []*entity.GameRecord{}, nil
	}

	ids, err := that.client.LRange(ctx, recentKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}

	records := make([]*entity.GameRecord, 0, len(ids))
	for _, id := range ids {
		record, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrGameNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}
