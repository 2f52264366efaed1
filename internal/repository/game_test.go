package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-client/internal/entity"
	"github.com/rocketscienceinc/reversi-client/testing/suite"
)

func newRecord(id string, winner entity.Outcome) *entity.GameRecord {
	finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	return &entity.GameRecord{
		ID:         id,
		Mode:       entity.ModeHvAI,
		Difficulty: entity.DifficultyHard,
		Size:       8,
		Winner:     winner,
		Score:      entity.Score{Black: 40, White: 24},
		History:    []entity.HistoryEntry{{Player: entity.Black, Row: 2, Col: 3}},
		StartedAt:  finished.Add(-10 * time.Minute),
		FinishedAt: finished,
	}
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a finished game record
	record := newRecord("123", entity.OutcomeBlack)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, record)

	// Then: no error should be returned, and the record is stored
	require.NoError(t, err)

	stored, err := gameRepo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, stored)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		record, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, record)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored record
		record := newRecord("123", entity.OutcomeDraw)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, record))

		// When: DeleteByID is called with its ID
		err := gameRepo.DeleteByID(ctx, record.ID)

		// Then: the record and its recent entry are gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, record.ID)
		require.ErrorIs(t, err, ErrGameNotFound)

		recent, err := gameRepo.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: DeleteByID is called with a non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: deleting nothing is not an error
		require.NoError(t, err)
	})
}

func TestGameRepository_Recent(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: three records saved in order, the first one saved twice
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newRecord("a", entity.OutcomeBlack)))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newRecord("b", entity.OutcomeWhite)))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newRecord("c", entity.OutcomeDraw)))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newRecord("a", entity.OutcomeBlack)))

	t.Run("Newest first without duplicates", func(t *testing.T) {
		recent, err := gameRepo.Recent(ctx, 10)

		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "a", recent[0].ID)
		assert.Equal(t, "c", recent[1].ID)
		assert.Equal(t, "b", recent[2].ID)
	})

	t.Run("Limit is honoured", func(t *testing.T) {
		recent, err := gameRepo.Recent(ctx, 2)

		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})

	t.Run("Zero limit returns nothing", func(t *testing.T) {
		recent, err := gameRepo.Recent(ctx, 0)

		require.NoError(t, err)
		assert.Empty(t, recent)
	})
}
