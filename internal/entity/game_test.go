package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
)

func TestNewBoard(t *testing.T) {
	t.Run("Standard opening on 8x8", func(t *testing.T) {
		// When: creating an 8x8 board
		board := NewBoard(8)

		// Then: two discs per side sit on the centre diagonals
		require.Equal(t, 8, board.Size())
		assert.Equal(t, WhiteCell, board[3][3])
		assert.Equal(t, WhiteCell, board[4][4])
		assert.Equal(t, BlackCell, board[3][4])
		assert.Equal(t, BlackCell, board[4][3])
		assert.Equal(t, Score{Black: 2, White: 2}, board.Count())
	})

	t.Run("Every supported size is valid", func(t *testing.T) {
		for _, size := range BoardSizes {
			board := NewBoard(size)

			assert.True(t, board.Valid(), "size %d", size)
			assert.Equal(t, Score{Black: 2, White: 2}, board.Count())
		}
	})

	t.Run("Unsupported size is rejected", func(t *testing.T) {
		// When: validating an odd size
		err := ValidateSize(7)

		// Then: ErrInvalidBoardSize is returned
		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
		assert.False(t, NewBoard(7).Valid())
	})
}

func TestBoard_Count(t *testing.T) {
	t.Run("Recount is idempotent", func(t *testing.T) {
		// Given: a board with some discs
		board := NewBoard(6)
		board[0][0] = BlackCell
		board[5][5] = WhiteCell
		board[2][0] = BlackCell

		// When: counting twice
		first := board.Count()
		second := board.Count()

		// Then: both counts are identical
		assert.Equal(t, first, second)
		assert.Equal(t, Score{Black: 4, White: 3}, first)
	})
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board and its clone
	board := NewBoard(8)
	clone := board.Clone()

	// When: the clone is mutated
	clone[0][0] = BlackCell

	// Then: the original is untouched
	assert.Equal(t, Empty, board[0][0])
}

func TestOutcomeFromScore(t *testing.T) {
	assert.Equal(t, OutcomeBlack, OutcomeFromScore(Score{Black: 33, White: 31}))
	assert.Equal(t, OutcomeWhite, OutcomeFromScore(Score{Black: 10, White: 54}))
	assert.Equal(t, OutcomeDraw, OutcomeFromScore(Score{Black: 32, White: 32}))
}

func TestPlayer_Opponent(t *testing.T) {
	assert.Equal(t, White, Black.Opponent())
	assert.Equal(t, Black, White.Opponent())
	assert.Equal(t, NoPlayer, NoPlayer.Opponent())
	assert.False(t, NoPlayer.Valid())
}

func TestParseMode(t *testing.T) {
	t.Run("Known modes", func(t *testing.T) {
		for _, name := range []string{"hvh", "HVAI", " aivai ", "online"} {
			_, err := ParseMode(name)
			require.NoError(t, err, name)
		}
	})

	t.Run("Unknown mode", func(t *testing.T) {
		_, err := ParseMode("solo")
		require.ErrorIs(t, err, apperror.ErrUnknownMode)
	})
}

func TestParseDifficulty(t *testing.T) {
	difficulty, err := ParseDifficulty("Expert")
	require.NoError(t, err)
	assert.Equal(t, 10, difficulty.Depth())

	_, err = ParseDifficulty("impossible")
	require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
}

func TestGameSession_ConfirmPlayable(t *testing.T) {
	t.Run("Returns nil for an active idle session", func(t *testing.T) {
		// Given: a new session
		game := NewGameSession(ModeHvH, 8, DifficultyMedium)

		// Then: it is playable
		assert.NoError(t, game.ConfirmPlayable())
	})

	t.Run("Returns ErrBusy while thinking", func(t *testing.T) {
		game := NewGameSession(ModeHvAI, 8, DifficultyMedium)
		game.Thinking = true

		assert.ErrorIs(t, game.ConfirmPlayable(), apperror.ErrBusy)
	})

	t.Run("Returns ErrGameFinished once terminal", func(t *testing.T) {
		game := NewGameSession(ModeHvH, 8, DifficultyMedium)
		game.Finish(OutcomeDraw)

		assert.ErrorIs(t, game.ConfirmPlayable(), apperror.ErrGameFinished)
		assert.Empty(t, game.LegalMoves)
	})
}

func TestGameSession_Clone(t *testing.T) {
	// Given: a session with history, hint and room
	game := NewGameSession(ModeOnline, 8, DifficultyMedium)
	game.AppendMove(Black, Move{Row: 2, Col: 3})
	game.Hint = &Move{Row: 1, Col: 1}
	game.Room = &Room{ID: "42", Color: Black, Size: 8, Status: RoomPlaying}

	// When: the clone is mutated
	clone := game.Clone()
	clone.Board[0][0] = WhiteCell
	clone.History[0].Row = 7
	clone.Hint.Row = 5
	clone.Room.Status = RoomFinished

	// Then: the original session is unaffected
	assert.Equal(t, Empty, game.Board[0][0])
	assert.Equal(t, 2, game.History[0].Row)
	assert.Equal(t, 1, game.Hint.Row)
	assert.Equal(t, RoomPlaying, game.Room.Status)
}

func TestGameSession_Record(t *testing.T) {
	// Given: a finished online session
	game := NewGameSession(ModeOnline, 6, "")
	game.Room = &Room{ID: "room-1", Color: White}
	game.AppendMessage(Black, "Player 1 moved to (1, 2)")
	game.Finish(OutcomeWhite)
	finishedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	// When: building the record
	record := game.Record(finishedAt)

	// Then: the summary carries the outcome and the room id
	assert.Equal(t, game.ID+"/room-1", record.ID)
	assert.Equal(t, OutcomeWhite, record.Winner)
	assert.Equal(t, "room-1", record.RoomID)
	assert.Len(t, record.History, 1)
	assert.Equal(t, finishedAt, record.FinishedAt)
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, "s-1", RecordID("s-1", ""))
	assert.Equal(t, "s-1/room-2", RecordID("s-1", "room-2"))
}
