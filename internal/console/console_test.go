package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-client/internal/entity"
	"github.com/rocketscienceinc/reversi-client/internal/online"
	"github.com/rocketscienceinc/reversi-client/internal/reversi"
	"github.com/rocketscienceinc/reversi-client/internal/session"
)

func newTestSession(t *testing.T, mode entity.Mode) *session.Controller {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dialer := online.DialerFunc(func(context.Context) (online.Channel, error) {
		return nil, errors.New("offline")
	})

	controller := session.New(logger, reversi.New(), dialer, nil, session.Settings{AckTimeout: time.Second})
	t.Cleanup(func() { _ = controller.Close(context.Background()) })

	require.NoError(t, controller.NewGame(context.Background(), session.Options{
		Mode:       mode,
		Size:       8,
		Difficulty: entity.DifficultyEasy,
	}))

	return controller
}

func runConsole(t *testing.T, controller *session.Controller, input string) string {
	t.Helper()

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := New(logger, strings.NewReader(input), &out, controller).Run(context.Background())
	require.NoError(t, err)

	return out.String()
}

func TestConsole_Run(t *testing.T) {
	t.Run("Moves are played and the board is reprinted", func(t *testing.T) {
		controller := newTestSession(t, entity.ModeHvH)

		// When: Black plays (2,3) and the user quits
		out := runConsole(t, controller, "2 3\nquit\n4 5\n")

		// Then: both positions were printed and input after quit was ignored
		assert.Contains(t, out, "Black 2 : White 2  Black to move")
		assert.Contains(t, out, "Black 4 : White 1  White to move")
		assert.Len(t, controller.Snapshot().History, 1)
	})

	t.Run("Errors are reported and the loop goes on", func(t *testing.T) {
		controller := newTestSession(t, entity.ModeHvH)

		out := runConsole(t, controller, "0 0\nfly away\nrooms\n2 3\n")

		assert.Contains(t, out, "! move is not in the legal set")
		assert.Contains(t, out, `! unknown command "fly away"`)
		assert.Contains(t, out, "! session is not in online mode")
		assert.Len(t, controller.Snapshot().History, 1)
	})

	t.Run("AI answers right after the human move", func(t *testing.T) {
		controller := newTestSession(t, entity.ModeHvAI)

		runConsole(t, controller, "2 3\n")

		game := controller.Snapshot()
		assert.Equal(t, entity.Black, game.CurrentPlayer)
		assert.Len(t, game.History, 2)
	})

	t.Run("Engine games run to the end on their own", func(t *testing.T) {
		controller := newTestSession(t, entity.ModeAIvAI)

		out := runConsole(t, controller, "")

		require.True(t, controller.Snapshot().Terminal)
		assert.Contains(t, out, "game over:")
	})

	t.Run("Hint and analysis", func(t *testing.T) {
		controller := newTestSession(t, entity.ModeHvH)

		out := runConsole(t, controller, "hint\nanalyze\nhelp\n")

		assert.Contains(t, out, "hint: (")
		assert.Contains(t, out, " 1. (")
		assert.Contains(t, out, "play a move")
	})

	t.Run("Reset starts a new game", func(t *testing.T) {
		controller := newTestSession(t, entity.ModeHvH)
		before := controller.Snapshot().ID

		runConsole(t, controller, "2 3\nreset\n")

		game := controller.Snapshot()
		assert.NotEqual(t, before, game.ID)
		assert.Empty(t, game.History)
	})
}

func TestRenderBoard(t *testing.T) {
	// Given: the 6x6 opening with Black to move and a hint
	game := *entity.NewGameSession(entity.ModeHvH, 6, entity.DifficultyEasy)
	game.LegalMoves = reversi.LegalMoves(game.Board, entity.Black)
	game.Hint = &game.LegalMoves[0]

	// When: rendering it
	var out bytes.Buffer
	RenderBoard(&out, game)

	// Then: discs, legal squares and the hint are marked
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "    0 1 2 3 4 5", lines[0])
	assert.Equal(t, " 1  . . + . . .", lines[2])
	assert.Equal(t, " 2  . * O X . .", lines[3])
	assert.Equal(t, "Black 2 : White 2  Black to move", lines[7])
}

func TestStatus(t *testing.T) {
	game := *entity.NewGameSession(entity.ModeOnline, 8, entity.DifficultyEasy)
	game.Room = &entity.Room{ID: "room-1", Color: entity.White, Status: entity.RoomPlaying}
	game.Finish(entity.OutcomeDraw)

	assert.Equal(t, "Black 2 : White 2  game over: draw  [room room-1, you are White, playing]", Status(game))
}
