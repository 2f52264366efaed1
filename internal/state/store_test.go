package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

var errSomeError = errors.New("some error")

func TestStore_Update(t *testing.T) {
	t.Run("Returns ErrNoGame before a session is loaded", func(t *testing.T) {
		store := New()

		err := store.Update(func(*entity.GameSession) error { return nil })

		require.ErrorIs(t, err, apperror.ErrNoGame)
		assert.Empty(t, store.Snapshot().ID)
	})

	t.Run("Failed update leaves the session unchanged", func(t *testing.T) {
		// Given: a loaded session
		store := New()
		store.Replace(entity.NewGameSession(entity.ModeHvH, 8, entity.DifficultyMedium))

		// When: an update mutates the draft and then fails
		err := store.Update(func(game *entity.GameSession) error {
			game.Board[0][0] = entity.BlackCell
			game.CurrentPlayer = entity.White
			return errSomeError
		})

		// Then: nothing was committed
		require.ErrorIs(t, err, errSomeError)
		snapshot := store.Snapshot()
		assert.Equal(t, entity.Empty, snapshot.Board[0][0])
		assert.Equal(t, entity.Black, snapshot.CurrentPlayer)
	})

	t.Run("Snapshots are detached from the stored session", func(t *testing.T) {
		store := New()
		store.Replace(entity.NewGameSession(entity.ModeHvH, 8, entity.DifficultyMedium))

		snapshot := store.Snapshot()
		snapshot.Board[0][0] = entity.WhiteCell

		assert.Equal(t, entity.Empty, store.Snapshot().Board[0][0])
	})
}

func TestStore_Subscribe(t *testing.T) {
	t.Run("Listeners receive every commit in order", func(t *testing.T) {
		// Given: a store with one listener
		store := New()
		store.Replace(entity.NewGameSession(entity.ModeHvH, 8, entity.DifficultyMedium))

		var players []entity.Player
		unsubscribe := store.Subscribe(func(event Event) {
			players = append(players, event.Session.CurrentPlayer)
		})

		// When: two updates are committed and a third fails
		require.NoError(t, store.Update(func(game *entity.GameSession) error {
			game.CurrentPlayer = entity.White
			return nil
		}))
		require.NoError(t, store.Update(func(game *entity.GameSession) error {
			game.CurrentPlayer = entity.Black
			return nil
		}))
		require.Error(t, store.Update(func(*entity.GameSession) error { return errSomeError }))

		// Then: only the committed states were published
		assert.Equal(t, []entity.Player{entity.White, entity.Black}, players)

		unsubscribe()
		store.Notify(errSomeError)
		assert.Len(t, players, 2)
	})

	t.Run("Notify carries the error and the current snapshot", func(t *testing.T) {
		store := New()
		game := entity.NewGameSession(entity.ModeOnline, 6, "")
		store.Replace(game)

		var got Event
		store.Subscribe(func(event Event) { got = event })

		store.Notify(apperror.ErrNotConnected)

		require.ErrorIs(t, got.Err, apperror.ErrNotConnected)
		assert.Equal(t, game.ID, got.Session.ID)
	})

	t.Run("Listeners may read the snapshot", func(t *testing.T) {
		store := New()
		store.Replace(entity.NewGameSession(entity.ModeHvH, 8, entity.DifficultyMedium))

		var seen entity.Player
		store.Subscribe(func(Event) { seen = store.Snapshot().CurrentPlayer })

		require.NoError(t, store.Update(func(game *entity.GameSession) error {
			game.CurrentPlayer = entity.White
			return nil
		}))

		assert.Equal(t, entity.White, seen)
	})
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	// Given: a session and many writers appending to the history
	store := New()
	store.Replace(entity.NewGameSession(entity.ModeHvH, 8, entity.DifficultyMedium))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(func(game *entity.GameSession) error {
				game.AppendMove(entity.Black, entity.Move{})
				return nil
			})
		}()
	}
	wg.Wait()

	// Then: no write was lost
	assert.Len(t, store.Snapshot().History, 50)
}
