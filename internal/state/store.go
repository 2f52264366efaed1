// Package state holds the single game session and publishes a snapshot after every change.
package state

import (
	"sync"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

// Event is delivered to listeners. Err carries asynchronous failures (relay errors, lost channel).
type Event struct {
	Session entity.GameSession
	Err     error
}

type Listener func(Event)

// Store is the only writer of the session. Listeners run outside the session lock
// in commit order and must not call Update or Subscribe.
type Store struct {
	mu   sync.Mutex
	game *entity.GameSession

	publishMu sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func New() *Store {
	return &Store{
		listeners: make(map[int]Listener),
	}
}

// Snapshot - deep copy of the current session, zero value when none is loaded.
func (that *Store) Snapshot() entity.GameSession {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return entity.GameSession{}
	}

	return that.game.Clone()
}

// Replace - installs a new session, dropping the previous one.
func (that *Store) Replace(game *entity.GameSession) {
	that.mu.Lock()
	that.game = game
	snapshot := game.Clone()

	that.publish(Event{Session: snapshot})
}

// Update - runs fn on a copy of the session and commits it only when fn succeeds.
func (that *Store) Update(fn func(game *entity.GameSession) error) error {
	that.mu.Lock()

	if that.game == nil {
		that.mu.Unlock()
		return apperror.ErrNoGame
	}

	draft := that.game.Clone()
	if err := fn(&draft); err != nil {
		that.mu.Unlock()
		return err
	}

	that.game = &draft
	snapshot := draft.Clone()

	that.publish(Event{Session: snapshot})

	return nil
}

// Notify - publishes err with the current snapshot.
func (that *Store) Notify(err error) {
	that.mu.Lock()

	var snapshot entity.GameSession
	if that.game != nil {
		snapshot = that.game.Clone()
	}

	that.publish(Event{Session: snapshot, Err: err})
}

// Subscribe - registers fn and returns the function removing it.
func (that *Store) Subscribe(fn Listener) func() {
	that.publishMu.Lock()
	defer that.publishMu.Unlock()

	id := that.nextID
	that.nextID++
	that.listeners[id] = fn

	return func() {
		that.publishMu.Lock()
		defer that.publishMu.Unlock()

		delete(that.listeners, id)
	}
}

// publish - must be called with mu held; hands the lock over to publishMu so
// listeners see events in commit order while readers are unblocked.
func (that *Store) publish(event Event) {
	that.publishMu.Lock()
	that.mu.Unlock()
	defer that.publishMu.Unlock()

	for _, fn := range that.listeners {
		fn(event)
	}
}
