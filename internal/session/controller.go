// Package session owns the game in progress: it picks the governor for the mode,
// routes user intents to it and records finished games.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/arbiter"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
	"github.com/rocketscienceinc/reversi-client/internal/online"
	"github.com/rocketscienceinc/reversi-client/internal/state"
)

const persistTimeout = 5 * time.Second

// Engine is the move validation and execution gateway, remote or in-process.
type Engine interface {
	Init(ctx context.Context, size int) (entity.Board, error)
	LegalMoves(ctx context.Context, board entity.Board, player entity.Player) ([]entity.Move, error)
	ApplyMove(ctx context.Context, board entity.Board, move entity.Move, player entity.Player) (entity.Board, error)
	AIMove(ctx context.Context, board entity.Board, player entity.Player, difficulty entity.Difficulty) (*entity.AIMove, error)
	Analyze(ctx context.Context, board entity.Board, player entity.Player) ([]entity.RankedMove, error)
}

type recordRepo interface {
	CreateOrUpdate(ctx context.Context, record *entity.GameRecord) error
}

// governor drives one session: the arbiter for local modes, the relay client online.
type governor interface {
	Start(ctx context.Context) error
	Play(ctx context.Context, move entity.Move) error
	Advance(ctx context.Context) (bool, error)
	Hint(ctx context.Context) (*entity.Move, error)
	Close(ctx context.Context) error
}

type Options struct {
	Mode       entity.Mode
	Size       int
	Difficulty entity.Difficulty
}

// Validate - checks mode, size and difficulty.
func (that Options) Validate() error {
	if _, err := entity.ParseMode(string(that.Mode)); err != nil {
		return err
	}

	if err := entity.ValidateSize(that.Size); err != nil {
		return err
	}

	if _, err := entity.ParseDifficulty(string(that.Difficulty)); err != nil {
		return err
	}

	return nil
}

type Settings struct {
	AckTimeout    time.Duration
	AutoplayDelay time.Duration
}

type Controller struct {
	logger *slog.Logger

	engine   Engine
	dialer   online.Dialer
	records  recordRepo
	store    *state.Store
	settings Settings

	mu       sync.Mutex
	options  *Options
	governor governor
	lobby    *online.Client

	persistMu   sync.Mutex
	persisted   map[string]bool
	persisting  sync.WaitGroup
	unsubscribe func()
}

// New - creates a controller with no game loaded. records may be nil to disable history.
func New(logger *slog.Logger, engine Engine, dialer online.Dialer, records recordRepo, settings Settings) *Controller {
	controller := &Controller{
		logger:    logger.With("component", "session"),
		engine:    engine,
		dialer:    dialer,
		records:   records,
		store:     state.New(),
		settings:  settings,
		persisted: make(map[string]bool),
	}

	controller.unsubscribe = controller.store.Subscribe(controller.recordFinished)

	return controller
}

// NewGame - drops the current session and starts a fresh one governed according to the mode.
func (that *Controller) NewGame(ctx context.Context, options Options) error {
	log := that.logger.With("method", "NewGame")

	if err := options.Validate(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.teardown(ctx)

	game := entity.NewGameSession(options.Mode, options.Size, options.Difficulty)
	that.store.Replace(game)

	gov, err := that.governorFor(options)
	if err != nil {
		return err
	}

	that.options = &options
	that.governor = gov

	log.Info("new game", "id", game.ID, "mode", options.Mode, "size", options.Size, "difficulty", options.Difficulty)

	if err = gov.Start(ctx); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return nil
}

func (that *Controller) governorFor(options Options) (governor, error) {
	if options.Mode.IsOnline() {
		client := online.New(that.logger, that.dialer, that.engine, that.store, that.settings.AckTimeout)
		that.lobby = client

		return client, nil
	}

	seats, err := arbiter.SeatsFor(options.Mode)
	if err != nil {
		return nil, err
	}

	return arbiter.New(that.logger, that.engine, that.store, seats), nil
}

// teardown - must be called with mu held.
func (that *Controller) teardown(ctx context.Context) {
	if that.governor == nil {
		return
	}

	if err := that.governor.Close(ctx); err != nil {
		that.logger.Warn("failed to close previous game", "error", err)
	}

	that.governor = nil
	that.lobby = nil
}

// Reset - starts over with the options of the current game.
func (that *Controller) Reset(ctx context.Context) error {
	that.mu.Lock()
	options := that.options
	that.mu.Unlock()

	if options == nil {
		return apperror.ErrNoGame
	}

	return that.NewGame(ctx, *options)
}

func (that *Controller) current() (governor, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.governor == nil {
		return nil, apperror.ErrNoGame
	}

	return that.governor, nil
}

// Play - plays row, col for the side to move. Online, the relay alone judges legality.
func (that *Controller) Play(ctx context.Context, row, col int) error {
	gov, err := that.current()
	if err != nil {
		return err
	}

	return gov.Play(ctx, entity.Move{Row: row, Col: col})
}

// Advance - plays one automatic move; reports whether another one is pending.
func (that *Controller) Advance(ctx context.Context) (bool, error) {
	gov, err := that.current()
	if err != nil {
		return false, err
	}

	return gov.Advance(ctx)
}

// AutoPlay - advances until no automatic move is pending, pausing between moves.
func (that *Controller) AutoPlay(ctx context.Context) error {
	for {
		pending, err := that.Advance(ctx)
		if err != nil || !pending {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(that.settings.AutoplayDelay):
		}
	}
}

func (that *Controller) Hint(ctx context.Context) (*entity.Move, error) {
	gov, err := that.current()
	if err != nil {
		return nil, err
	}

	return gov.Hint(ctx)
}

// Analyze - engine ranking of the moves available to the side to move. Does not touch the session.
func (that *Controller) Analyze(ctx context.Context) ([]entity.RankedMove, error) {
	game := that.store.Snapshot()
	if game.ID == "" {
		return nil, apperror.ErrNoGame
	}

	if game.Terminal {
		return nil, apperror.ErrGameFinished
	}

	ranked, err := that.engine.Analyze(ctx, game.Board, game.CurrentPlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze position: %w", err)
	}

	return ranked, nil
}

func (that *Controller) onlineClient() (*online.Client, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.lobby == nil {
		return nil, apperror.ErrNotOnline
	}

	return that.lobby, nil
}

func (that *Controller) CreateRoom(ctx context.Context, size int) (*entity.Room, error) {
	client, err := that.onlineClient()
	if err != nil {
		return nil, err
	}

	return client.CreateRoom(ctx, size)
}

func (that *Controller) JoinRoom(ctx context.Context, id string) (*entity.Room, error) {
	client, err := that.onlineClient()
	if err != nil {
		return nil, err
	}

	return client.JoinRoom(ctx, id)
}

func (that *Controller) ListOpenRooms(ctx context.Context) ([]entity.OpenRoom, error) {
	client, err := that.onlineClient()
	if err != nil {
		return nil, err
	}

	return client.ListOpenRooms(ctx)
}

func (that *Controller) LeaveRoom(ctx context.Context) error {
	client, err := that.onlineClient()
	if err != nil {
		return err
	}

	return client.LeaveRoom(ctx)
}

// Snapshot - deep copy of the session, zero value before the first game.
func (that *Controller) Snapshot() entity.GameSession {
	return that.store.Snapshot()
}

// Subscribe - fn receives every committed snapshot and asynchronous error. Listeners must not block.
func (that *Controller) Subscribe(fn state.Listener) func() {
	return that.store.Subscribe(fn)
}

// Close - ends the current game and waits for pending records to be written.
func (that *Controller) Close(ctx context.Context) error {
	that.mu.Lock()
	that.teardown(ctx)
	that.mu.Unlock()

	that.unsubscribe()
	that.persisting.Wait()

	return nil
}

// recordFinished - writes each finished game to the record store once: per session locally,
// per room online.
func (that *Controller) recordFinished(event state.Event) {
	game := event.Session
	if that.records == nil || !game.Terminal || game.ID == "" {
		return
	}

	record := game.Record(time.Now())

	that.persistMu.Lock()
	if that.persisted[record.ID] {
		that.persistMu.Unlock()
		return
	}

	that.persisted[record.ID] = true
	that.persisting.Add(1)
	that.persistMu.Unlock()

	go func() {
		defer that.persisting.Done()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := that.records.CreateOrUpdate(ctx, record); err != nil {
			that.logger.Error("failed to save game record", "id", record.ID, "error", err)
			return
		}

		that.logger.Info("game recorded", "id", record.ID, "winner", record.Winner)
	}()
}
