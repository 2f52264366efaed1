package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/reversi-client/internal/config"
	"github.com/rocketscienceinc/reversi-client/internal/gateway"
	"github.com/rocketscienceinc/reversi-client/internal/online"
	"github.com/rocketscienceinc/reversi-client/internal/repository"
	"github.com/rocketscienceinc/reversi-client/internal/repository/storage"
	"github.com/rocketscienceinc/reversi-client/internal/reversi"
	"github.com/rocketscienceinc/reversi-client/internal/session"
)

var (
	ErrAddrNotFound    = errors.New("redis address string is empty")
	ErrHistoryDisabled = errors.New("game history needs redis.enabled in the config")
)

// App holds the wired components for one command run.
type App struct {
	Config     *config.Config
	Controller *session.Controller
	Records    repository.GameRepository

	logger  *slog.Logger
	storage *storage.RedisStorage
}

// RunApp - wires the application, runs fn until it returns or a signal arrives, then shuts down.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config, fn func(ctx context.Context, app *App) error) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	app, err := New(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := app.Close(context.Background()); closeErr != nil {
			log.Error("could not shut down cleanly", "error", closeErr)
		}
	}()

	return fn(ctx, app)
}

// New - builds the engine, the relay dialer, the optional record store and the session controller.
func New(ctx context.Context, logger *slog.Logger, conf *config.Config) (*App, error) {
	app := &App{
		Config: conf,
		logger: logger,
	}

	var engine session.Engine
	if conf.Engine.Offline {
		logger.Info("using the built-in engine")
		engine = reversi.New()
	} else {
		engine = gateway.New(logger, conf.Engine.URL, uuid.New().String(), conf.Engine.Timeout)
	}

	dialer := online.WebsocketDialer(logger, conf.Relay.URL)
	settings := session.Settings{
		AckTimeout:    conf.Relay.AckTimeout,
		AutoplayDelay: conf.Game.AutoplayDelay,
	}

	if !conf.Redis.Enabled {
		app.Controller = session.New(logger, engine, dialer, nil, settings)
		return app, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	app.storage = redisStorage
	app.Records = repository.NewGameRepository(redisStorage.Connection)
	app.Controller = session.New(logger, engine, dialer, app.Records, settings)

	return app, nil
}

// History - the record store, or ErrHistoryDisabled when redis is off.
func (that *App) History() (repository.GameRepository, error) {
	if that.Records == nil {
		return nil, ErrHistoryDisabled
	}

	return that.Records, nil
}

// Close - ends the session and releases the record store.
func (that *App) Close(ctx context.Context) error {
	var errs []error

	if err := that.Controller.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close session: %w", err))
	}

	if that.storage != nil {
		if err := that.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("could not close redis storage: %w", err))
		}
	}

	return errors.Join(errs...)
}
