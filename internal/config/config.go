package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

// configFile is looked up under the XDG config directories.
const configFile = "reversi/config.yml"

var ErrInvalidTimeout = errors.New("timeout must be positive")

type Config struct {
	LogLevel string `yaml:"log-level" env:"REVERSI_LOG_LEVEL" env-default:"info"`
	Engine   Engine `yaml:"engine"`
	Relay    Relay  `yaml:"relay"`
	Redis    Redis  `yaml:"redis"`
	Game     Game   `yaml:"game"`
}

type Engine struct {
	URL     string        `yaml:"url" env:"REVERSI_ENGINE_URL" env-default:"http://localhost:5000"`
	Timeout time.Duration `yaml:"timeout" env:"REVERSI_ENGINE_TIMEOUT" env-default:"15s"`
	// Offline plays against the built-in engine instead of the remote one.
	Offline bool `yaml:"offline" env:"REVERSI_ENGINE_OFFLINE" env-default:"false"`
}

type Relay struct {
	URL        string        `yaml:"url" env:"REVERSI_RELAY_URL" env-default:"ws://localhost:5000/ws"`
	AckTimeout time.Duration `yaml:"ack-timeout" env:"REVERSI_RELAY_ACK_TIMEOUT" env-default:"10s"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REVERSI_REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REVERSI_REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REVERSI_REDIS_PORT" env-default:"6379"`
}

type Game struct {
	BoardSize     int           `yaml:"board-size" env:"REVERSI_BOARD_SIZE" env-default:"8"`
	Difficulty    string        `yaml:"difficulty" env:"REVERSI_DIFFICULTY" env-default:"medium"`
	AutoplayDelay time.Duration `yaml:"autoplay-delay" env:"REVERSI_AUTOPLAY_DELAY" env-default:"400ms"`
}

// MustLoad - load all configurations from path, or from the XDG config file when path is empty.
// Falls back to environment and defaults when no file exists.
func MustLoad(path string) *Config {
	if path == "" {
		path = Locate()
	}

	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads path (environment only when empty) and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, err
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Locate - path of the user's config file, empty when there is none.
func Locate() string {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return ""
	}

	return path
}

func (that *Config) Validate() error {
	if err := entity.ValidateSize(that.Game.BoardSize); err != nil {
		return fmt.Errorf("game.board-size: %w", err)
	}

	if _, err := entity.ParseDifficulty(that.Game.Difficulty); err != nil {
		return fmt.Errorf("game.difficulty: %w", err)
	}

	if that.Engine.Timeout <= 0 {
		return fmt.Errorf("engine.timeout: %w", ErrInvalidTimeout)
	}

	if that.Relay.AckTimeout <= 0 {
		return fmt.Errorf("relay.ack-timeout: %w", ErrInvalidTimeout)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
