package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rocketscienceinc/reversi-client/internal/cmd"
	"github.com/rocketscienceinc/reversi-client/internal/config"
)

// main - is the entry point of the application. It builds the command tree and runs the chosen command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := cmd.Root(setup).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup - loads the configuration and the logger for the command being run.
func setup(path, level string) (*config.Config, *slog.Logger) {
	conf := initConfig(path)
	if level != "" {
		conf.LogLevel = level
	}

	return conf, initLogger(conf)
}

// initialize config.
func initConfig(path string) *config.Config {
	return config.MustLoad(path)
}

// initialize logger. Stdout belongs to the board, so logs go to stderr.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch strings.ToLower(conf.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
