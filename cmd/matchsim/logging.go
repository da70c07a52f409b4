package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lox/matchsim/internal/config"
)

// logger builds the process logger on stderr
func (g *Globals) logger() *log.Logger {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if g.Debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(g.stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// loadConfig reads the match file named by --config
func (g *Globals) loadConfig(logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded configuration",
		"file", g.Config,
		"players", len(cfg.Players),
		"sets_to_win", *cfg.Match.SetsToWin)
	return cfg, nil
}

// signalContext is cancelled on interrupt or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
