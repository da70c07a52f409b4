package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/matchsim/internal/config"
	"github.com/lox/matchsim/internal/randutil"
)

// MatchFlags override the match block of the configuration file
type MatchFlags struct {
	Seed       *int64   `help:"RNG seed (random when unset and the config has none)"`
	SetsToWin  *int     `name:"sets-to-win" help:"Sets needed to win the match"`
	SetFatigue *float64 `name:"set-fatigue" help:"Stamina lost by both players after each set"`
}

func (f MatchFlags) apply(cfg *config.Config) {
	if f.SetsToWin != nil {
		n := *f.SetsToWin
		cfg.Match.SetsToWin = &n
	}
	if f.SetFatigue != nil {
		cfg.Match.SetFatigue = *f.SetFatigue
	}
	if f.Seed != nil {
		seed := *f.Seed
		cfg.Match.Seed = &seed
	}
}

// resolveSeed picks the seed to play with, drawing a fresh one when neither
// the flag nor the file set it
func resolveSeed(cfg *config.Config, logger *log.Logger) (int64, error) {
	if cfg.Match.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *cfg.Match.Seed)
		return *cfg.Match.Seed, nil
	}
	seed, err := randutil.NewSeed()
	if err != nil {
		return 0, err
	}
	logger.Info("Using random seed", "seed", seed)
	return seed, nil
}

// prepare loads the configuration, applies flag overrides and validates it
func prepare(g *Globals, flags MatchFlags, logger *log.Logger) (*config.Config, int64, error) {
	cfg, err := g.loadConfig(logger)
	if err != nil {
		return nil, 0, err
	}
	return prepareLoaded(cfg, flags, logger)
}

func prepareLoaded(cfg *config.Config, flags MatchFlags, logger *log.Logger) (*config.Config, int64, error) {
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid configuration: %w", err)
	}
	seed, err := resolveSeed(cfg, logger)
	if err != nil {
		return nil, 0, err
	}
	return cfg, seed, nil
}
