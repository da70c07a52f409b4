package main

import (
	"time"

	"github.com/coder/quartz"
	"github.com/lox/matchsim/internal/randutil"
	"github.com/lox/matchsim/internal/tui"
	"github.com/lox/matchsim/tennis"
)

// WatchCmd plays a match in the terminal UI
type WatchCmd struct {
	MatchFlags

	Interval time.Duration `default:"400ms" help:"Delay between points"`
}

func (c *WatchCmd) Run(g *Globals) error {
	logger := g.logger()

	cfg, seed, err := prepare(g, c.MatchFlags, logger)
	if err != nil {
		return err
	}

	a, b, err := cfg.NewPlayers()
	if err != nil {
		return err
	}
	match, err := tennis.NewMatch(a, b, randutil.New(seed), cfg.MatchOptions()...)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	model := tui.NewModel(match, quartz.NewReal(), c.Interval, logger)
	return tui.Run(ctx, model)
}
