package main

import (
	"time"

	"github.com/lox/matchsim/internal/simulator"
)

// SimulateCmd runs a batch of matches and prints aggregate statistics
type SimulateCmd struct {
	MatchFlags

	Matches *int           `short:"n" help:"Number of matches to simulate"`
	Workers *int           `short:"w" help:"Parallel workers (default: number of CPUs)"`
	Timeout *time.Duration `help:"Abort the batch after this long"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := g.logger()

	cfg, err := g.loadConfig(logger)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if c.Matches != nil {
		cfg.Simulation.Matches = *c.Matches
	}
	if c.Workers != nil {
		cfg.Simulation.Workers = *c.Workers
	}
	if c.Timeout != nil {
		cfg.Simulation.Timeout = c.Timeout.String()
	}

	simConfig, err := simulator.FromConfig(cfg, logger)
	if err != nil {
		return err
	}
	simConfig.Seed, err = resolveSeed(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	stats, err := simulator.New(simConfig).Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Simulation finished",
		"matches", stats.Matches,
		"seed", simConfig.Seed,
		"elapsed", time.Since(start).Round(time.Millisecond))

	simulator.PrintSummary(g.stdout, stats)
	return nil
}
