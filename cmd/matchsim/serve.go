package main

import (
	"context"
	"errors"

	"github.com/coder/quartz"
	"github.com/lox/matchsim/internal/metrics"
	"github.com/lox/matchsim/internal/spectator"
	"github.com/lox/matchsim/tennis"
	"golang.org/x/sync/errgroup"
)

// ServeCmd streams an endless series of paced matches to websocket spectators
type ServeCmd struct {
	MatchFlags

	Addr          string `help:"Listen address (overrides the server block)"`
	PointInterval string `name:"point-interval" help:"Delay between points, e.g. 750ms"`
	MatchInterval string `name:"match-interval" help:"Pause between matches, e.g. 10s"`
	Matches       int    `help:"Stop after this many matches (0 = forever)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger := g.logger()

	cfg, err := g.loadConfig(logger)
	if err != nil {
		return err
	}
	if c.PointInterval != "" {
		cfg.Server.PointInterval = c.PointInterval
	}
	if c.MatchInterval != "" {
		cfg.Server.MatchInterval = c.MatchInterval
	}
	cfg, seed, err := prepareLoaded(cfg, c.MatchFlags, logger)
	if err != nil {
		return err
	}

	pointInterval, err := cfg.PointInterval()
	if err != nil {
		return err
	}
	matchInterval, err := cfg.MatchInterval()
	if err != nil {
		return err
	}
	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	clock := quartz.NewReal()
	m := metrics.NewManager()
	server := spectator.NewServer(addr, logger, m, clock)
	feed := spectator.NewFeed(spectator.FeedConfig{
		Match:         cfg,
		Seed:          seed,
		PointInterval: pointInterval,
		MatchInterval: matchInterval,
		MaxMatches:    c.Matches,
		Observers:     []tennis.Observer{m},
	}, server, clock, logger)

	ctx, cancel := signalContext()
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	group.Go(func() error {
		err := feed.Run(ctx)
		if err == nil {
			logger.Info("All matches played, still serving the final snapshot")
		}
		return err
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Spectator server stopped")
	return nil
}
