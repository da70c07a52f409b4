package spectator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/matchsim/internal/config"
	"github.com/lox/matchsim/internal/matchid"
	"github.com/lox/matchsim/internal/randutil"
	"github.com/lox/matchsim/tennis"
)

// FeedConfig controls the matches a Feed plays
type FeedConfig struct {
	Match         *config.Config
	Seed          int64         // Seed of the first match, later matches use Seed+i
	PointInterval time.Duration // Delay between points
	MatchInterval time.Duration // Pause after each match
	MaxMatches    int           // 0 plays until the context ends
	Observers     []tennis.Observer
}

// Feed plays matches point by point at spectator pace and publishes them to
// a Server.
type Feed struct {
	config FeedConfig
	server *Server
	clock  quartz.Clock
	logger *log.Logger
}

// NewFeed creates a feed publishing to server
func NewFeed(cfg FeedConfig, server *Server, clock quartz.Clock, logger *log.Logger) *Feed {
	return &Feed{
		config: cfg,
		server: server,
		clock:  clock,
		logger: logger.WithPrefix("feed"),
	}
}

// Run plays matches until MaxMatches have been played or ctx is cancelled
func (f *Feed) Run(ctx context.Context) error {
	for i := 0; f.config.MaxMatches == 0 || i < f.config.MaxMatches; i++ {
		if i > 0 {
			if err := f.sleep(ctx, f.config.MatchInterval); err != nil {
				return err
			}
		}
		if err := f.playMatch(ctx, randutil.Derive(f.config.Seed, i)); err != nil {
			return err
		}
	}
	return nil
}

func (f *Feed) playMatch(ctx context.Context, seed int64) error {
	a, b, err := f.config.Match.NewPlayers()
	if err != nil {
		return err
	}

	opts := append(f.config.Match.MatchOptions(), tennis.WithObserver(f.server))
	for _, o := range f.config.Observers {
		opts = append(opts, tennis.WithObserver(o))
	}
	match, err := tennis.NewMatch(a, b, randutil.New(seed), opts...)
	if err != nil {
		return err
	}

	id, err := matchid.Generate()
	if err != nil {
		return err
	}

	// The ticker exists before spectators hear about the match
	ticker := f.clock.NewTicker(f.config.PointInterval, "spectator", "point")
	defer ticker.Stop()

	f.logger.Info("Match starting", "id", id, "seed", seed, "players", fmt.Sprintf("%s vs %s", a.Name(), b.Name()))
	f.server.StartMatch(id, seed, match.Snapshot())

	for !match.Complete() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			match.Step()
		}
	}

	snap := match.Snapshot()
	f.logger.Info("Match complete", "id", id, "winner", snap.Players[snap.Winner].Name, "score", snap.SetLine())
	return nil
}

func (f *Feed) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := f.clock.NewTimer(d, "spectator", "pause")
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
