package main

import (
	"fmt"

	"github.com/lox/matchsim/internal/display"
	"github.com/lox/matchsim/internal/history"
	"github.com/lox/matchsim/internal/matchid"
	"github.com/lox/matchsim/internal/randutil"
	"github.com/lox/matchsim/tennis"
)

// PlayCmd plays one match and reports it as text
type PlayCmd struct {
	MatchFlags

	Points bool   `help:"Print every point"`
	Games  bool   `help:"Print every game"`
	Record string `type:"path" placeholder:"DIR" help:"Save a TOML record of the match into DIR"`
}

func (c *PlayCmd) Run(g *Globals) error {
	logger := g.logger().WithPrefix("play")

	cfg, seed, err := prepare(g, c.MatchFlags, logger)
	if err != nil {
		return err
	}

	a, b, err := cfg.NewPlayers()
	if err != nil {
		return err
	}

	reporter := display.NewReporter(g.stdout, display.WithPoints(c.Points), display.WithGames(c.Games))
	opts := append(cfg.MatchOptions(), tennis.WithObserver(reporter))

	var recorder *history.Recorder
	if c.Record != "" {
		id, err := matchid.Generate()
		if err != nil {
			return err
		}
		recorder = history.NewRecorder(id, seed, [2]*tennis.Player{a, b}, cfg.Match.SetFatigue)
		opts = append(opts, tennis.WithObserver(recorder))
	}

	match, err := tennis.NewMatch(a, b, randutil.New(seed), opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.stdout, "%s vs %s, first to %d sets (seed %d)\n", a.Name(), b.Name(), match.SetsToWin(), seed)
	winner := match.Play()
	logger.Debug("Match complete",
		"winner", match.Player(winner).Name(),
		"points", match.Snapshot().PointsPlayed)

	if recorder != nil {
		path, err := history.Save(c.Record, recorder.Record())
		if err != nil {
			return fmt.Errorf("saving match record: %w", err)
		}
		logger.Info("Saved match record", "path", path)
	}
	return nil
}
