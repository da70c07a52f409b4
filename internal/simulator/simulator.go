package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/matchsim/internal/config"
	"github.com/lox/matchsim/internal/randutil"
	"github.com/lox/matchsim/internal/statistics"
	"github.com/lox/matchsim/tennis"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Matches    int
	Seed       int64
	Workers    int
	Timeout    time.Duration
	Players    [2]config.PlayerConfig
	SetsToWin  int
	SetFatigue float64
	Observers  []tennis.Observer // Attached to every match, must be safe for concurrent use
	Logger     *log.Logger
}

// FromConfig builds a simulator configuration from a loaded match file
func FromConfig(cfg *config.Config, logger *log.Logger) (Config, error) {
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	timeout, err := cfg.SimulationTimeout()
	if err != nil {
		return Config{}, err
	}
	var seed int64
	if cfg.Match.Seed != nil {
		seed = *cfg.Match.Seed
	}
	return Config{
		Matches:    cfg.Simulation.Matches,
		Seed:       seed,
		Workers:    cfg.Simulation.Workers,
		Timeout:    timeout,
		Players:    [2]config.PlayerConfig{cfg.Players[0], cfg.Players[1]},
		SetsToWin:  *cfg.Match.SetsToWin,
		SetFatigue: cfg.Match.SetFatigue,
		Logger:     logger,
	}, nil
}

// Simulator runs batches of independent tennis matches
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.SetsToWin == 0 {
		config.SetsToWin = tennis.DefaultSetsToWin
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Workers > config.Matches && config.Matches > 0 {
		config.Workers = config.Matches
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Run plays every match and returns the aggregated results. Match i uses
// seed Seed+i, so results are identical regardless of worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Matches < 1 {
		return nil, fmt.Errorf("matches must be positive, got %d", s.config.Matches)
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	s.logger.Debug("Starting simulation",
		"matches", s.config.Matches,
		"workers", s.config.Workers,
		"seed", s.config.Seed)

	results := make([]statistics.MatchResult, s.config.Matches)
	var done atomic.Int64
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.config.Workers; w++ {
		g.Go(func() error {
			for i := w; i < s.config.Matches; i += s.config.Workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				seed := randutil.Derive(s.config.Seed, i)
				result, err := s.PlayMatch(seed)
				if err != nil {
					return fmt.Errorf("match %d (seed %d): %w", i+1, seed, err)
				}
				results[i] = result
				if n := done.Add(1); n%1000 == 0 {
					s.logger.Debug("Progress", "matches", n, "elapsed", time.Since(start))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("simulation timed out after %v (%d of %d matches complete): %w",
				s.config.Timeout, done.Load(), s.config.Matches, err)
		}
		return nil, err
	}

	stats := &statistics.Statistics{
		Names: [2]string{s.config.Players[0].Name, s.config.Players[1].Name},
	}
	for _, result := range results {
		stats.Add(result)
	}

	// Validate statistics before returning
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Debug("Simulation complete", "matches", stats.Matches, "elapsed", time.Since(start))
	return stats, nil
}

// PlayMatch plays a single match with its own random source and fresh players
func (s *Simulator) PlayMatch(seed int64) (result statistics.MatchResult, err error) {
	a, err := s.config.Players[0].NewPlayer()
	if err != nil {
		return result, err
	}
	b, err := s.config.Players[1].NewPlayer()
	if err != nil {
		return result, err
	}

	collector := statistics.NewCollector(seed)
	opts := []tennis.MatchOption{
		tennis.WithSetsToWin(s.config.SetsToWin),
		tennis.WithSetFatigue(s.config.SetFatigue),
		tennis.WithObserver(collector),
	}
	for _, o := range s.config.Observers {
		opts = append(opts, tennis.WithObserver(o))
	}

	match, err := tennis.NewMatch(a, b, randutil.New(seed), opts...)
	if err != nil {
		return result, err
	}

	// A runaway rally panics; surface it as an error carrying the seed.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("match aborted: %v", r)
		}
	}()
	match.Play()

	return collector.Result(), nil
}

// RunSimulation is a convenience function for running a simulation from a match file
func RunSimulation(ctx context.Context, cfg *config.Config, logger *log.Logger) (*statistics.Statistics, error) {
	simConfig, err := FromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	return New(simConfig).Run(ctx)
}

// PrintSummary writes a human readable summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	if stats.Matches == 0 {
		fmt.Fprintf(w, "No matches played\n")
		return
	}

	a, b := stats.Names[tennis.SideA], stats.Names[tennis.SideB]

	fmt.Fprintf(w, "\n=== FINAL RESULTS: %s vs %s ===\n", a, b)
	fmt.Fprintf(w, "Matches played: %d\n", stats.Matches)
	for _, side := range []tennis.Side{tennis.SideA, tennis.SideB} {
		low, high := stats.WinRateCI95(side)
		fmt.Fprintf(w, "%s: %d wins (%.1f%%, 95%% CI [%.1f%%, %.1f%%])\n",
			stats.Names[side], stats.Wins[side], stats.WinRate(side)*100, low*100, high*100)
	}

	fmt.Fprintf(w, "\n=== MATCH LENGTH ===\n")
	fmt.Fprintf(w, "Sets per match: %.2f (median %.0f)\n", stats.SetsPerMatch.Mean(), stats.SetsPerMatch.Median())
	fmt.Fprintf(w, "Games per match: %.2f ± %.2f (P5=%.0f, P95=%.0f)\n",
		stats.GamesPerMatch.Mean(), stats.GamesPerMatch.StdDev(),
		stats.GamesPerMatch.Percentile(0.05), stats.GamesPerMatch.Percentile(0.95))
	fmt.Fprintf(w, "Points per match: %.2f ± %.2f (max %.0f)\n",
		stats.PointsPerMatch.Mean(), stats.PointsPerMatch.StdDev(), stats.PointsPerMatch.Max)
	fmt.Fprintf(w, "Games per set: %.2f (max %.0f)\n", stats.GamesPerSet.Mean(), stats.GamesPerSet.Max)
	fmt.Fprintf(w, "Longest set: %d-%d\n",
		stats.LongestSet.Games[tennis.SideA], stats.LongestSet.Games[tennis.SideB])
	fmt.Fprintf(w, "Sets beyond 7 games: %d\n", stats.ExtendedSets)
	fmt.Fprintf(w, "Straight sets: %d, deciding sets: %d\n", stats.StraightSets, stats.DecidingSets)

	fmt.Fprintf(w, "\n=== SCORE LINES ===\n")
	for _, line := range stats.SortedScoreLines() {
		fmt.Fprintf(w, "%s: %d (%.1f%%)\n", line, stats.ScoreLines[line],
			float64(stats.ScoreLines[line])/float64(stats.Matches)*100)
	}

	fmt.Fprintf(w, "\n=== POINT ANALYSIS ===\n")
	fmt.Fprintf(w, "Points won: %s %.1f%%, %s %.1f%%\n",
		a, stats.PointShare(tennis.SideA)*100, b, stats.PointShare(tennis.SideB)*100)
	for _, ending := range []tennis.PointEnding{tennis.Fault, tennis.Unreturned, tennis.UnforcedError, tennis.RallyMiss} {
		fmt.Fprintf(w, "%s: %d (%.1f%%)\n", ending, stats.Endings[ending], stats.EndingShare(ending)*100)
	}
	fmt.Fprintf(w, "Mean rally: %.2f exchanges, longest %d\n", stats.MeanRally(), stats.LongestRally)
}
