// Package display prints match progress as styled text.
package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/matchsim/tennis"
	"github.com/muesli/termenv"
)

// Reporter is a tennis.Observer that writes a running commentary to w.
// By default only set and match results are printed.
type Reporter struct {
	w      io.Writer
	styles styles
	points bool
	games  bool
}

// Option configures a Reporter.
type Option func(*reporterConfig)

type reporterConfig struct {
	profile    termenv.Profile
	hasProfile bool
	points     bool
	games      bool
}

// WithProfile forces a colour profile instead of detecting one from w.
func WithProfile(p termenv.Profile) Option {
	return func(c *reporterConfig) {
		c.profile = p
		c.hasProfile = true
	}
}

// WithPoints prints every point as it is resolved.
func WithPoints(enabled bool) Option {
	return func(c *reporterConfig) { c.points = enabled }
}

// WithGames prints every completed game.
func WithGames(enabled bool) Option {
	return func(c *reporterConfig) { c.games = enabled }
}

type styles struct {
	set    lipgloss.Style
	match  lipgloss.Style
	game   lipgloss.Style
	point  lipgloss.Style
	server lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		set:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		match:  r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		game:   r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		point:  r.NewStyle().Foreground(lipgloss.Color("#626262")),
		server: r.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
	}
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, opts ...Option) *Reporter {
	var cfg reporterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var renderer *lipgloss.Renderer
	if cfg.hasProfile {
		renderer = lipgloss.NewRenderer(w, termenv.WithProfile(cfg.profile))
	} else {
		renderer = lipgloss.NewRenderer(w)
	}

	return &Reporter{
		w:      w,
		styles: newStyles(renderer),
		points: cfg.points,
		games:  cfg.games,
	}
}

// OnEvent implements tennis.Observer.
func (r *Reporter) OnEvent(e tennis.Event) {
	switch ev := e.(type) {
	case tennis.PointEvent:
		if r.points {
			fmt.Fprintln(r.w, r.styles.point.Render(FormatPoint(ev)))
		}
	case tennis.GameEvent:
		if r.games {
			fmt.Fprintln(r.w, r.styles.game.Render(FormatGame(ev)))
		}
	case tennis.SetEvent:
		fmt.Fprintln(r.w, r.styles.set.Render(FormatSet(ev)))
	case tennis.MatchEvent:
		fmt.Fprintln(r.w, r.styles.match.Render(FormatMatch(ev)))
	}
}

// FormatPoint describes a point, e.g. "  [Set 1 Game 3] Roger wins (unreturned, 1 exchanges) 30-15".
func FormatPoint(ev tennis.PointEvent) string {
	s := ev.Snapshot
	winner := s.Players[ev.Point.Winner].Name
	score := s.PointLabels[tennis.SideA] + "-" + s.PointLabels[tennis.SideB]
	if !s.InSet || s.Points == [2]int{} {
		score = "game"
	}
	return fmt.Sprintf("  [Set %d Game %d] %s wins (%s, %d exchanges) %s",
		ev.Set, ev.Game, winner, ev.Point.Ending, ev.Point.Exchanges, score)
}

// FormatGame describes a completed game, e.g. "Game Roger (served by Rafa), games 3-1".
func FormatGame(ev tennis.GameEvent) string {
	s := ev.Snapshot
	return fmt.Sprintf("Game %s (served by %s), games %d-%d",
		s.Players[ev.Record.Winner].Name,
		s.Players[ev.Record.Server].Name,
		s.Games[tennis.SideA], s.Games[tennis.SideB])
}

// FormatSet reports a completed set and the running set count, e.g.
// "Set won by Roger. Current score: Roger 1 - 0 Rafa".
func FormatSet(ev tennis.SetEvent) string {
	s := ev.Snapshot
	return fmt.Sprintf("Set won by %s. Current score: %s %d - %d %s",
		s.Players[ev.Score.Winner].Name,
		s.Players[tennis.SideA].Name, s.Sets[tennis.SideA],
		s.Sets[tennis.SideB], s.Players[tennis.SideB].Name)
}

// FormatMatch reports the winner, e.g. "Match winner: Roger (2-1) 6-4 3-6 6-2".
func FormatMatch(ev tennis.MatchEvent) string {
	s := ev.Snapshot
	return fmt.Sprintf("Match winner: %s (%d-%d) %s",
		s.Players[ev.Winner].Name,
		s.Sets[ev.Winner], s.Sets[ev.Winner.Opponent()],
		s.SetLine())
}
