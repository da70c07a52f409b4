// Package tui renders a live scoreboard for a match being played point by
// point.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/matchsim/internal/display"
	"github.com/lox/matchsim/tennis"
)

// DefaultInterval is the delay between points.
const DefaultInterval = 400 * time.Millisecond

const staminaBarWidth = 20

// tickMsg asks the model to play the next point
type tickMsg struct{}

// Model is the Bubble Tea model driving a match
type Model struct {
	match    *tennis.Match
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger

	logViewport viewport.Model
	matchLog    []string
	last        tennis.MatchStep
	paused      bool
	quitting    bool

	width       int
	height      int
	initialized bool
}

// NewModel creates a model that plays match one point per interval of clock
func NewModel(match *tennis.Match, clock quartz.Clock, interval time.Duration, logger *log.Logger) *Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		match:       match,
		clock:       clock,
		interval:    interval,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
	}
}

// Run plays the match in a full screen program until it is quit or ctx ends
func Run(ctx context.Context, model *Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Init starts the point clock
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// tick arms the clock now so the timer exists before the command runs
func (m *Model) tick() tea.Cmd {
	fired := make(chan struct{}, 1)
	m.clock.AfterFunc(m.interval, func() {
		fired <- struct{}{}
	}, "tui", "tick")

	return func() tea.Msg {
		<-fired
		return tickMsg{}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if m.match.Complete() {
			return m, nil
		}
		if !m.paused {
			m.advance()
		}
		if !m.match.Complete() {
			cmds = append(cmds, m.tick())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "n":
			if m.paused && !m.match.Complete() {
				m.advance()
			}
		case "s":
			if m.paused && !m.match.Complete() {
				m.finishSet()
			}
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// advance plays one point and logs what happened
func (m *Model) advance() {
	step := m.match.Step()
	m.last = step
	snap := m.match.Snapshot()

	m.addLogEntry(fmt.Sprintf("%s wins the point (%s, %d exchanges)",
		snap.Players[step.Point.Winner].Name, step.Point.Ending, step.Point.Exchanges))

	if step.GameOver {
		m.addLogEntry(fmt.Sprintf("Game %s", snap.Players[step.Game.Winner].Name))
	}
	if step.SetOver {
		score := snap.CompletedSets[len(snap.CompletedSets)-1]
		m.addLogEntry(display.FormatSet(tennis.SetEvent{Set: step.SetNumber, Score: score, Snapshot: snap}))
	}
	if step.MatchOver {
		m.addLogEntry(display.FormatMatch(tennis.MatchEvent{Winner: step.Winner, Snapshot: snap}))
		m.logger.Info("Match complete", "winner", snap.Players[step.Winner].Name, "score", snap.SetLine())
	}
}

// finishSet plays points until the current set ends
func (m *Model) finishSet() {
	for !m.match.Complete() {
		m.advance()
		if m.last.SetOver {
			return
		}
	}
}

func (m *Model) addLogEntry(entry string) {
	m.matchLog = append(m.matchLog, entry)
	m.logViewport.SetContent(strings.Join(m.matchLog, "\n"))
	m.logViewport.GotoBottom()
}

// Log returns the entries written so far
func (m *Model) Log() []string {
	return append([]string(nil), m.matchLog...)
}

// Paused reports whether the point clock is ignored
func (m *Model) Paused() bool { return m.paused }

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	board := m.renderScoreboard()
	help := InfoStyle.Render(m.renderHelp())
	boardHeight := lipgloss.Height(board) + lipgloss.Height(help)

	logWidth := m.width - 2
	logHeight := m.height - boardHeight - 2
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	if !m.initialized && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight).
		Render(LogStyle.Render(m.logViewport.View()))

	return lipgloss.JoinVertical(lipgloss.Left, board, logPane, help)
}

// renderScoreboard renders one row per player with sets, games, points and stamina
func (m *Model) renderScoreboard() string {
	snap := m.match.Snapshot()
	var b strings.Builder

	title := fmt.Sprintf("Best of %d sets", 2*snap.SetsToWin-1)
	if snap.InSet {
		title += fmt.Sprintf(" · Set %d", snap.SetNumber)
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, p := range snap.Players {
		nameWidth = max(nameWidth, len(p.Name))
	}

	for _, side := range []tennis.Side{tennis.SideA, tennis.SideB} {
		p := snap.Players[side]

		marker := "  "
		if snap.InSet && snap.Server == side {
			marker = ServerStyle.Render("● ")
		}
		if snap.Complete && snap.Winner == side {
			marker = WinnerStyle.Render("★ ")
		}

		points := snap.PointLabels[side]
		if !snap.InSet {
			points = "-"
		}

		fmt.Fprintf(&b, "%s%-*s  %s  %s  %s  %s\n",
			marker, nameWidth, p.Name,
			SetStyle.Render(fmt.Sprintf("sets %d", snap.Sets[side])),
			ScoreStyle.Render(fmt.Sprintf("games %d", snap.Games[side])),
			ScoreStyle.Render(fmt.Sprintf("%-4s", points)),
			renderStamina(p))
	}

	if line := snap.SetLine(); line != "" {
		b.WriteString(InfoStyle.Render("Sets: " + line))
		b.WriteString("\n")
	}
	if m.last.Point.Exchanges > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Last rally: %d exchanges", m.last.Point.Exchanges)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderStamina(p tennis.PlayerSnapshot) string {
	ratio := 0.0
	if p.MaxStamina > 0 {
		ratio = p.Stamina / p.MaxStamina
	}
	filled := int(ratio*staminaBarWidth + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", staminaBarWidth-filled)

	style := StaminaStyle
	if ratio < 0.5 {
		style = TiredStyle
	}
	return style.Render(fmt.Sprintf("%s %.0f/%.0f", bar, p.Stamina, p.MaxStamina))
}

func (m *Model) renderHelp() string {
	if m.match.Complete() {
		return "Match over • q to quit • ↑↓ scroll"
	}
	if m.paused {
		return "Paused • space to resume • n next point • s finish set • q to quit"
	}
	return "space to pause • ↑↓ scroll • q to quit"
}
