package tennis

import "fmt"

// DefaultSetsToWin makes a match best of three.
const DefaultSetsToWin = 2

// MatchOption configures a Match during creation.
type MatchOption func(*matchConfig)

type matchConfig struct {
	setsToWin  int
	setFatigue float64
	observers  []Observer
}

// WithSetsToWin sets how many sets decide the match.
func WithSetsToWin(n int) MatchOption {
	return func(c *matchConfig) { c.setsToWin = n }
}

// WithSetFatigue drains both players' stamina by units after every set,
// before recovery is applied.
func WithSetFatigue(units float64) MatchOption {
	return func(c *matchConfig) { c.setFatigue = units }
}

// WithObserver registers an observer for match events.
func WithObserver(o Observer) MatchOption {
	return func(c *matchConfig) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// MatchStep reports what a single Match.Step call did.
type MatchStep struct {
	Point     Point
	GameOver  bool
	Game      GameRecord
	SetOver   bool
	SetWinner Side
	SetNumber int
	MatchOver bool
	Winner    Side
}

// Match runs sets until one side has won SetsToWin of them.
// A Match is not safe for concurrent use.
type Match struct {
	players    [2]*Player
	rng        RNG
	setsToWin  int
	setFatigue float64
	observers  []Observer

	sets      [2]int
	current   *Set
	completed []SetScore
	points    int
	complete  bool
	winner    Side
}

// NewMatch creates a match between a (SideA) and b (SideB).
func NewMatch(a, b *Player, rng RNG, opts ...MatchOption) (*Match, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: two players are required", ErrInvalidConfig)
	}
	if a == b {
		return nil, fmt.Errorf("%w: a player cannot play against themselves", ErrInvalidConfig)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: rng is required", ErrInvalidConfig)
	}

	cfg := &matchConfig{setsToWin: DefaultSetsToWin}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.setsToWin < 1 {
		return nil, fmt.Errorf("%w: sets to win must be at least 1, got %d", ErrInvalidConfig, cfg.setsToWin)
	}
	if cfg.setFatigue < 0 {
		return nil, fmt.Errorf("%w: set fatigue cannot be negative, got %v", ErrInvalidConfig, cfg.setFatigue)
	}

	return &Match{
		players:    [2]*Player{a, b},
		rng:        rng,
		setsToWin:  cfg.setsToWin,
		setFatigue: cfg.setFatigue,
		observers:  cfg.observers,
	}, nil
}

// Player returns the participant on side.
func (m *Match) Player(side Side) *Player { return m.players[side] }

func (m *Match) SetsToWin() int { return m.setsToWin }
func (m *Match) Sets() [2]int   { return m.sets }
func (m *Match) Complete() bool { return m.complete }

// CurrentSet returns the set in progress, or nil between sets.
func (m *Match) CurrentSet() *Set { return m.current }

// Winner returns the winning side once the match is complete.
func (m *Match) Winner() (Side, bool) {
	return m.winner, m.complete
}

// CompletedSets returns the scores of finished sets in order.
func (m *Match) CompletedSets() []SetScore {
	out := make([]SetScore, len(m.completed))
	copy(out, m.completed)
	return out
}

// Step plays exactly one point, starting a new set first if none is in
// progress. Each new set picks its first server at random.
func (m *Match) Step() MatchStep {
	if m.complete {
		return MatchStep{MatchOver: true, Winner: m.winner, SetNumber: len(m.completed)}
	}
	if m.current == nil {
		m.startSet()
	}

	setNumber := len(m.completed) + 1
	gameNumber := m.current.GamesPlayed() + 1
	ss := m.current.AdvancePoint()
	m.points++

	step := MatchStep{
		Point:     ss.Point,
		GameOver:  ss.GameOver,
		Game:      ss.Game,
		SetOver:   ss.SetOver,
		SetWinner: ss.Winner,
		SetNumber: setNumber,
	}

	m.emit(func(snap Snapshot) Event {
		return PointEvent{Set: setNumber, Game: gameNumber, Point: ss.Point, Snapshot: snap}
	})
	if ss.GameOver {
		m.emit(func(snap Snapshot) Event {
			return GameEvent{Set: setNumber, Game: gameNumber, Record: ss.Game, Snapshot: snap}
		})
	}
	if ss.SetOver {
		score := m.finishSet(ss.Winner)
		m.emit(func(snap Snapshot) Event {
			return SetEvent{Set: setNumber, Score: score, Snapshot: snap}
		})
		if m.complete {
			m.emit(func(snap Snapshot) Event {
				return MatchEvent{Winner: m.winner, Snapshot: snap}
			})
		}
	}

	step.MatchOver, step.Winner = m.complete, m.winner
	return step
}

func (m *Match) startSet() {
	first := SideB
	if m.rng.Float64() < 0.5 {
		first = SideA
	}
	m.current = NewSet(m.players, first, m.rng)
}

func (m *Match) finishSet(winner Side) SetScore {
	score := SetScore{Games: m.current.Games(), Winner: winner}
	m.completed = append(m.completed, score)
	m.sets[winner]++
	m.current = nil

	for _, p := range m.players {
		p.Tire(m.setFatigue)
		p.Recover()
	}

	if m.sets[winner] >= m.setsToWin {
		m.complete = true
		m.winner = winner
	}
	return score
}

// PlaySet plays the current (or a new) set to completion and returns its winner.
// On a finished match it returns the match winner without playing.
func (m *Match) PlaySet() Side {
	for {
		step := m.Step()
		if step.SetOver {
			return step.SetWinner
		}
		if step.MatchOver {
			return step.Winner
		}
	}
}

// Play runs the match to completion and returns the winner.
func (m *Match) Play() Side {
	for !m.complete {
		m.PlaySet()
	}
	return m.winner
}

func (m *Match) emit(build func(Snapshot) Event) {
	if len(m.observers) == 0 {
		return
	}
	e := build(m.Snapshot())
	for _, o := range m.observers {
		o.OnEvent(e)
	}
}

// Snapshot captures the current state for presentation.
func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{
		SetsToWin:     m.setsToWin,
		Sets:          m.sets,
		SetNumber:     len(m.completed),
		CompletedSets: m.CompletedSets(),
		PointsPlayed:  m.points,
		Complete:      m.complete,
		Winner:        m.winner,
		PointLabels:   [2]string{"0", "0"},
	}
	for side, p := range m.players {
		snap.Players[side] = PlayerSnapshot{
			Name:       p.Name(),
			Stamina:    p.Stamina(),
			MaxStamina: p.MaxStamina(),
		}
	}

	if m.current != nil {
		snap.InSet = true
		snap.SetNumber++
		snap.Games = m.current.Games()
		snap.Server = m.current.Server()
		if g := m.current.CurrentGame(); g != nil {
			snap.Points = g.Points()
			snap.PointLabels = g.Labels()
		}
	}
	return snap
}
