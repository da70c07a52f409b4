package tennis

import (
	"testing"

	"github.com/lox/matchsim/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T, a, b *Player, seed int64, opts ...MatchOption) *Match {
	t.Helper()
	m, err := NewMatch(a, b, randutil.New(seed), opts...)
	require.NoError(t, err)
	return m
}

// recorder collects every event a match publishes.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) points() []Point {
	var out []Point
	for _, e := range r.events {
		if pe, ok := e.(PointEvent); ok {
			out = append(out, pe.Point)
		}
	}
	return out
}

func TestNewMatchValidation(t *testing.T) {
	t.Parallel()

	a := mustPlayer(t, "Roger", 90, 85, 95)
	b := mustPlayer(t, "Rafa", 85, 90, 98)
	rng := randutil.New(1)

	tests := []struct {
		name string
		a, b *Player
		rng  RNG
		opts []MatchOption
	}{
		{name: "missing player", a: a, b: nil, rng: rng},
		{name: "same player twice", a: a, b: a, rng: rng},
		{name: "missing rng", a: a, b: b, rng: nil},
		{name: "zero sets to win", a: a, b: b, rng: rng, opts: []MatchOption{WithSetsToWin(0)}},
		{name: "negative fatigue", a: a, b: b, rng: rng, opts: []MatchOption{WithSetFatigue(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatch(tt.a, tt.b, tt.rng, tt.opts...)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, m)
		})
	}

	m, err := NewMatch(a, b, rng)
	require.NoError(t, err)
	assert.Equal(t, DefaultSetsToWin, m.SetsToWin())
	assert.Same(t, a, m.Player(SideA))
	assert.Same(t, b, m.Player(SideB))
}

func TestDominantPlayerWinsEverything(t *testing.T) {
	t.Parallel()

	ace := mustPlayer(t, "Ace", 100, 100, 100)
	novice := mustPlayer(t, "Novice", 0, 0, 100)
	rec := &recorder{}
	m := newTestMatch(t, ace, novice, 2024, WithObserver(rec))

	winner := m.Play()

	assert.Equal(t, SideA, winner)
	assert.Equal(t, [2]int{2, 0}, m.Sets())
	sets := m.CompletedSets()
	require.Len(t, sets, 2)
	for _, s := range sets {
		assert.Equal(t, [2]int{6, 0}, s.Games)
		assert.Equal(t, SideA, s.Winner)
	}

	games := 0
	for _, e := range rec.events {
		switch ev := e.(type) {
		case GameEvent:
			games++
			assert.Equal(t, [2]int{4, 0}, ev.Record.Points)
			assert.Equal(t, SideA, ev.Record.Winner)
		case PointEvent:
			assert.Equal(t, SideA, ev.Point.Winner)
			if ev.Point.Server == SideA {
				assert.Equal(t, Unreturned, ev.Point.Ending)
			} else {
				assert.Equal(t, Fault, ev.Point.Ending)
			}
		}
	}
	assert.Equal(t, 12, games)
	assert.Len(t, rec.points(), 48)
}

func TestMatchStopsExactlyAtSetsToWin(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3} {
		for seed := int64(0); seed < 30; seed++ {
			a := mustPlayer(t, "Roger", 90, 85, 95)
			b := mustPlayer(t, "Rafa", 85, 90, 98)
			m := newTestMatch(t, a, b, seed, WithSetsToWin(n))

			winner := m.Play()
			sets := m.Sets()
			assert.Equal(t, n, sets[winner], "n=%d seed=%d", n, seed)
			assert.Less(t, sets[winner.Opponent()], n, "n=%d seed=%d", n, seed)
			assert.Len(t, m.CompletedSets(), sets[SideA]+sets[SideB])
		}
	}
}

func TestSingleSetMatch(t *testing.T) {
	t.Parallel()

	a := mustPlayer(t, "Roger", 90, 85, 95)
	b := mustPlayer(t, "Rafa", 85, 90, 98)
	m := newTestMatch(t, a, b, 5, WithSetsToWin(1))

	setWinner := m.PlaySet()

	assert.True(t, m.Complete())
	require.Len(t, m.CompletedSets(), 1)
	winner, ok := m.Winner()
	assert.True(t, ok)
	assert.Equal(t, setWinner, winner)
}

func TestMatchIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	run := func() ([]Point, []SetScore, Snapshot) {
		rec := &recorder{}
		a := mustPlayer(t, "Roger", 90, 85, 95)
		b := mustPlayer(t, "Rafa", 85, 90, 98)
		m := newTestMatch(t, a, b, 31337, WithObserver(rec), WithSetFatigue(4))
		m.Play()
		return rec.points(), m.CompletedSets(), m.Snapshot()
	}

	points1, sets1, snap1 := run()
	points2, sets2, snap2 := run()

	require.NotEmpty(t, points1)
	assert.Equal(t, points1, points2)
	assert.Equal(t, sets1, sets2)
	assert.Equal(t, snap1, snap2)
}

func TestStaminaChangesOnlyAtSetBoundaries(t *testing.T) {
	t.Parallel()

	a := mustPlayer(t, "Roger", 90, 85, 100)
	b := mustPlayer(t, "Rafa", 85, 90, 80)
	expected := [2]float64{100, 80}
	setEvents := 0

	check := ObserverFunc(func(e Event) {
		switch ev := e.(type) {
		case PointEvent:
			assert.Equal(t, expected[SideA], ev.Snapshot.Players[SideA].Stamina)
			assert.Equal(t, expected[SideB], ev.Snapshot.Players[SideB].Stamina)
		case SetEvent:
			setEvents++
			for side, ceiling := range [2]float64{100, 80} {
				// fatigue of 10, then recovery of 5, capped at max
				expected[side] = min(ceiling, expected[side]-10+RecoveryIncrement)
			}
			assert.Equal(t, expected[SideA], ev.Snapshot.Players[SideA].Stamina)
			assert.Equal(t, expected[SideB], ev.Snapshot.Players[SideB].Stamina)
		}
	})

	m := newTestMatch(t, a, b, 8, WithSetsToWin(3), WithSetFatigue(10), WithObserver(check))
	m.Play()

	assert.GreaterOrEqual(t, setEvents, 3)
	assert.Equal(t, expected[SideA], a.Stamina())
	assert.Equal(t, expected[SideB], b.Stamina())
}

func TestRecoveryWithoutFatigueKeepsFullStamina(t *testing.T) {
	t.Parallel()

	a := mustPlayer(t, "Roger", 90, 85, 95)
	b := mustPlayer(t, "Rafa", 85, 90, 98)
	m := newTestMatch(t, a, b, 12)
	m.Play()

	assert.Equal(t, 95.0, a.Stamina())
	assert.Equal(t, 98.0, b.Stamina())
}

func TestStepAfterCompletionIsNoop(t *testing.T) {
	t.Parallel()

	a := mustPlayer(t, "Roger", 90, 85, 95)
	b := mustPlayer(t, "Rafa", 85, 90, 98)
	rec := &recorder{}
	m := newTestMatch(t, a, b, 99, WithObserver(rec))
	winner := m.Play()
	before := m.Snapshot()
	events := len(rec.events)

	step := m.Step()
	assert.True(t, step.MatchOver)
	assert.Equal(t, winner, step.Winner)
	assert.Equal(t, winner, m.PlaySet())
	assert.Equal(t, winner, m.Play())
	assert.Equal(t, before, m.Snapshot())
	assert.Len(t, rec.events, events)
}

func TestMatchEventsAreOrdered(t *testing.T) {
	t.Parallel()

	a := mustPlayer(t, "Roger", 90, 85, 95)
	b := mustPlayer(t, "Rafa", 85, 90, 98)
	rec := &recorder{}
	m := newTestMatch(t, a, b, 4, WithObserver(rec))
	m.Play()

	require.NotEmpty(t, rec.events)
	last, ok := rec.events[len(rec.events)-1].(MatchEvent)
	require.True(t, ok, "match event comes last")
	assert.True(t, last.Snapshot.Complete)

	sets := 0
	for i, e := range rec.events {
		switch ev := e.(type) {
		case GameEvent:
			_, prevIsPoint := rec.events[i-1].(PointEvent)
			assert.True(t, prevIsPoint, "game event follows its deciding point")
		case SetEvent:
			sets++
			assert.Equal(t, sets, ev.Set)
			_, prevIsGame := rec.events[i-1].(GameEvent)
			assert.True(t, prevIsGame, "set event follows its deciding game")
		case MatchEvent:
			assert.Equal(t, len(rec.events)-1, i)
		}
	}
	assert.Equal(t, len(m.CompletedSets()), sets)
}

func TestSnapshotDuringPlay(t *testing.T) {
	t.Parallel()

	a := mustPlayer(t, "Roger", 90, 85, 95)
	b := mustPlayer(t, "Rafa", 85, 90, 98)
	m := newTestMatch(t, a, b, 21)

	snap := m.Snapshot()
	assert.False(t, snap.InSet)
	assert.Equal(t, 0, snap.SetNumber)
	assert.Equal(t, "Roger 0-0 Rafa | games 0-0 | 0-0", snap.String())

	step := m.Step()
	snap = m.Snapshot()
	assert.True(t, snap.InSet)
	assert.Equal(t, 1, snap.SetNumber)
	assert.Equal(t, 1, snap.PointsPlayed)
	assert.Equal(t, step.Point.Server, snap.Server)
	assert.Equal(t, 1, snap.Points[step.Point.Winner])
	assert.Equal(t, "15", snap.PointLabels[step.Point.Winner])
	assert.Equal(t, "Roger", snap.Players[SideA].Name)
	assert.Equal(t, 98.0, snap.Players[SideB].MaxStamina)

	m.Play()
	snap = m.Snapshot()
	assert.False(t, snap.InSet)
	assert.True(t, snap.Complete)
	assert.Contains(t, snap.String(), "winner "+snap.Players[snap.Winner].Name)
	assert.NotEmpty(t, snap.SetLine())
}

func TestFirstServerDrawnPerSet(t *testing.T) {
	t.Parallel()

	seen := map[Side]bool{}
	for seed := int64(0); seed < 40; seed++ {
		a := mustPlayer(t, "Roger", 90, 85, 95)
		b := mustPlayer(t, "Rafa", 85, 90, 98)
		m := newTestMatch(t, a, b, seed)
		step := m.Step()
		seen[step.Point.Server] = true
	}
	assert.True(t, seen[SideA])
	assert.True(t, seen[SideB])
}

func TestSideText(t *testing.T) {
	t.Parallel()

	for _, s := range []Side{SideA, SideB} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var decoded Side
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, s, decoded)
		assert.Equal(t, s, s.Opponent().Opponent())
	}

	_, err := Side(7).MarshalText()
	assert.Error(t, err)
	var bad Side
	assert.Error(t, bad.UnmarshalText([]byte("C")))
}
