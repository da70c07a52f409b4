package statistics

import (
	"math"
	"testing"

	"github.com/lox/matchsim/internal/randutil"
	"github.com/lox/matchsim/tennis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_Empty(t *testing.T) {
	t.Parallel()

	var s Sample
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdDev())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.5))
}

func TestSample_KnownValues(t *testing.T) {
	t.Parallel()

	var s Sample
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(v)
	}

	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5.0, s.Mean(), 1e-9)
	assert.InDelta(t, 32.0/7.0, s.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(32.0/7.0), s.StdDev(), 1e-9)
	assert.InDelta(t, 4.5, s.Median(), 1e-9)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 2.0, s.Percentile(0))
	assert.Equal(t, 9.0, s.Percentile(1))

	low, high := s.ConfidenceInterval95()
	assert.Less(t, low, s.Mean())
	assert.Greater(t, high, s.Mean())
	assert.InDelta(t, s.Mean(), (low+high)/2, 1e-9)
}

func TestSample_ConstantHasZeroVariance(t *testing.T) {
	t.Parallel()

	var s Sample
	for range 1000 {
		s.Add(0.1)
	}
	assert.GreaterOrEqual(t, s.Variance(), 0.0)
	assert.InDelta(t, 0.0, s.StdDev(), 1e-6)
}

func straightSetsWin() MatchResult {
	return MatchResult{
		Seed:   1,
		Winner: tennis.SideA,
		Sets:   [2]int{2, 0},
		SetScores: []tennis.SetScore{
			{Games: [2]int{6, 4}, Winner: tennis.SideA},
			{Games: [2]int{6, 2}, Winner: tennis.SideA},
		},
		Games:        [2]int{12, 6},
		PointsWon:    [2]int{70, 50},
		Endings:      [4]int{10, 40, 30, 40},
		Exchanges:    300,
		LongestRally: 17,
	}
}

func threeSetLoss() MatchResult {
	return MatchResult{
		Seed:   2,
		Winner: tennis.SideB,
		Sets:   [2]int{1, 2},
		SetScores: []tennis.SetScore{
			{Games: [2]int{6, 3}, Winner: tennis.SideA},
			{Games: [2]int{8, 10}, Winner: tennis.SideB},
			{Games: [2]int{2, 6}, Winner: tennis.SideB},
		},
		Games:        [2]int{16, 19},
		PointsWon:    [2]int{110, 120},
		Endings:      [4]int{30, 60, 60, 80},
		Exchanges:    700,
		LongestRally: 25,
	}
}

func TestStatistics_Add(t *testing.T) {
	t.Parallel()

	var stats Statistics
	stats.Add(straightSetsWin())
	stats.Add(threeSetLoss())

	require.NoError(t, stats.Validate())
	assert.Equal(t, 2, stats.Matches)
	assert.Equal(t, [2]int{1, 1}, stats.Wins)
	assert.Equal(t, 0.5, stats.WinRate(tennis.SideA))
	assert.Equal(t, 2.5, stats.SetsPerMatch.Mean())
	assert.Equal(t, 5, stats.GamesPerSet.Count)
	assert.Equal(t, 350, stats.TotalPoints)
	assert.InDelta(t, 180.0/350.0, stats.PointShare(tennis.SideA), 1e-9)
	assert.InDelta(t, 100.0/350.0, stats.EndingShare(tennis.Unreturned), 1e-9)
	assert.InDelta(t, 1000.0/350.0, stats.MeanRally(), 1e-9)
	assert.Equal(t, 25, stats.LongestRally)
	assert.Equal(t, [2]int{8, 10}, stats.LongestSet.Games)
	assert.Equal(t, 1, stats.ExtendedSets)
	assert.Equal(t, 1, stats.StraightSets)
	assert.Equal(t, 1, stats.DecidingSets)
	assert.Equal(t, []string{"2-0", "2-1"}, stats.SortedScoreLines())
}

func TestStatistics_SingleSetMatchIsNotDeciding(t *testing.T) {
	t.Parallel()

	var stats Statistics
	stats.Add(MatchResult{
		Winner:    tennis.SideB,
		Sets:      [2]int{0, 1},
		SetScores: []tennis.SetScore{{Games: [2]int{3, 6}, Winner: tennis.SideB}},
		Games:     [2]int{3, 6},
		PointsWon: [2]int{20, 30},
		Endings:   [4]int{10, 10, 10, 20},
	})

	require.NoError(t, stats.Validate())
	assert.Equal(t, 1, stats.StraightSets)
	assert.Zero(t, stats.DecidingSets)
	assert.Equal(t, []string{"1-0"}, stats.SortedScoreLines())
}

func TestStatistics_WinRateCI95(t *testing.T) {
	t.Parallel()

	var stats Statistics
	low, high := stats.WinRateCI95(tennis.SideA)
	assert.Zero(t, low)
	assert.Zero(t, high)

	for range 100 {
		stats.Add(straightSetsWin())
	}
	low, high = stats.WinRateCI95(tennis.SideA)
	assert.Equal(t, 1.0, low, "no variance when every match is won")
	assert.Equal(t, 1.0, high)

	for range 100 {
		stats.Add(threeSetLoss())
	}
	low, high = stats.WinRateCI95(tennis.SideA)
	assert.InDelta(t, 0.5-1.96*math.Sqrt(0.25/200), low, 1e-9)
	assert.InDelta(t, 0.5+1.96*math.Sqrt(0.25/200), high, 1e-9)
}

func TestStatistics_Validate(t *testing.T) {
	t.Parallel()

	var empty Statistics
	assert.Error(t, empty.Validate())

	var stats Statistics
	stats.Add(straightSetsWin())
	require.NoError(t, stats.Validate())

	stats.Wins[tennis.SideB]++
	assert.ErrorContains(t, stats.Validate(), "wins")

	stats.Wins[tennis.SideB]--
	stats.Endings[tennis.Fault]++
	assert.ErrorContains(t, stats.Validate(), "point endings")
}

func TestCollector_MatchesPlayedMatch(t *testing.T) {
	t.Parallel()

	a, err := tennis.NewPlayer("Roger", 90, 85, 95)
	require.NoError(t, err)
	b, err := tennis.NewPlayer("Rafa", 85, 90, 98)
	require.NoError(t, err)

	collector := NewCollector(42)
	m, err := tennis.NewMatch(a, b, randutil.New(42), tennis.WithObserver(collector))
	require.NoError(t, err)
	winner := m.Play()

	result := collector.Result()
	assert.Equal(t, int64(42), result.Seed)
	assert.Equal(t, winner, result.Winner)
	assert.Equal(t, m.Sets(), result.Sets)
	assert.Equal(t, m.CompletedSets(), result.SetScores)
	assert.Equal(t, m.Snapshot().PointsPlayed, result.TotalPoints())
	assert.Equal(t, [2]float64{95, 98}, result.FinalStamina)

	games := 0
	for _, set := range result.SetScores {
		games += set.Games[tennis.SideA] + set.Games[tennis.SideB]
	}
	assert.Equal(t, games, result.TotalGames())

	var stats Statistics
	stats.Add(result)
	assert.NoError(t, stats.Validate())
}
