package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/matchsim/tennis"
)

// MatchResult is the outcome of a single simulated match
type MatchResult struct {
	Seed         int64             // RNG seed for this match (for replay)
	Winner       tennis.Side       // Winning side
	Sets         [2]int            // Sets won by each side
	SetScores    []tennis.SetScore // Game score of every set in order
	Games        [2]int            // Games won by each side across the match
	PointsWon    [2]int            // Points won by each side across the match
	Endings      [4]int            // Points by tennis.PointEnding
	Exchanges    int               // Rally exchanges across all points
	LongestRally int               // Most exchanges in a single point
	FinalStamina [2]float64        // Stamina after the last recovery
}

// TotalPoints returns the number of points played
func (r MatchResult) TotalPoints() int {
	return r.PointsWon[tennis.SideA] + r.PointsWon[tennis.SideB]
}

// TotalGames returns the number of games played
func (r MatchResult) TotalGames() int {
	return r.Games[tennis.SideA] + r.Games[tennis.SideB]
}

// ScoreLine returns the set score from the winner's point of view, e.g. "2-1"
func (r MatchResult) ScoreLine() string {
	return fmt.Sprintf("%d-%d", r.Sets[r.Winner], r.Sets[r.Winner.Opponent()])
}

// Statistics aggregates many simulated matches between the same two players
type Statistics struct {
	Names   [2]string
	Matches int
	Wins    [2]int

	// Match length distributions
	SetsPerMatch   Sample
	GamesPerMatch  Sample
	PointsPerMatch Sample
	GamesPerSet    Sample

	// Point analytics
	PointsWon    [2]int
	Endings      [4]int // Indexed by tennis.PointEnding
	Exchanges    int
	TotalPoints  int
	LongestRally int
	LongestSet   tennis.SetScore
	ExtendedSets int            // Sets where the winner needed more than seven games
	ScoreLines   map[string]int // "2-0", "2-1", ...
	StraightSets int
	DecidingSets int
}

// Add incorporates a new match result into the statistics
func (s *Statistics) Add(result MatchResult) {
	if s.ScoreLines == nil {
		s.ScoreLines = make(map[string]int)
	}

	s.Matches++
	s.Wins[result.Winner]++

	setsPlayed := result.Sets[tennis.SideA] + result.Sets[tennis.SideB]
	s.SetsPerMatch.Add(float64(setsPlayed))
	s.GamesPerMatch.Add(float64(result.TotalGames()))
	s.PointsPerMatch.Add(float64(result.TotalPoints()))

	for _, set := range result.SetScores {
		games := set.Games[tennis.SideA] + set.Games[tennis.SideB]
		s.GamesPerSet.Add(float64(games))
		if set.Games[set.Winner] > 7 {
			s.ExtendedSets++
		}
		longest := s.LongestSet.Games[tennis.SideA] + s.LongestSet.Games[tennis.SideB]
		if games > longest {
			s.LongestSet = set
		}
	}

	for side := range s.PointsWon {
		s.PointsWon[side] += result.PointsWon[side]
	}
	for e := range s.Endings {
		s.Endings[e] += result.Endings[e]
	}
	s.Exchanges += result.Exchanges
	s.TotalPoints += result.TotalPoints()
	if result.LongestRally > s.LongestRally {
		s.LongestRally = result.LongestRally
	}

	s.ScoreLines[result.ScoreLine()]++
	if result.Sets[result.Winner.Opponent()] == 0 {
		s.StraightSets++
	}
	// A one set match has no deciding set.
	if result.Sets[result.Winner] > 1 && result.Sets[result.Winner.Opponent()] == result.Sets[result.Winner]-1 {
		s.DecidingSets++
	}
}

// WinRate returns the fraction of matches won by side
func (s *Statistics) WinRate(side tennis.Side) float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins[side]) / float64(s.Matches)
}

// WinRateCI95 returns the normal approximation 95% interval for side's win rate
func (s *Statistics) WinRateCI95(side tennis.Side) (float64, float64) {
	if s.Matches == 0 {
		return 0, 0
	}
	p := s.WinRate(side)
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Matches))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// PointShare returns the fraction of all points won by side
func (s *Statistics) PointShare(side tennis.Side) float64 {
	if s.TotalPoints == 0 {
		return 0
	}
	return float64(s.PointsWon[side]) / float64(s.TotalPoints)
}

// EndingShare returns the fraction of points decided by ending
func (s *Statistics) EndingShare(ending tennis.PointEnding) float64 {
	if s.TotalPoints == 0 {
		return 0
	}
	return float64(s.Endings[ending]) / float64(s.TotalPoints)
}

// MeanRally returns the average number of rally exchanges per point
func (s *Statistics) MeanRally() float64 {
	if s.TotalPoints == 0 {
		return 0
	}
	return float64(s.Exchanges) / float64(s.TotalPoints)
}

// SortedScoreLines returns score lines ordered from most to least common
func (s *Statistics) SortedScoreLines() []string {
	lines := make([]string, 0, len(s.ScoreLines))
	for line := range s.ScoreLines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if s.ScoreLines[lines[i]] != s.ScoreLines[lines[j]] {
			return s.ScoreLines[lines[i]] > s.ScoreLines[lines[j]]
		}
		return lines[i] < lines[j]
	})
	return lines
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Matches <= 0 {
		return fmt.Errorf("invalid match count: %d", s.Matches)
	}

	if s.Wins[tennis.SideA]+s.Wins[tennis.SideB] != s.Matches {
		return fmt.Errorf("wins (%d + %d) do not match match count (%d)",
			s.Wins[tennis.SideA], s.Wins[tennis.SideB], s.Matches)
	}

	if s.SetsPerMatch.Count != s.Matches {
		return fmt.Errorf("sets sample length (%d) does not match match count (%d)",
			s.SetsPerMatch.Count, s.Matches)
	}

	if s.PointsWon[tennis.SideA]+s.PointsWon[tennis.SideB] != s.TotalPoints {
		return fmt.Errorf("points won (%d + %d) do not match total points (%d)",
			s.PointsWon[tennis.SideA], s.PointsWon[tennis.SideB], s.TotalPoints)
	}

	endings := 0
	for _, n := range s.Endings {
		endings += n
	}
	if endings != s.TotalPoints {
		return fmt.Errorf("point endings total (%d) does not match total points (%d)", endings, s.TotalPoints)
	}

	lines := 0
	for _, n := range s.ScoreLines {
		lines += n
	}
	if lines != s.Matches {
		return fmt.Errorf("score lines total (%d) does not match match count (%d)", lines, s.Matches)
	}

	return nil
}
