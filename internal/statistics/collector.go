package statistics

import "github.com/lox/matchsim/tennis"

// Collector is a tennis.Observer that builds a MatchResult while a match is
// being played.
type Collector struct {
	result MatchResult
}

// NewCollector returns a collector for the match played with seed.
func NewCollector(seed int64) *Collector {
	return &Collector{result: MatchResult{Seed: seed}}
}

// OnEvent implements tennis.Observer.
func (c *Collector) OnEvent(e tennis.Event) {
	switch ev := e.(type) {
	case tennis.PointEvent:
		pt := ev.Point
		c.result.PointsWon[pt.Winner]++
		c.result.Endings[pt.Ending]++
		c.result.Exchanges += pt.Exchanges
		if pt.Exchanges > c.result.LongestRally {
			c.result.LongestRally = pt.Exchanges
		}
	case tennis.GameEvent:
		c.result.Games[ev.Record.Winner]++
	case tennis.SetEvent:
		c.result.Sets[ev.Score.Winner]++
		c.result.SetScores = append(c.result.SetScores, ev.Score)
	case tennis.MatchEvent:
		c.result.Winner = ev.Winner
		for side, p := range ev.Snapshot.Players {
			c.result.FinalStamina[side] = p.Stamina
		}
	}
}

// Result returns the collected result. It is only complete once the match
// has published its MatchEvent.
func (c *Collector) Result() MatchResult {
	return c.result
}
