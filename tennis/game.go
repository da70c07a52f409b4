package tennis

const (
	pointsToWinGame = 4
	winningMargin   = 2
)

var pointLabels = [...]string{"0", "15", "30", "40"}

// Game tracks the points of a single service game.
type Game struct {
	players  [2]*Player
	server   Side
	points   [2]int
	resolver *PointResolver
	complete bool
	winner   Side
}

// NewGame starts a game with players[server] serving.
func NewGame(players [2]*Player, server Side, rng RNG) *Game {
	return &Game{
		players:  players,
		server:   server,
		resolver: NewPointResolver(rng),
	}
}

func (g *Game) Server() Side   { return g.server }
func (g *Game) Receiver() Side { return g.server.Opponent() }
func (g *Game) Points() [2]int { return g.points }
func (g *Game) Complete() bool { return g.complete }

// PointsPlayed is the number of points scored so far.
func (g *Game) PointsPlayed() int {
	return g.points[SideA] + g.points[SideB]
}

// Winner returns the winning side once the game is complete.
func (g *Game) Winner() (Side, bool) {
	return g.winner, g.complete
}

// PlayPoint resolves one point without scoring it.
func (g *Game) PlayPoint() Point {
	return g.resolver.Resolve(g.players, g.server)
}

// Award credits a point to winner and reports the game winner the first time
// a side reaches four points with a two point lead. Awarding on a finished
// game changes nothing.
func (g *Game) Award(winner Side) (Side, bool) {
	if g.complete {
		return g.winner, true
	}
	g.points[winner]++
	if leads(g.points, winner, pointsToWinGame) {
		g.complete = true
		g.winner = winner
	}
	return g.winner, g.complete
}

// GameWinner applies the game completion rule to a point count, for scores
// rebuilt outside a running Game.
func GameWinner(points [2]int) (Side, bool) {
	return decided(points, pointsToWinGame)
}

// Advance plays and scores one point. On a finished game it returns the
// stored winner and a zero Point.
func (g *Game) Advance() (Point, Side, bool) {
	if g.complete {
		return Point{}, g.winner, true
	}
	pt := g.PlayPoint()
	winner, done := g.Award(pt.Winner)
	return pt, winner, done
}

// Play runs the game to completion.
func (g *Game) Play() Side {
	for {
		if _, winner, done := g.Advance(); done {
			return winner
		}
	}
}

// Labels returns the conventional call for each side, e.g. "30" and "40".
func (g *Game) Labels() [2]string {
	return [2]string{
		PointLabel(g.points[SideA], g.points[SideB]),
		PointLabel(g.points[SideB], g.points[SideA]),
	}
}

// PointLabel renders a point count as called in tennis. Counts stay
// authoritative; this is only for display. From deuce onwards the side
// ahead shows "AD".
func PointLabel(own, other int) string {
	switch {
	case own >= pointsToWinGame && own-other >= winningMargin:
		return "Game"
	case own >= 3 && other >= 3:
		if own > other {
			return "AD"
		}
		return "40"
	case own < len(pointLabels):
		return pointLabels[own]
	default:
		return "40"
	}
}
