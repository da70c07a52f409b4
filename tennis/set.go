package tennis

const gamesToWinSet = 6

// GameRecord is the final score of a completed game.
type GameRecord struct {
	Server Side   `json:"server" toml:"server"`
	Winner Side   `json:"winner" toml:"winner"`
	Points [2]int `json:"points" toml:"points"`
}

// SetStep reports what a single Set.AdvancePoint call did.
type SetStep struct {
	Point    Point
	GameOver bool
	Game     GameRecord
	SetOver  bool
	Winner   Side
}

// Set runs successive games with strictly alternating server until one side
// has six games and a two game lead. No tiebreak is played at 6-6.
type Set struct {
	players  [2]*Player
	rng      RNG
	server   Side
	games    [2]int
	current  *Game
	history  []GameRecord
	complete bool
	winner   Side
}

// NewSet starts a set with players[firstServer] serving the first game.
func NewSet(players [2]*Player, firstServer Side, rng RNG) *Set {
	return &Set{
		players: players,
		rng:     rng,
		server:  firstServer,
	}
}

// Server is the side serving the current game, or the next one between games.
func (s *Set) Server() Side { return s.server }

func (s *Set) Games() [2]int  { return s.games }
func (s *Set) Complete() bool { return s.complete }

// GamesPlayed is the number of completed games.
func (s *Set) GamesPlayed() int {
	return len(s.history)
}

// CurrentGame returns the game in progress, or nil between games.
func (s *Set) CurrentGame() *Game { return s.current }

// History returns the completed games in order.
func (s *Set) History() []GameRecord {
	out := make([]GameRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Winner returns the winning side once the set is complete.
func (s *Set) Winner() (Side, bool) {
	return s.winner, s.complete
}

// AdvancePoint plays one point of the current game, starting a game if none
// is in progress. When the point ends the game the server rotates and the
// set completion rule is checked.
func (s *Set) AdvancePoint() SetStep {
	if s.complete {
		return SetStep{SetOver: true, Winner: s.winner}
	}
	if s.current == nil {
		s.current = NewGame(s.players, s.server, s.rng)
	}

	pt, winner, done := s.current.Advance()
	step := SetStep{Point: pt}
	if !done {
		return step
	}

	step.GameOver = true
	step.Game = s.finishGame(winner)
	step.SetOver, step.Winner = s.complete, s.winner
	return step
}

func (s *Set) finishGame(winner Side) GameRecord {
	rec := GameRecord{
		Server: s.current.Server(),
		Winner: winner,
		Points: s.current.Points(),
	}
	s.games[winner]++
	s.history = append(s.history, rec)
	s.server = s.server.Opponent()
	s.current = nil

	if leads(s.games, winner, gamesToWinSet) {
		s.complete = true
		s.winner = winner
	}
	return rec
}

// SetWinner applies the set completion rule to a game count.
func SetWinner(games [2]int) (Side, bool) {
	return decided(games, gamesToWinSet)
}

// PlayGame plays the current game to completion and reports the set winner
// if that game decided the set.
func (s *Set) PlayGame() (Side, bool) {
	for {
		step := s.AdvancePoint()
		if step.GameOver || step.SetOver {
			return step.Winner, step.SetOver
		}
	}
}

// Play runs the set to completion.
func (s *Set) Play() Side {
	for {
		if winner, done := s.PlayGame(); done {
			return winner
		}
	}
}
