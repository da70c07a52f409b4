package history

import (
	"slices"

	"github.com/lox/matchsim/internal/matchid"
	"github.com/lox/matchsim/tennis"
)

// Recorder is a tennis.Observer that accumulates a Record while the match
// is played. It is not safe for concurrent use.
type Recorder struct {
	record  Record
	points  []string
	games   []GameRecord
	players [2]*tennis.Player
}

// NewRecorder starts a record for a match between players. id must be a
// match ID; its timestamp becomes the record's PlayedAt.
func NewRecorder(id string, seed int64, players [2]*tennis.Player, setFatigue float64) *Recorder {
	r := &Recorder{
		record: Record{
			ID:         id,
			Seed:       seed,
			SetFatigue: setFatigue,
		},
		players: players,
	}
	if at, err := matchid.Time(id); err == nil {
		r.record.PlayedAt = at.UTC()
	}
	for side, p := range players {
		r.record.Players = append(r.record.Players, PlayerRecord{
			Side:         tennis.Side(side),
			Name:         p.Name(),
			ServeSkill:   p.ServeSkill(),
			ReturnSkill:  p.ReturnSkill(),
			MaxStamina:   p.MaxStamina(),
			FinalStamina: p.Stamina(),
		})
	}
	return r
}

// OnEvent implements tennis.Observer.
func (r *Recorder) OnEvent(e tennis.Event) {
	switch ev := e.(type) {
	case tennis.PointEvent:
		r.points = append(r.points, FormatPoint(ev.Point))
	case tennis.GameEvent:
		r.games = append(r.games, GameRecord{
			Server: ev.Record.Server,
			Winner: ev.Record.Winner,
			Points: r.points,
		})
		r.points = nil
	case tennis.SetEvent:
		r.record.Sets = append(r.record.Sets, SetRecord{
			Number: ev.Set,
			Winner: ev.Score.Winner,
			Games:  ev.Score.Games,
			Log:    r.games,
		})
		r.games = nil
		r.syncStamina(ev.Snapshot)
	case tennis.MatchEvent:
		r.record.SetsToWin = ev.Snapshot.SetsToWin
		r.record.Winner = ev.Snapshot.Players[ev.Winner].Name
		r.record.Score = ev.Snapshot.SetLine()
		r.syncStamina(ev.Snapshot)
	}
}

func (r *Recorder) syncStamina(s tennis.Snapshot) {
	for side := range r.record.Players {
		r.record.Players[side].FinalStamina = s.Players[side].Stamina
	}
}

// Record returns a copy of the record collected so far. Later events do not
// change it.
func (r *Recorder) Record() *Record {
	rec := r.record
	rec.Players = slices.Clone(r.record.Players)
	rec.Sets = make([]SetRecord, len(r.record.Sets))
	for i, set := range r.record.Sets {
		set.Log = make([]GameRecord, len(set.Log))
		for j, game := range r.record.Sets[i].Log {
			game.Points = slices.Clone(game.Points)
			set.Log[j] = game
		}
		rec.Sets[i] = set
	}
	return &rec
}
