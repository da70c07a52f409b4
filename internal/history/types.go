// Package history records played matches as TOML documents.
package history

import (
	"time"

	"github.com/lox/matchsim/tennis"
)

// Record is the persisted form of one match.
type Record struct {
	ID         string         `toml:"id"`
	Seed       int64          `toml:"seed"`
	PlayedAt   time.Time      `toml:"played_at"`
	SetsToWin  int            `toml:"sets_to_win"`
	SetFatigue float64        `toml:"set_fatigue"`
	Winner     string         `toml:"winner,omitempty"`
	Score      string         `toml:"score,omitempty"` // e.g. "6-4 3-6 6-2"
	Players    []PlayerRecord `toml:"players"`
	Sets       []SetRecord    `toml:"sets"`
}

// PlayerRecord captures a participant's attributes.
type PlayerRecord struct {
	Side         tennis.Side `toml:"side"`
	Name         string      `toml:"name"`
	ServeSkill   float64     `toml:"serve_skill"`
	ReturnSkill  float64     `toml:"return_skill"`
	MaxStamina   float64     `toml:"max_stamina"`
	FinalStamina float64     `toml:"final_stamina"`
}

// SetRecord is one completed set.
type SetRecord struct {
	Number int          `toml:"number"`
	Winner tennis.Side  `toml:"winner"`
	Games  [2]int       `toml:"games"`
	Log    []GameRecord `toml:"log"`
}

// GameRecord is one completed game with its points in order.
type GameRecord struct {
	Server tennis.Side `toml:"server"`
	Winner tennis.Side `toml:"winner"`
	Points []string    `toml:"points"` // See FormatPoint
}

// Complete reports whether the record holds a finished match.
func (r *Record) Complete() bool {
	return r.Winner != ""
}
