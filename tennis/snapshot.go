package tennis

import (
	"fmt"
	"strings"
)

// PlayerSnapshot is the read-only view of a player.
type PlayerSnapshot struct {
	Name       string  `json:"name"`
	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"max_stamina"`
}

// SetScore is the final game count of a completed set.
type SetScore struct {
	Games  [2]int `json:"games" toml:"games"`
	Winner Side   `json:"winner" toml:"winner"`
}

// Snapshot is plain data describing the match at a moment in time. It is
// what presentation code renders; nothing in it is recomputed on read.
type Snapshot struct {
	Players       [2]PlayerSnapshot `json:"players"`
	SetsToWin     int               `json:"sets_to_win"`
	Sets          [2]int            `json:"sets"`
	Games         [2]int            `json:"games"`
	Points        [2]int            `json:"points"`
	PointLabels   [2]string         `json:"point_labels"`
	SetNumber     int               `json:"set_number"`
	InSet         bool              `json:"in_set"`
	Server        Side              `json:"server"`
	CompletedSets []SetScore        `json:"completed_sets"`
	PointsPlayed  int               `json:"points_played"`
	Complete      bool              `json:"complete"`
	Winner        Side              `json:"winner"`
}

// String renders a one line scoreboard such as
// "Roger 1-0 Rafa | games 3-1 | 30-15".
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d-%d %s", s.Players[SideA].Name, s.Sets[SideA], s.Sets[SideB], s.Players[SideB].Name)
	if s.Complete {
		fmt.Fprintf(&b, " | winner %s", s.Players[s.Winner].Name)
		return b.String()
	}
	fmt.Fprintf(&b, " | games %d-%d | %s-%s", s.Games[SideA], s.Games[SideB], s.PointLabels[SideA], s.PointLabels[SideB])
	return b.String()
}

// SetLine renders the completed sets as "6-4 3-6 7-5".
func (s Snapshot) SetLine() string {
	parts := make([]string, 0, len(s.CompletedSets))
	for _, set := range s.CompletedSets {
		parts = append(parts, fmt.Sprintf("%d-%d", set.Games[SideA], set.Games[SideB]))
	}
	return strings.Join(parts, " ")
}
