package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lox/matchsim/internal/randutil"
	"github.com/lox/matchsim/tennis"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playDominant(t *testing.T, opts ...Option) []string {
	t.Helper()

	ace, err := tennis.NewPlayer("Ace", 100, 100, 100)
	require.NoError(t, err)
	rookie, err := tennis.NewPlayer("Rookie", 0, 0, 100)
	require.NoError(t, err)

	var buf bytes.Buffer
	reporter := NewReporter(&buf, append([]Option{WithProfile(termenv.Ascii)}, opts...)...)
	m, err := tennis.NewMatch(ace, rookie, randutil.New(3), tennis.WithObserver(reporter))
	require.NoError(t, err)
	m.Play()

	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestReporterDefault(t *testing.T) {
	t.Parallel()

	lines := playDominant(t)
	assert.Equal(t, []string{
		"Set won by Ace. Current score: Ace 1 - 0 Rookie",
		"Set won by Ace. Current score: Ace 2 - 0 Rookie",
		"Match winner: Ace (2-0) 6-0 6-0",
	}, lines)
}

func TestReporterGamesAndPoints(t *testing.T) {
	t.Parallel()

	lines := playDominant(t, WithGames(true), WithPoints(true))

	// 2 sets * 6 games * (4 points + 1 game line) + 2 set lines + 1 match line
	require.Len(t, lines, 63)
	// Rookie's serves are faults and Ace's are unreturned; neither reaches a rally
	assert.True(t, strings.HasPrefix(lines[0], "  [Set 1 Game 1] Ace wins ("), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], ", 0 exchanges) 15-0"), lines[0])
	assert.True(t, strings.HasSuffix(lines[3], ", 0 exchanges) game"), lines[3])
	assert.Contains(t, lines[4], "Game Ace (served by ")
	assert.True(t, strings.HasSuffix(lines[4], "games 1-0"), lines[4])
	assert.Equal(t, "Set won by Ace. Current score: Ace 1 - 0 Rookie", lines[30])
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	snap := tennis.Snapshot{
		Players: [2]tennis.PlayerSnapshot{{Name: "Roger"}, {Name: "Rafa"}},
		Sets:    [2]int{2, 1},
		Games:   [2]int{3, 1},
		CompletedSets: []tennis.SetScore{
			{Games: [2]int{6, 4}, Winner: tennis.SideA},
			{Games: [2]int{3, 6}, Winner: tennis.SideB},
			{Games: [2]int{6, 2}, Winner: tennis.SideA},
		},
	}

	assert.Equal(t, "Match winner: Roger (2-1) 6-4 3-6 6-2",
		FormatMatch(tennis.MatchEvent{Winner: tennis.SideA, Snapshot: snap}))
	assert.Equal(t, "Set won by Roger. Current score: Roger 2 - 1 Rafa",
		FormatSet(tennis.SetEvent{Set: 3, Score: snap.CompletedSets[2], Snapshot: snap}))
	assert.Equal(t, "Game Rafa (served by Roger), games 3-1",
		FormatGame(tennis.GameEvent{Record: tennis.GameRecord{Server: tennis.SideA, Winner: tennis.SideB}, Snapshot: snap}))
}
