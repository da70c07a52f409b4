package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lox/matchsim/internal/history"
	"github.com/lox/matchsim/internal/matchid"
	"github.com/lox/matchsim/tennis"
)

// HistoryCmd is the root command for match records.
type HistoryCmd struct {
	Render HistoryRenderCmd `cmd:"" help:"Replay a recorded match point by point"`
}

// HistoryRenderCmd prints a saved record as a scoring log.
type HistoryRenderCmd struct {
	File   string `arg:"" name:"file" type:"existingfile" help:"Path to a match .toml file"`
	Points bool   `help:"Show the running score of every point"`
}

func (cmd *HistoryRenderCmd) Run(g *Globals) error {
	if cmd.File == "" {
		return errors.New("history render requires a file path")
	}

	rec, err := history.Load(filepath.Clean(cmd.File))
	if err != nil {
		return err
	}
	if err := matchid.Validate(rec.ID); err != nil {
		g.logger().Warn("Record has an unexpected id", "id", rec.ID, "error", err)
	}
	return renderRecord(g.stdout, rec, cmd.Points)
}

// renderRecord rebuilds the scoring of a record from its point log and
// rejects logs that disagree with the recorded game and set winners.
func renderRecord(w io.Writer, rec *history.Record, points bool) error {
	if len(rec.Players) != 2 {
		return fmt.Errorf("record %s: expected 2 players, got %d", rec.ID, len(rec.Players))
	}
	names := [2]string{rec.Players[0].Name, rec.Players[1].Name}

	fmt.Fprintf(w, "Match %s (seed %d) played %s\n", rec.ID, rec.Seed, rec.PlayedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "%s vs %s, first to %d sets\n", names[0], names[1], rec.SetsToWin)

	var sets [2]int
	for _, set := range rec.Sets {
		fmt.Fprintf(w, "\nSet %d\n", set.Number)

		var games [2]int
		setDone := false
		var setWinner tennis.Side
		for i, game := range set.Log {
			if setDone {
				return fmt.Errorf("set %d game %d: played after the set was decided", set.Number, i+1)
			}

			var score [2]int
			var labels []string
			gameDone := false
			var gameWinner tennis.Side
			for j, raw := range game.Points {
				if gameDone {
					return fmt.Errorf("set %d game %d: point %d played after the game was decided", set.Number, i+1, j+1)
				}
				p, err := history.ParsePoint(raw, game.Server)
				if err != nil {
					return fmt.Errorf("set %d game %d: %w", set.Number, i+1, err)
				}
				score[p.Winner]++
				labels = append(labels, tennis.PointLabel(score[tennis.SideA], score[tennis.SideB])+"-"+
					tennis.PointLabel(score[tennis.SideB], score[tennis.SideA]))
				gameWinner, gameDone = tennis.GameWinner(score)
			}
			if !gameDone {
				return fmt.Errorf("set %d game %d: point log ends unfinished at %d-%d",
					set.Number, i+1, score[tennis.SideA], score[tennis.SideB])
			}
			if gameWinner != game.Winner {
				return fmt.Errorf("set %d game %d: point log is won by %s but recorded for %s",
					set.Number, i+1, names[gameWinner], names[game.Winner])
			}

			games[gameWinner]++
			setWinner, setDone = tennis.SetWinner(games)

			fmt.Fprintf(w, "  Game %d: %s serving, won by %s (%d-%d)\n",
				i+1, names[game.Server], names[gameWinner], games[tennis.SideA], games[tennis.SideB])
			if points {
				fmt.Fprintf(w, "    %s\n", strings.Join(labels, " "))
			}
		}
		if games != set.Games {
			return fmt.Errorf("set %d: game log %v does not match recorded score %v", set.Number, games, set.Games)
		}
		if !setDone {
			return fmt.Errorf("set %d: game log ends unfinished at %d-%d", set.Number, games[tennis.SideA], games[tennis.SideB])
		}
		if setWinner != set.Winner {
			return fmt.Errorf("set %d: game log is won by %s but recorded for %s",
				set.Number, names[setWinner], names[set.Winner])
		}

		sets[setWinner]++
		fmt.Fprintf(w, "Set won by %s. Current score: %s %d - %d %s\n",
			names[setWinner], names[0], sets[tennis.SideA], sets[tennis.SideB], names[1])
	}

	if rec.Complete() {
		winner, ok := matchWinner(sets, rec.SetsToWin)
		if !ok || names[winner] != rec.Winner {
			return fmt.Errorf("record %s: sets %d-%d do not give %s the match at first to %d",
				rec.ID, sets[tennis.SideA], sets[tennis.SideB], rec.Winner, rec.SetsToWin)
		}
		fmt.Fprintf(w, "\nMatch winner: %s (%s)\n", rec.Winner, rec.Score)
	}
	return nil
}

func matchWinner(sets [2]int, setsToWin int) (tennis.Side, bool) {
	for _, side := range []tennis.Side{tennis.SideA, tennis.SideB} {
		if sets[side] == setsToWin {
			return side, true
		}
	}
	return tennis.SideA, false
}
