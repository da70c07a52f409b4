// Package tennis implements the scoring state machine of a simulated tennis
// match: point, game, set and match, each driven by the level above it.
//
// # Basic Usage
//
// Create two players and play a complete match:
//
//	roger, _ := tennis.NewPlayer("Roger", 90, 85, 95)
//	rafa, _ := tennis.NewPlayer("Rafa", 85, 90, 98)
//	m, err := tennis.NewMatch(roger, rafa, randutil.New(42))
//	if err != nil {
//	    return err
//	}
//	winner := m.Play()
//	fmt.Println(m.Snapshot())
//
// # Stepwise Driving
//
// Presentation loops that render between points use Match.Step, which plays
// exactly one point and reports whether a game, set or the match finished:
//
//	for {
//	    step := m.Step()
//	    render(m.Snapshot())
//	    if step.MatchOver {
//	        break
//	    }
//	}
//
// Coarser granularity is available through Match.PlaySet, Set.PlayGame and
// Game.Advance. State is explicit between calls, so a caller can stop driving
// at any point without corrupting anything.
//
// # Randomness
//
// All randomness flows through the RNG interface, which *rand.Rand from
// math/rand/v2 satisfies. Two matches built from identically seeded sources
// produce identical score sequences.
//
// # Scoring Rules
//
//   - Game: first to 4 points with a 2 point margin (deuce and advantage fall
//     out of the margin rule).
//   - Set: first to 6 games with a 2 game margin. There is no 6-6 tiebreak;
//     sets run on until the margin appears.
//   - Match: first to SetsToWin sets (default 2, best of three).
//
// After every set both players recover RecoveryIncrement stamina, optionally
// after a configured fatigue drain (WithSetFatigue).
package tennis
