package tennis

import "fmt"

const (
	// MaxRallyExchanges bounds the rally loop. Every exchange ends the point
	// with probability at least unforcedErrorRate, so reaching the cap means
	// the inputs are broken and the simulation panics.
	MaxRallyExchanges = 10_000

	unforcedErrorRate = 0.1
)

// PointEnding describes how a point was decided.
type PointEnding int

const (
	// Fault: the serve missed and the receiver took the point. There is no
	// second serve.
	Fault PointEnding = iota
	// Unreturned: the receiver could not return a good serve.
	Unreturned
	// UnforcedError: a random error during the rally, attributed to either side.
	UnforcedError
	// RallyMiss: a player missed during the rally.
	RallyMiss
)

func (e PointEnding) String() string {
	switch e {
	case Fault:
		return "fault"
	case Unreturned:
		return "unreturned"
	case UnforcedError:
		return "unforced_error"
	case RallyMiss:
		return "rally_miss"
	default:
		return fmt.Sprintf("PointEnding(%d)", int(e))
	}
}

// MarshalText encodes the ending by name.
func (e PointEnding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Point is the outcome of a single resolved point.
type Point struct {
	Server    Side        `json:"server" toml:"server"`
	Winner    Side        `json:"winner" toml:"winner"`
	Ending    PointEnding `json:"ending" toml:"ending"`
	Exchanges int         `json:"exchanges" toml:"exchanges"`
}

// PointResolver plays out single points between two players.
type PointResolver struct {
	rng RNG
}

// NewPointResolver returns a resolver drawing from rng.
func NewPointResolver(rng RNG) *PointResolver {
	if rng == nil {
		panic("tennis: rng is required")
	}
	return &PointResolver{rng: rng}
}

// Resolve plays one point with players[server] serving.
//
// A missed serve hands the point to the receiver; an unreturned serve hands
// it to the server. Otherwise the rally runs until an unforced error (winner
// picked uniformly) or a missed return. On a missed return the winner is
// decided by a fresh receiver return attempt rather than by who missed:
// success gives the point to the server, failure to the receiver.
func (r *PointResolver) Resolve(players [2]*Player, server Side) Point {
	receiver := server.Opponent()
	srv, rcv := players[server], players[receiver]
	pt := Point{Server: server}

	if !srv.AttemptServe(r.rng) {
		pt.Winner, pt.Ending = receiver, Fault
		return pt
	}
	if !rcv.AttemptReturn(r.rng) {
		pt.Winner, pt.Ending = server, Unreturned
		return pt
	}

	for exchange := 1; exchange <= MaxRallyExchanges; exchange++ {
		pt.Exchanges = exchange

		if r.rng.Float64() < unforcedErrorRate {
			pt.Ending = UnforcedError
			if r.rng.Float64() < 0.5 {
				pt.Winner = receiver
			} else {
				pt.Winner = server
			}
			return pt
		}

		if !rcv.AttemptReturn(r.rng) || !srv.AttemptReturn(r.rng) {
			pt.Ending = RallyMiss
			if rcv.AttemptReturn(r.rng) {
				pt.Winner = server
			} else {
				pt.Winner = receiver
			}
			return pt
		}
	}

	panic(fmt.Sprintf("tennis: rally exceeded %d exchanges (server %s %.2f, receiver %s %.2f)",
		MaxRallyExchanges, srv.Name(), srv.ReturnProbability(), rcv.Name(), rcv.ReturnProbability()))
}

// UnmarshalText decodes an ending name produced by MarshalText.
func (e *PointEnding) UnmarshalText(text []byte) error {
	for _, candidate := range []PointEnding{Fault, Unreturned, UnforcedError, RallyMiss} {
		if candidate.String() == string(text) {
			*e = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown point ending %q", text)
}
