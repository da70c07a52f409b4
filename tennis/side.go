package tennis

import "fmt"

// Side identifies one of the two participants. Scores are kept in [2]int
// arrays indexed by Side.
type Side int

const (
	SideA Side = iota
	SideB
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Valid reports whether s is SideA or SideB.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// MarshalText encodes the side as "A" or "B".
func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid side %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes "A" or "B".
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "A", "a":
		*s = SideA
	case "B", "b":
		*s = SideB
	default:
		return fmt.Errorf("invalid side %q", text)
	}
	return nil
}

// leads reports whether side has reached target and leads by the winning margin.
func leads(counts [2]int, side Side, target int) bool {
	own := counts[side]
	return own >= target && own-counts[side.Opponent()] >= winningMargin
}

// decided returns the side that has reached target with the winning margin.
func decided(counts [2]int, target int) (Side, bool) {
	for _, side := range [...]Side{SideA, SideB} {
		if leads(counts, side, target) {
			return side, true
		}
	}
	return SideA, false
}
