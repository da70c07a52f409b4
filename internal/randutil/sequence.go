package randutil

// Sequence is a scripted Float64 source. It replays the given values in
// order and wraps around when exhausted, which lets tests force specific
// serve, return and rally outcomes.
type Sequence struct {
	values []float64
	next   int
	draws  int
}

// NewSequence returns a Sequence over values. At least one value is required.
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		panic("randutil: sequence needs at least one value")
	}
	return &Sequence{values: values}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	s.draws++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.draws
}
