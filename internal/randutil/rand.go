// Package randutil centralises how the simulator builds random sources so
// every match can be replayed from a single int64 seed.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	rand "math/rand/v2"
)

// splitmixIncrement is the splitmix64 stream increment. The second PCG word
// is taken one step further along the same stream.
const splitmixIncrement = 0x9e3779b97f4a7c15

// New builds the random source for one match. Batch matches use adjacent
// seeds, so both PCG words go through splitmix64 first.
func New(seed int64) *rand.Rand {
	state := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(state), splitmix(state+splitmixIncrement)))
}

// NewSeed draws a fresh seed from crypto/rand. Used when the caller asks for
// a random match but still wants the seed printed for replay.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	// Keep it positive so it round-trips through flags cleanly.
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1), nil
}

// Derive returns the seed for the i-th match of a batch rooted at seed.
func Derive(seed int64, i int) int64 {
	return seed + int64(i)
}

// splitmix is the splitmix64 finaliser.
func splitmix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
