// Package randutil centralises how seeded random sources are built so every
// shoe, bot and simulation run is reproducible from a single int64 seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed unchanged when it is set, otherwise a time-derived seed.
// The second result reports whether the seed was supplied.
func Seed(seed int64) (int64, bool) {
	if seed != 0 {
		return seed, true
	}
	return time.Now().UnixNano(), false
}

// Derive returns an independent seed for the numbered stream of a base
// seed, so parallel workers never share a sequence.
func Derive(base int64, stream int) int64 {
	return int64(mix(uint64(base) + uint64(stream+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
