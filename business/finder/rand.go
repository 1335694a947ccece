package finder

import "math/rand"

// Rand is the randomness the selector and ranker draw from.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

const rankingStream = -1

// streamRand derives an independent generator per round so a session only
// needs to persist its seed.
func streamRand(seed int64, stream int) *rand.Rand {
	return rand.New(rand.NewSource(seed*1_000_003 + int64(stream))) //nolint:gosec // not security sensitive
}
