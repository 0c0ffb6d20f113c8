package random

import "math/rand"

// NewSeededRNG creates a seeded random number generator. If seed is 0 a
// cryptographic seed is drawn instead, so callers can log the returned
// effective seed and replay the run.
func NewSeededRNG(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}

	return rand.New(rand.NewSource(seed)), seed, nil
}
