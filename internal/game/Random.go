package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// NewRand returns a PRNG seeded from crypto/rand. Tests build their own with a fixed seed.
func NewRand() *rand.Rand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}

// RandomRole picks killer or victim with equal odds.
func RandomRole(rng *rand.Rand) Role {
	if rng.Intn(2) == 0 {
		return Killer
	}
	return Victim
}
