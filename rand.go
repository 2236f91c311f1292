package fray

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// CreateRandomStateSeed builds a PCG seeded from the OS entropy source.
func CreateRandomStateSeed() rand.PCG {
	var randBytes [16]byte
	_, err := cryptoRand.Read(randBytes[:])
	if err != nil {
		// no sensible recovery if the OS entropy source is broken
		panic(err)
	}

	return *rand.NewPCG(binary.LittleEndian.Uint64(randBytes[0:8]), binary.LittleEndian.Uint64(randBytes[8:]))
}

func CreateRNG(seed *rand.PCG) *rand.Rand {
	return rand.New(seed)
}
