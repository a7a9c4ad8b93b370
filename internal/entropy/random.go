// Package entropy mints world seeds from the OS entropy pool. A seed of 0
// means "pick one for me" everywhere in the config, so minted seeds are
// always nonzero.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Seed returns a fresh nonzero world seed. Falls back to the wall clock if
// the entropy pool is unreadable, which keeps seeds distinct across runs
// even on a broken system.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	// Mask the sign bit so seeds stay positive and log-friendly.
	n := int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63))
	if n == 0 {
		n = 1
	}
	return n
}

// Derive produces a stable per-subsystem seed from a world seed, so the
// terrain, decoration, and spawn streams never share a generator.
func Derive(seed, offset int64) int64 {
	// splitmix64 finalizer.
	z := uint64(seed) + uint64(offset)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z &^ (1 << 63))
}
