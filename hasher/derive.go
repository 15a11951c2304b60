package hasher

import "math/bits"

// Odd 64 bit multiplier (2^64 / golden ratio) used to decorrelate h2 from h1.
const mix uint64 = 0x9e3779b97f4a7c15

// The two seeds of a double hashing scheme. Round i maps to (H1 + i*H2) mod m.
type Pair struct {
	H1 uint64
	H2 uint64
}

// Stretches a single 64 bit hash into a Pair. H1 is the hash itself, H2 is the hash with
// its halves swapped and multiplied by an odd constant. H2 is forced odd so that it is
// never zero, otherwise every round would land on the same index.
func Derive(h uint64) Pair {
	return Pair{
		H1: h,
		H2: bits.RotateLeft64(h, 32)*mix | 1,
	}
}

// Returns the index for round i in a bit array of length m. Arithmetic wraps at 64 bits
// before the reduction.
func (p Pair) Index(i, m uint64) uint64 {
	return (p.H1 + i*p.H2) % m
}

// Returns the k indices of h within a bit array of length m.
func Locations(h uint64, k, m uint64) []uint64 {
	p := Derive(h)
	locations := make([]uint64, k)
	for i := uint64(0); i < k; i++ {
		locations[i] = p.Index(i, m)
	}
	return locations
}
