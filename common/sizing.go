package common

import (
	"math"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/pkg/errors"
)

// Largest bit array a filter may hold, 8 GiB of bits.
const MaxBits uint64 = 1 << 36

// Returns the number of bits at which rounds is the optimal number of hash rounds for
// capacity elements, ceil(capacity * rounds / ln 2). The caller must ensure both values
// are positive. Sizes above MaxBits are rejected before conversion.
func OptimalBits(capacity, rounds int64) (uint64, error) {
	bits := math.Ceil(float64(capacity) * float64(rounds) / math.Ln2)
	if bits > float64(MaxBits) {
		return 0, errors.Wrapf(ERR_INVALID_ARGUMENT, "capacity %d with %d rounds needs more than %d bits", capacity, rounds, MaxBits)
	}
	return uint64(bits), nil
}

// Returns the bit length and number of rounds needed to hold capacity elements at the
// given false positive rate.
func EstimateParameters(capacity int64, falsePositiveRate float64) (bits uint64, rounds uint64) {
	m, k := bloom.EstimateParameters(uint(capacity), falsePositiveRate)
	return uint64(m), uint64(k)
}
