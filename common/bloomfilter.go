package common

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/patrickgombert/bloom/hasher"
)

// A fixed size bloom filter over pre-hashed 64 bit values. Each value is expanded into
// rounds bit positions by double hashing. Bits are only ever set, never cleared, and the
// bit array never changes length.
//
// A BloomFilter is not safe for concurrent use. Callers sharing one across goroutines must
// serialize access themselves.
type BloomFilter struct {
	capacity int64
	rounds   uint64
	length   uint64
	bits     *bitset.BitSet
}

// Creates a new BloomFilter sized for capacity elements with rounds hash rounds per
// element. The bit array holds OptimalBits(capacity, rounds) bits, for example 144270
// bits for 10000 elements and 10 rounds. Sizes above MaxBits are rejected.
func NewBloomFilter(capacity, rounds int64) (*BloomFilter, error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ERR_INVALID_ARGUMENT, "capacity must be positive, got %d", capacity)
	}
	if rounds <= 0 {
		return nil, errors.Wrapf(ERR_INVALID_ARGUMENT, "rounds must be positive, got %d", rounds)
	}
	bits, err := OptimalBits(capacity, rounds)
	if err != nil {
		return nil, err
	}
	return newBloomFilter(capacity, uint64(rounds), bits)
}

// Creates a new BloomFilter with a bit array of exactly bits bits. The capacity reported
// by the filter is the number of elements for which rounds is optimal at that size.
func NewBloomFilterWithBits(bits, rounds int64) (*BloomFilter, error) {
	if bits <= 0 {
		return nil, errors.Wrapf(ERR_INVALID_ARGUMENT, "bits must be positive, got %d", bits)
	}
	if rounds <= 0 {
		return nil, errors.Wrapf(ERR_INVALID_ARGUMENT, "rounds must be positive, got %d", rounds)
	}
	capacity := int64(math.Max(1, math.Floor(float64(bits)*math.Ln2/float64(rounds))))
	return newBloomFilter(capacity, uint64(rounds), uint64(bits))
}

// Creates a new BloomFilter holding capacity elements at the requested false positive
// rate, which must lie strictly between 0 and 1.
func NewBloomFilterForRate(capacity int64, falsePositiveRate float64) (*BloomFilter, error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ERR_INVALID_ARGUMENT, "capacity must be positive, got %d", capacity)
	}
	if !(falsePositiveRate > 0 && falsePositiveRate < 1) {
		return nil, errors.Wrapf(ERR_INVALID_FALSE_POSITIVE_RATE, "got %v", falsePositiveRate)
	}
	if -float64(capacity)*math.Log(falsePositiveRate)/(math.Ln2*math.Ln2) > float64(MaxBits) {
		return nil, errors.Wrapf(ERR_INVALID_ARGUMENT, "capacity %d at rate %v needs more than %d bits", capacity, falsePositiveRate, MaxBits)
	}
	bits, rounds := EstimateParameters(capacity, falsePositiveRate)
	return newBloomFilter(capacity, rounds, bits)
}

// Allocates the bit array. Lengths above MaxBits are refused, and so is any length the
// bitset could not allocate, since bitset.New returns an empty set rather than failing.
func newBloomFilter(capacity int64, rounds, length uint64) (*BloomFilter, error) {
	if length > MaxBits {
		return nil, errors.Wrapf(ERR_INVALID_ARGUMENT, "bit array of %d bits is larger than %d", length, MaxBits)
	}

	log.Debug().
		Int64("capacity", capacity).
		Uint64("rounds", rounds).
		Uint64("bits", length).
		Msg("allocating bloom filter")

	bits := bitset.New(uint(length))
	if uint64(bits.Len()) != length {
		log.Error().
			Uint64("bits", length).
			Uint64("allocated", uint64(bits.Len())).
			Msg("failed to allocate bloom filter")
		return nil, errors.Wrapf(ERR_INVALID_ARGUMENT, "bit array of %d bits could not be allocated", length)
	}

	return &BloomFilter{
		capacity: capacity,
		rounds:   rounds,
		length:   length,
		bits:     bits,
	}, nil
}

// Insert the hash h into the filter by setting each of its derived bits. Setting a bit
// which is already set is a no-op.
func (bf *BloomFilter) Add(h uint64) {
	p := hasher.Derive(h)
	for i := uint64(0); i < bf.rounds; i++ {
		bf.bits.Set(uint(p.Index(i, bf.length)))
	}
}

// Test whether the hash h may have been added. A false return value means h was
// definitely never added, true means it may have been.
func (bf *BloomFilter) Present(h uint64) bool {
	p := hasher.Derive(h)
	for i := uint64(0); i < bf.rounds; i++ {
		if !bf.bits.Test(uint(p.Index(i, bf.length))) {
			return false
		}
	}
	return true
}

// The number of bits currently set.
func (bf *BloomFilter) Count() uint64 {
	return uint64(bf.bits.Count())
}

func (bf *BloomFilter) Capacity() int64 {
	return bf.capacity
}

func (bf *BloomFilter) Rounds() uint64 {
	return bf.rounds
}

// The length of the bit array.
func (bf *BloomFilter) Len() uint64 {
	return bf.length
}

// Estimates the current false positive rate from the fill ratio, (set bits / bits)^rounds.
func (bf *BloomFilter) EstimatedFalsePositiveRate() float64 {
	fill := float64(bf.Count()) / float64(bf.length)
	return math.Pow(fill, float64(bf.rounds))
}
