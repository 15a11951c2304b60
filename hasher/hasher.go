package hasher

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

var ErrUnknownHasher = errors.New("unknown hasher")

// A Hasher maps a byte sequence to a 64 bit value. Any Hasher can produce the values fed
// into a BloomFilter, as long as the same Hasher is used for inserts and lookups.
type Hasher func(bytes []byte) uint64

const (
	FNV1Name    = "fnv1"
	Murmur3Name = "murmur3"
	XXHashName  = "xxhash"
)

// 64 bit murmur3 with the zero seed.
func Murmur3(bytes []byte) uint64 {
	return murmur3.Sum64(bytes)
}

// 64 bit xxHash.
func XXHash(bytes []byte) uint64 {
	return xxhash.Sum64(bytes)
}

// Resolves a Hasher by its configuration name.
func ByName(name string) (Hasher, error) {
	switch name {
	case FNV1Name:
		return FNV1, nil
	case Murmur3Name:
		return Murmur3, nil
	case XXHashName:
		return XXHash, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
}

// Hashes the raw byte encoding of s.
func (h Hasher) SumString(s string) uint64 {
	return h([]byte(s))
}
