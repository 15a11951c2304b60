package bloom

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"

	"github.com/patrickgombert/bloom/common"
	"github.com/patrickgombert/bloom/config"
	"github.com/patrickgombert/bloom/hasher"
	"github.com/patrickgombert/bloom/registry"
)

// Handle identifies a filter created through a Boundary. It stays valid until released.
type Handle = registry.Handle

// Boundary is the typed entry point for callers that reach filters through handles
// rather than Go pointers. Arguments are validated here, once, before any filter is
// allocated. Every method is safe for concurrent use.
type Boundary struct {
	options  config.Options
	hash     hasher.Hasher
	registry *registry.Registry
}

var defaultBoundary = mustOpen(config.DefaultOptions())

// Opens a Boundary with its own registry. Invalid options are reported together, and
// errors.Is matches the sentinel of each violation.
func Open(options config.Options) (*Boundary, error) {
	if errs := options.Validate(); len(errs) > 0 {
		return nil, errors.Wrap(multierr.Combine(errs...), "invalid options")
	}

	hash, err := options.HashFunc()
	if err != nil {
		return nil, err
	}

	return &Boundary{
		options:  options,
		hash:     hash,
		registry: registry.NewRegistry(options.RegistryShards, options.MaxHandles),
	}, nil
}

func mustOpen(options config.Options) *Boundary {
	b, err := Open(options)
	if err != nil {
		panic(fmt.Sprintf("invalid default options: %v", err))
	}
	return b
}

// Creates a filter for capacity elements with rounds hash rounds, using the bit array
// sizing configured for the boundary.
func (b *Boundary) New(capacity, rounds int64) (Handle, error) {
	if capacity <= 0 || rounds <= 0 {
		log.Warn().
			Int64("capacity", capacity).
			Int64("rounds", rounds).
			Msg("rejecting bloom filter construction")
		return 0, errors.Wrapf(common.ERR_INVALID_ARGUMENT, "capacity %d, rounds %d", capacity, rounds)
	}

	var filter *common.BloomFilter
	var err error
	if b.options.Bits > 0 {
		filter, err = common.NewBloomFilterWithBits(b.options.Bits, rounds)
	} else {
		filter, err = common.NewBloomFilter(capacity, rounds)
	}
	if err != nil {
		return 0, err
	}
	return b.registry.Register(filter)
}

// Creates a filter from the boundary's own options.
func (b *Boundary) NewDefault() (Handle, error) {
	filter, err := b.options.NewFilter()
	if err != nil {
		return 0, err
	}
	return b.registry.Register(filter)
}

// Insert a hash into the filter behind h. Fails only for an unknown handle.
func (b *Boundary) Add(h Handle, hash uint64) error {
	return b.with(h, func(f *common.BloomFilter) { f.Add(hash) })
}

// Test whether a hash may have been inserted into the filter behind h.
func (b *Boundary) Present(h Handle, hash uint64) (bool, error) {
	var present bool
	err := b.with(h, func(f *common.BloomFilter) { present = f.Present(hash) })
	return present, err
}

// The number of set bits in the filter behind h.
func (b *Boundary) Count(h Handle) (uint64, error) {
	var count uint64
	err := b.with(h, func(f *common.BloomFilter) { count = f.Count() })
	return count, err
}

// Drops the filter behind h and frees its handle slot. Releasing twice fails with
// common.ERR_UNKNOWN_HANDLE.
func (b *Boundary) Release(h Handle) error {
	if err := b.registry.Release(h); err != nil {
		log.Warn().Uint64("handle", uint64(h)).Err(err).Msg("release failed")
		return err
	}
	return nil
}

// Hashes the UTF-8 bytes of text with the boundary's hasher.
func (b *Boundary) Hash(text string) uint64 {
	return b.hash.SumString(text)
}

func (b *Boundary) with(h Handle, f func(*common.BloomFilter)) error {
	if err := b.registry.With(h, f); err != nil {
		log.Warn().Uint64("handle", uint64(h)).Err(err).Msg("call on unknown handle")
		return err
	}
	return nil
}

// Creates a filter in the default boundary. Fails with common.ERR_INVALID_ARGUMENT when
// capacity or rounds is not positive.
func New(capacity, rounds int64) (Handle, error) {
	return defaultBoundary.New(capacity, rounds)
}

// Insert a hash into the filter behind h.
func Add(h Handle, hash uint64) error {
	return defaultBoundary.Add(h, hash)
}

// Test whether a hash may have been inserted into the filter behind h.
func Present(h Handle, hash uint64) (bool, error) {
	return defaultBoundary.Present(h, hash)
}

// The number of set bits in the filter behind h.
func Count(h Handle) (uint64, error) {
	return defaultBoundary.Count(h)
}

// Drops the filter behind h.
func Release(h Handle) error {
	return defaultBoundary.Release(h)
}

// FNV-1 64 bit hash of the UTF-8 bytes of text.
func Fnv1(text string) uint64 {
	return hasher.FNV1String(text)
}
