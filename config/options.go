package config

import (
	"github.com/pkg/errors"

	"github.com/patrickgombert/bloom/common"
	"github.com/patrickgombert/bloom/hasher"
)

type Options struct {
	// Expected number of elements.
	Capacity int64
	// Hash rounds per element. Ignored when FalsePositiveRate is set.
	Rounds int64
	// Exact bit array length. When zero the length is derived from Capacity and Rounds.
	Bits int64
	// Target false positive rate. When set, Bits and Rounds are derived from Capacity.
	FalsePositiveRate float64
	// Name of the hasher used to turn values into 64 bit hashes.
	Hasher string
	// Maximum number of live filters handed out by a registry.
	MaxHandles int
	// Number of lock shards in a registry.
	RegistryShards int
}

func DefaultOptions() Options {
	return Options{
		Capacity:       10000,
		Rounds:         10,
		Hasher:         hasher.FNV1Name,
		MaxHandles:     1024,
		RegistryShards: 16,
	}
}

// Validates that all of the fields contained with the Options are valid. Returns a list
// of errors. If there are no errors then the list will be empty. Each error wraps the
// sentinel of its category, common.ERR_INVALID_ARGUMENT,
// common.ERR_INVALID_FALSE_POSITIVE_RATE or hasher.ErrUnknownHasher.
func (options Options) Validate() []error {
	errs := []error{}
	if options.Capacity <= 0 {
		errs = append(errs, errors.Wrapf(common.ERR_INVALID_ARGUMENT, "Capacity %d must be greater than 0", options.Capacity))
	}

	if options.FalsePositiveRate != 0 {
		if !(options.FalsePositiveRate > 0 && options.FalsePositiveRate < 1) {
			errs = append(errs, errors.Wrapf(common.ERR_INVALID_FALSE_POSITIVE_RATE, "FalsePositiveRate %v", options.FalsePositiveRate))
		}
		if options.Bits != 0 {
			errs = append(errs, errors.Wrap(common.ERR_INVALID_ARGUMENT, "Bits and FalsePositiveRate are mutually exclusive"))
		}
	} else if options.Rounds <= 0 {
		errs = append(errs, errors.Wrapf(common.ERR_INVALID_ARGUMENT, "Rounds %d must be greater than 0", options.Rounds))
	}

	if options.Bits < 0 {
		errs = append(errs, errors.Wrapf(common.ERR_INVALID_ARGUMENT, "Bits %d must not be negative", options.Bits))
	} else if uint64(options.Bits) > common.MaxBits {
		errs = append(errs, errors.Wrapf(common.ERR_INVALID_ARGUMENT, "Bits %d is larger than %d", options.Bits, common.MaxBits))
	}

	if _, err := hasher.ByName(options.Hasher); err != nil {
		errs = append(errs, err)
	}

	if options.MaxHandles <= 0 {
		errs = append(errs, errors.Wrapf(common.ERR_INVALID_ARGUMENT, "MaxHandles %d must be greater than 0", options.MaxHandles))
	}
	if options.RegistryShards <= 0 {
		errs = append(errs, errors.Wrapf(common.ERR_INVALID_ARGUMENT, "RegistryShards %d must be greater than 0", options.RegistryShards))
	} else if options.MaxHandles > 0 && options.RegistryShards > options.MaxHandles {
		errs = append(errs, errors.Wrapf(common.ERR_INVALID_ARGUMENT, "RegistryShards %d is larger than MaxHandles %d", options.RegistryShards, options.MaxHandles))
	}

	return errs
}

// Creates a bloom filter using the sizing mode selected by the options. The options are
// expected to have been validated.
func (options Options) NewFilter() (*common.BloomFilter, error) {
	switch {
	case options.FalsePositiveRate != 0:
		return common.NewBloomFilterForRate(options.Capacity, options.FalsePositiveRate)
	case options.Bits != 0:
		return common.NewBloomFilterWithBits(options.Bits, options.Rounds)
	default:
		return common.NewBloomFilter(options.Capacity, options.Rounds)
	}
}

// Resolves the configured hasher.
func (options Options) HashFunc() (hasher.Hasher, error) {
	return hasher.ByName(options.Hasher)
}
