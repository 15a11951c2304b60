package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patrickgombert/bloom/common"
	"github.com/patrickgombert/bloom/hasher"
)

func TestDefaultOptionsAreValid(t *testing.T) {
	require.Empty(t, DefaultOptions().Validate())
}

func TestCapacityMustBeGreaterThan0(t *testing.T) {
	for _, capacity := range []int64{0, -1} {
		options := DefaultOptions()
		options.Capacity = capacity
		require.Len(t, options.Validate(), 1, "Expected Capacity %d to produce an error", capacity)
	}
}

func TestRoundsMustBeGreaterThan0(t *testing.T) {
	for _, rounds := range []int64{0, -3} {
		options := DefaultOptions()
		options.Rounds = rounds
		require.Len(t, options.Validate(), 1, "Expected Rounds %d to produce an error", rounds)
	}
}

func TestRoundsAreIgnoredWithFalsePositiveRate(t *testing.T) {
	options := DefaultOptions()
	options.Rounds = 0
	options.FalsePositiveRate = 0.01
	require.Empty(t, options.Validate())
}

func TestFalsePositiveRateMustBeAProbability(t *testing.T) {
	for _, rate := range []float64{-0.1, 1, 1.5} {
		options := DefaultOptions()
		options.FalsePositiveRate = rate
		require.Len(t, options.Validate(), 1, "Expected FalsePositiveRate %v to produce an error", rate)
	}
}

func TestBitsAndFalsePositiveRateAreExclusive(t *testing.T) {
	options := DefaultOptions()
	options.Bits = 1024
	options.FalsePositiveRate = 0.01
	require.Len(t, options.Validate(), 1)
}

func TestBitsMustNotBeNegative(t *testing.T) {
	options := DefaultOptions()
	options.Bits = -1
	require.Len(t, options.Validate(), 1)
}

func TestHasherMustBeKnown(t *testing.T) {
	options := DefaultOptions()
	options.Hasher = "md5"
	errs := options.Validate()
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], hasher.ErrUnknownHasher)
}

func TestRegistryLimits(t *testing.T) {
	options := DefaultOptions()
	options.MaxHandles = 0
	options.RegistryShards = 0
	require.Len(t, options.Validate(), 2)

	options = DefaultOptions()
	options.MaxHandles = 4
	options.RegistryShards = 8
	require.Len(t, options.Validate(), 1)
}

func TestValidateCollectsEveryError(t *testing.T) {
	options := Options{Capacity: 0, Rounds: 0, Hasher: "nope", MaxHandles: 1, RegistryShards: 1}
	require.Len(t, options.Validate(), 3)
}

func TestNewFilterSizingModes(t *testing.T) {
	options := DefaultOptions()
	bf, err := options.NewFilter()
	require.NoError(t, err)
	bits, err := common.OptimalBits(10000, 10)
	require.NoError(t, err)
	require.Equal(t, bits, bf.Len())

	options.Bits = 2048
	bf, err = options.NewFilter()
	require.NoError(t, err)
	require.Equal(t, uint64(2048), bf.Len())
	require.Equal(t, uint64(10), bf.Rounds())

	options.Bits = 0
	options.FalsePositiveRate = 0.001
	bf, err = options.NewFilter()
	require.NoError(t, err)
	bits, rounds := common.EstimateParameters(10000, 0.001)
	require.Equal(t, bits, bf.Len())
	require.Equal(t, rounds, bf.Rounds())
}

func TestHashFunc(t *testing.T) {
	options := DefaultOptions()
	options.Hasher = hasher.Murmur3Name
	h, err := options.HashFunc()
	require.NoError(t, err)
	require.Equal(t, hasher.Murmur3([]byte("x")), h([]byte("x")))
}

func TestBitsMustNotExceedMaximum(t *testing.T) {
	options := DefaultOptions()
	options.Bits = int64(common.MaxBits) + 1
	errs := options.Validate()
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], common.ERR_INVALID_ARGUMENT)
}

func TestValidateErrorsWrapTheirCategory(t *testing.T) {
	options := DefaultOptions()
	options.Capacity = 0
	options.FalsePositiveRate = 2
	options.Hasher = "md5"
	errs := options.Validate()
	require.Len(t, errs, 3)
	require.ErrorIs(t, errs[0], common.ERR_INVALID_ARGUMENT)
	require.ErrorIs(t, errs[1], common.ERR_INVALID_FALSE_POSITIVE_RATE)
	require.ErrorIs(t, errs[2], hasher.ErrUnknownHasher)
}
