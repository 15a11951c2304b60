package hasher

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/stretchr/testify/require"
)

func TestByNameResolvesKnownHashers(t *testing.T) {
	input := []byte("hello")

	h, err := ByName(FNV1Name)
	require.NoError(t, err)
	require.Equal(t, FNV1(input), h(input))

	h, err = ByName(Murmur3Name)
	require.NoError(t, err)
	require.Equal(t, murmur3.Sum64(input), h(input))

	h, err = ByName(XXHashName)
	require.NoError(t, err)
	require.Equal(t, xxhash.Sum64(input), h(input))
}

func TestByNameRejectsUnknownHasher(t *testing.T) {
	h, err := ByName("sha256")
	require.ErrorIs(t, err, ErrUnknownHasher)
	require.Nil(t, h)
}

func TestSumStringHashesRawBytes(t *testing.T) {
	require.Equal(t, FNV1String("hi"), Hasher(FNV1).SumString("hi"))
	require.Equal(t, murmur3.Sum64([]byte("hi")), Hasher(Murmur3).SumString("hi"))
}
