package hasher

import "hash/fnv"

const (
	// Offset basis and prime of the 64 bit FNV family.
	OffsetBasis uint64 = 14695981039346656037
	Prime       uint64 = 1099511628211
)

// Computes the classic FNV-1 (not FNV-1a) 64 bit hash of bytes. Each byte is mixed in by
// first multiplying the accumulator by the FNV prime and then xor-ing the byte. The empty
// input hashes to OffsetBasis.
func FNV1(bytes []byte) uint64 {
	h := fnv.New64()
	h.Write(bytes)
	return h.Sum64()
}

// Hashes the raw byte encoding of s with FNV-1.
func FNV1String(s string) uint64 {
	return FNV1([]byte(s))
}
