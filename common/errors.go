package common

import "errors"

var (
	ERR_INVALID_ARGUMENT            = errors.New("capacity, rounds and bits must be positive and within bounds")
	ERR_INVALID_FALSE_POSITIVE_RATE = errors.New("false positive rate must be greater than 0 and less than 1")
	ERR_UNKNOWN_HANDLE              = errors.New("handle does not refer to a live bloom filter")
	ERR_TOO_MANY_HANDLES            = errors.New("maximum number of live bloom filters reached")
)
