package registry

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/patrickgombert/bloom/common"
)

// An opaque reference to a bloom filter owned by a Registry. The zero Handle is never
// issued.
type Handle uint64

func (h Handle) shard(numShards int) int {
	return int(uint64(h) % uint64(numShards))
}

// A single registered filter. The mutex serializes every operation on the filter since
// BloomFilter itself is not safe for concurrent use.
type entry struct {
	lock   sync.Mutex
	filter *common.BloomFilter
}

// A shard contained within the larger Registry. Each shard contains its own read-write
// lock guarding the handle table, independent of the per filter locks.
type shard struct {
	lock    sync.RWMutex
	entries map[Handle]*entry
}

// Registry maps handles to bloom filters for callers on the far side of a call boundary
// which cannot hold Go pointers. The handle table is split into shards in order to
// minimize lock contention, and the number of live filters is capped by a semaphore.
type Registry struct {
	next   uint64
	slots  common.Semaphore
	shards []*shard
}

// Generates a new Registry with numShards shards holding at most maxHandles filters.
// numShards below 1 is raised to 1 and maxHandles below 0 is treated as 0.
func NewRegistry(numShards, maxHandles int) *Registry {
	if numShards < 1 {
		numShards = 1
	}
	shards := make([]*shard, numShards)
	for i := range shards {
		shards[i] = &shard{entries: make(map[Handle]*entry)}
	}

	return &Registry{slots: common.NewSemaphore(maxHandles), shards: shards}
}

// Register takes ownership of filter and returns the handle it can be reached by.
func (r *Registry) Register(filter *common.BloomFilter) (Handle, error) {
	if !r.slots.TryAcquire() {
		log.Error().
			Int("max_handles", r.slots.Size()).
			Msg("refusing to register bloom filter")
		return 0, common.ERR_TOO_MANY_HANDLES
	}

	handle := Handle(atomic.AddUint64(&r.next, 1))
	s := r.getShard(handle)
	s.lock.Lock()
	s.entries[handle] = &entry{filter: filter}
	s.lock.Unlock()

	return handle, nil
}

// Run f against the filter for handle while holding that filter's lock.
func (r *Registry) With(handle Handle, f func(*common.BloomFilter)) error {
	e, err := r.lookup(handle)
	if err != nil {
		return err
	}

	e.lock.Lock()
	defer e.lock.Unlock()
	f(e.filter)
	return nil
}

// Release drops the filter for handle and frees its slot. Releasing an unknown handle
// returns an error.
func (r *Registry) Release(handle Handle) error {
	s := r.getShard(handle)
	s.lock.Lock()
	_, found := s.entries[handle]
	delete(s.entries, handle)
	s.lock.Unlock()

	if !found {
		return errors.Wrapf(common.ERR_UNKNOWN_HANDLE, "handle %d", handle)
	}
	r.slots.Release()
	return nil
}

// The number of live filters.
func (r *Registry) Len() int {
	return r.slots.InUse()
}

func (r *Registry) lookup(handle Handle) (*entry, error) {
	s := r.getShard(handle)
	s.lock.RLock()
	e, found := s.entries[handle]
	s.lock.RUnlock()

	if !found {
		return nil, errors.Wrapf(common.ERR_UNKNOWN_HANDLE, "handle %d", handle)
	}
	return e, nil
}

func (r *Registry) getShard(handle Handle) *shard {
	return r.shards[handle.shard(len(r.shards))]
}
