package common

type handleSlot struct{}

// Semaphore counts the handle slots left for live bloom filters. A registry takes one
// slot per registered filter and gives it back when the filter is released, so the
// number of filters reachable through handles never exceeds the slot count.
type Semaphore chan handleSlot

// Creates a semaphore with size free handle slots. A negative size is treated as zero,
// which refuses every filter.
func NewSemaphore(size int) Semaphore {
	if size < 0 {
		size = 0
	}
	s := make(Semaphore, size)
	for i := 0; i < size; i++ {
		s <- handleSlot{}
	}
	return s
}

// Claim a handle slot for a new filter without blocking. Returns false when every slot
// belongs to a live filter.
func (s Semaphore) TryAcquire() bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}

// Give back the slot of a released filter. Must follow exactly one successful
// TryAcquire.
func (s Semaphore) Release() {
	s <- handleSlot{}
}

// Free handle slots.
func (s Semaphore) Available() int {
	return len(s)
}

// Slots held by live filters.
func (s Semaphore) InUse() int {
	return cap(s) - len(s)
}

// Total handle slots.
func (s Semaphore) Size() int {
	return cap(s)
}
