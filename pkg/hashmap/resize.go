package hashmap

import (
	"math/bits"

	"sara/internal/debug"
	"sara/pkg/result"
	"sara/pkg/vector"
)

// nextPowerOfTwo returns the smallest power of two >= n, or 0 if n is 0.
func nextPowerOfTwo(n uint32) uint32 {
	if n <= 1 {
		return n
	}

	return 1 << bits.Len32(n-1)
}

// Resize replaces the bucket array with one of newSize buckets and
// re-inserts every live entry from the old one.
//
// newSize is clamped into [MinBucketSize, MaxBucketSize] unless it is
// exactly 0, which produces an empty, zero-capacity map (see Clear). In
// auto mode, grow/shrink thresholds are derived from LoadFactor; in manual
// mode grow_at is pinned to newSize and shrink_at disabled, matching a map
// that the caller is resizing by hand and does not want auto-shrinking
// underneath it.
func (m *TaggedHashMap) Resize(newSize uint32, auto bool) result.Result[result.Unit] {
	if newSize > 0 && newSize < MinBucketSize {
		newSize = MinBucketSize
	}

	if newSize > MaxBucketSize {
		newSize = MaxBucketSize
	}

	if newSize > 0 {
		newSize = nextPowerOfTwo(newSize)
		if newSize > MaxBucketSize {
			newSize = MaxBucketSize
		}
	}

	debug.Assert(newSize == 0 || newSize&(newSize-1) == 0, "bucket count %d is not a power of two", newSize)
	debug.Log(nil, "resize", "count=%d->%d auto=%v", m.count, newSize, auto)

	fresh := vector.New[Entry](m.alloc, m.mem)
	if fresh.IsErr() {
		return result.Err[result.Unit](result.ConstructionFailure, "bucket vector alloc failed: %v", fresh.Reason)
	}

	next := fresh.Unwrap()

	if newSize > 0 {
		if r := next.Prealloc(newSize); r.IsErr() {
			return result.Err[result.Unit](result.ConstructionFailure, "bucket prealloc failed: %v", r.Reason)
		}

		// Prealloc does not zero its newly exposed slots, but a zero Entry
		// (Hash == 0) is exactly the empty-slot sentinel every bucket needs
		// to start in.
		for i := uint32(0); i < newSize; i++ {
			next.Set(i, Entry{})
		}
	}

	old := m.entries

	m.entries = next
	m.count = newSize
	m.countUsed = 0

	if newSize > 0 {
		m.countMod = newSize - 1
	} else {
		m.countMod = 0
	}

	m.auto = auto

	if auto {
		m.growAt = uint32(float64(newSize) * LoadFactor)
		m.shrinkAt = newSize >> 2
	} else {
		m.growAt = newSize
		m.shrinkAt = 0
	}

	if old != nil {
		for i := uint32(0); i < old.Len(); i++ {
			e := old.Get(i).Unwrap()
			if e.Hash != 0 {
				m.insert(e, false, false)
			}
		}

		old.Deallocate()
	}

	debug.Assert(m.count == 0 || float64(m.countUsed) <= float64(m.count)*LoadFactor+1, "load factor exceeded after resize: %d/%d", m.countUsed, m.count)

	return result.Ok(result.Unit{})
}

// resizeNext grows the bucket array following the schedule: count² while
// the map is still small, count*2 afterward. Squaring a small count is
// cheap in absolute terms and buys a long run before the next full rehash.
func (m *TaggedHashMap) resizeNext() result.Result[result.Unit] {
	var next uint32

	switch {
	case m.count == 0:
		next = MinBucketSize
	case m.count < growScheduleCutoff:
		next = m.count * m.count
	default:
		next = m.count * 2
	}

	return m.Resize(next, m.auto)
}
