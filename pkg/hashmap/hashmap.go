// Package hashmap implements TaggedHashMap, a Robin-Hood open-addressing
// hash map from 64-bit keys to 64-bit values, stored entirely in a
// [sara/pkg/vector.Vector] of entries so its backing memory is tracked by
// the same [sara/pkg/allocator.Allocator] as everything else.
package hashmap

import (
	"github.com/dolthub/maphash"

	"sara/pkg/allocator"
	"sara/pkg/memory"
	"sara/pkg/result"
	"sara/pkg/tuple"
	"sara/pkg/vector"
)

const (
	// MinBucketSize is the smallest bucket count the map ever uses.
	MinBucketSize = 64

	// MaxBucketSize caps how large the bucket array can grow.
	MaxBucketSize = 1 << 30

	// LoadFactor bounds count_used/count before a grow is triggered.
	LoadFactor = 0.8

	// SafeHash replaces a hash of exactly 0, which is reserved to mark an
	// empty slot.
	SafeHash = 0x8000_0000

	// growScheduleCutoff is where ResizeNext switches from squaring the
	// bucket count to doubling it. Below this, resizing is rare enough
	// relative to map size that the source's comment calls the squaring
	// "aggressive scaling" on purpose: it trades memory for fewer, bigger
	// rehashes while the map is still small.
	growScheduleCutoff = 8192
)

// Entry is one slot of the bucket array. Hash == 0 marks an empty slot; a
// real key's hash is never allowed to be 0 (see hash below).
type Entry struct {
	Hash  uint32
	Key   uint64
	Value uint64
}

// TaggedHashMap is a Robin-Hood hash map over uint64 keys and values.
type TaggedHashMap struct {
	mem   memory.Access
	alloc *allocator.Allocator

	entries *vector.Vector[Entry]
	hasher  maphash.Hasher[uint64]

	count     uint32 // bucket count: 0, or a power of two >= MinBucketSize
	countMod  uint32
	countUsed uint32

	growAt   uint32
	shrinkAt uint32
	auto     bool
}

// New constructs a TaggedHashMap with an initial bucket count of at least
// initialSize (rounded up to the bucket-count rules Resize enforces).
func New(alloc *allocator.Allocator, mem memory.Access, initialSize uint32) result.Result[*TaggedHashMap] {
	m := &TaggedHashMap{
		mem:    mem,
		alloc:  alloc,
		hasher: maphash.NewHasher[uint64](),
	}

	if r := m.Resize(initialSize, true); r.IsErr() {
		return result.Err[*TaggedHashMap](result.ConstructionFailure, "initial resize failed: %v", r.Reason)
	}

	return result.Ok(m)
}

// Len returns the number of live entries.
func (m *TaggedHashMap) Len() uint32 { return m.countUsed }

func (m *TaggedHashMap) hash(key uint64) uint32 {
	h := uint32(m.hasher.Hash(key))
	if h == 0 {
		return SafeHash
	}

	return h
}

// probeDistance is how many slots past its ideal bucket an occupant at
// index i currently sits, given the occupant's own ideal bucket.
func probeDistance(i, ideal, count uint32) uint32 {
	return (i + count - ideal) % count
}

// AllEntries materializes every live (key, value) pair into a fresh
// Vector, walking the bucket array in storage order (not insertion order).
func (m *TaggedHashMap) AllEntries() result.Result[*vector.Vector[tuple.Tuple2[uint64, uint64]]] {
	out := vector.New[tuple.Tuple2[uint64, uint64]](m.alloc, m.mem)
	if out.IsErr() {
		return result.Err[*vector.Vector[tuple.Tuple2[uint64, uint64]]](result.ConstructionFailure, "%v", out.Reason)
	}

	v := out.Unwrap()

	for i := uint32(0); i < m.entries.Len(); i++ {
		e := m.entries.Get(i).Unwrap()
		if e.Hash != 0 {
			v.Push(tuple.New2(e.Key, e.Value))
		}
	}

	return result.Ok(v)
}

// References returns every stored value, for callers that keep arena
// pointers as hash-map values and want to feed them straight into
// [sara/pkg/allocator.Allocator.ScanAndSweep] as the live set.
func (m *TaggedHashMap) References() result.Result[[]int64] {
	all := m.AllEntries()
	if all.IsErr() {
		return result.Err[[]int64](result.ConstructionFailure, "%v", all.Reason)
	}

	ev := all.Unwrap()
	defer ev.Deallocate()

	refs := make([]int64, 0, ev.Len())
	for i := uint32(0); i < ev.Len(); i++ {
		pair := ev.Get(i).Unwrap()
		refs = append(refs, int64(pair.V1))
	}

	return result.Ok(refs)
}

// Clear empties the map down to a freshly usable, zero-capacity state:
// subsequent Put calls grow it again from scratch.
func (m *TaggedHashMap) Clear() result.Result[result.Unit] {
	return m.Resize(0, false)
}
