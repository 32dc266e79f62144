// Package allocator implements SArA's arena-based region allocator: the
// single source of all memory handed out to the containers built on top of
// it (vector, hash map, tree).
//
// There is no host heap here. A caller supplies a contiguous byte-addressable
// region through [sara/pkg/memory.Access] and a half-open range [start,
// limit) within it; the allocator partitions that range into fixed-size
// arenas and tracks, per arena, a bump head and a reference count. An
// allocation is a bump inside one arena; a free is a reference-count
// decrement; reclamation happens for an entire arena at once, the moment its
// reference count returns to zero. There is no partial reclamation, no
// compaction, and no cross-arena allocation — an allocation larger than one
// arena always fails.
package allocator

import (
	"sara/internal/debug"
	"sara/pkg/memory"
	"sara/pkg/result"
	"sara/pkg/zc"
)

// ArenaSize is the fixed size, in bytes, of every arena: the largest value
// representable in the 16-bit head/ref-count fields the allocator tracks.
const ArenaSize = 65535

// MaxRefCount is the saturation point of an arena's reference count.
// Reference at this count fails rather than wrapping.
const MaxRefCount = 0xFFFF

// Allocator partitions memory into fixed-size arenas and hands out
// bump-allocated pointers into them.
//
// The allocator keeps no state outside the byte range it was given: its two
// side tables (heads and reference counts, one u16 per arena) are carved out
// of the front of that range itself, so the whole structure is as
// relocatable as the backing store is.
type Allocator struct {
	mem memory.Access

	startBase int64 // caller-visible floor, before the side tables
	start     int64 // first byte available for arena content
	limit     int64

	arenaCount   int64
	headsPtr     int64
	refCountsPtr int64
	currentArena int64
}

// New carves [start, limit) into arenas and zeroes their side tables.
//
// Fails with InvalidArgument if start > limit, if mem.Cap() < limit, or if
// the range is shorter than one ArenaSize and so holds no arena at all.
func New(start, limit int64, mem memory.Access) result.Result[*Allocator] {
	if start > limit {
		return result.Err[*Allocator](result.InvalidArgument, "start %d > limit %d", start, limit)
	}

	if mem.Cap() < limit {
		return result.Err[*Allocator](result.InvalidArgument, "backing store capacity %d < limit %d", mem.Cap(), limit)
	}

	arenaCount := (limit - start) / ArenaSize
	if arenaCount <= 0 {
		return result.Err[*Allocator](result.InvalidArgument, "range [%d, %d) holds no arenas", start, limit)
	}

	a := &Allocator{
		mem:          mem,
		startBase:    start,
		limit:        limit,
		arenaCount:   arenaCount,
		headsPtr:     start,
		refCountsPtr: start + 2*arenaCount,
		start:        start + 4*arenaCount,
	}

	for i := int64(0); i < arenaCount; i++ {
		a.setHead(i, 0)
		a.setRefCount(i, 0)
	}

	debug.Log(nil, "new", "arenas=%d start=%d limit=%d", arenaCount, a.start, limit)

	return result.Ok(a)
}

func (a *Allocator) head(i int64) uint16 {
	return memory.Read[uint16](a.mem, a.headsPtr+2*i)
}

func (a *Allocator) setHead(i int64, v uint16) {
	debug.Assert(int64(v) <= ArenaSize, "arena %d head %d exceeds ArenaSize", i, v)
	memory.Write(a.mem, a.headsPtr+2*i, v)
}

func (a *Allocator) refCount(i int64) uint16 {
	return memory.Read[uint16](a.mem, a.refCountsPtr+2*i)
}

func (a *Allocator) setRefCount(i int64, v uint16) {
	memory.Write(a.mem, a.refCountsPtr+2*i, v)
}

// arenaForPtr resolves the arena owning ptr.
//
// The upper bound check is deliberately ptr > a.limit, not ptr >= a.limit:
// a pointer exactly at limit passes it (it is still rejected by the arena
// index check below when it maps past the last arena), matching the reference allocator's
// arithmetic (the arena holding the last addressable byte still owns the
// address one past it). This is documented source behavior, not a bug to be
// quietly corrected.
func (a *Allocator) arenaForPtr(ptr int64) (int64, bool) {
	if ptr < a.start || ptr > a.limit {
		return 0, false
	}

	idx := (ptr - a.start) / ArenaSize
	if idx < 0 || idx >= a.arenaCount {
		return 0, false
	}

	return idx, true
}

// CurrentArena returns the index the next Alloc will start scanning from.
func (a *Allocator) CurrentArena() int64 { return a.currentArena }

// ArenaOccupation returns arena i's bump head: the offset of its next unused
// byte, or 0 if the arena is empty.
func (a *Allocator) ArenaOccupation(i int64) uint16 { return a.head(i) }

// ArenaRefCount returns arena i's outstanding reference count.
func (a *Allocator) ArenaRefCount(i int64) uint16 { return a.refCount(i) }

// FreeTail returns arena i's unallocated tail, packed as a zc.View over
// that arena's byte range: Start() is the bump head and Len() is the
// remaining free space. Using the packed View here, rather than a plain
// (offset, length) pair, keeps a Stats snapshot's per-arena detail to one
// machine word each.
func (a *Allocator) FreeTail(i int64) zc.View {
	h := int(a.head(i))
	return zc.Raw(h, ArenaSize-h)
}

// Stats summarizes the allocator's current state across all arenas.
type Stats struct {
	AllocatedBytes   int64
	UnallocatedBytes int64
	OccupiedArenas   int64
	EmptyArenas      int64
	TotalRefCount    int64
	LargestFreeBlock int64
}

// State computes a Stats snapshot by scanning every arena's side-table
// entries. O(arena_count); intended for diagnostics and tests, not hot
// paths.
func (a *Allocator) State() Stats {
	var s Stats

	for i := int64(0); i < a.arenaCount; i++ {
		h := int64(a.head(i))
		rc := a.refCount(i)

		s.AllocatedBytes += h
		s.UnallocatedBytes += ArenaSize - h
		s.TotalRefCount += int64(rc)

		if h == 0 {
			s.EmptyArenas++
		} else {
			s.OccupiedArenas++
		}

		if free := int64(a.FreeTail(i).Len()); free > s.LargestFreeBlock {
			s.LargestFreeBlock = free
		}
	}

	return s
}
