package allocator

import (
	"sara/internal/debug"
	"sara/pkg/result"
)

// Reference increments the reference count of the arena owning ptr.
//
// Fails with InvalidArgument if ptr falls outside the managed range, and
// with StateViolation if the arena's count has already saturated at
// MaxRefCount — the caller has held more references than the 16-bit side
// table can represent.
func (a *Allocator) Reference(ptr int64) result.Result[result.Unit] {
	idx, ok := a.arenaForPtr(ptr)
	if !ok {
		return result.Err[result.Unit](result.InvalidArgument, "pointer %d out of range", ptr)
	}

	rc := a.refCount(idx)
	if rc == MaxRefCount {
		return result.Err[result.Unit](result.StateViolation, "arena %d reference count saturated", idx)
	}

	a.setRefCount(idx, rc+1)

	debug.Log(nil, "reference", "arena=%d ref=%d->%d", idx, rc, rc+1)

	return result.Ok(result.Unit{})
}

// Deref decrements the reference count of the arena owning ptr. When the
// count reaches zero the whole arena is reclaimed: its head resets to 0,
// discarding every allocation it held, and if its index is below
// currentArena the scan hint moves down to it, biasing future allocations
// toward low-indexed arenas.
//
// Fails with InvalidArgument if ptr is out of range, and with
// StateViolation if the arena's count is already zero (overfree).
func (a *Allocator) Deref(ptr int64) result.Result[result.Unit] {
	idx, ok := a.arenaForPtr(ptr)
	if !ok {
		return result.Err[result.Unit](result.InvalidArgument, "pointer %d out of range", ptr)
	}

	rc := a.refCount(idx)
	if rc == 0 {
		return result.Err[result.Unit](result.StateViolation, "arena %d overfree", idx)
	}

	rc--
	a.setRefCount(idx, rc)

	debug.Log(nil, "deref", "arena=%d ref=%d->%d", idx, rc+1, rc)

	if rc == 0 {
		a.setHead(idx, 0)
		debug.Log(nil, "reclaim", "arena=%d head reset", idx)

		if idx < a.currentArena {
			a.currentArena = idx
		}
	}

	return result.Ok(result.Unit{})
}

// ScanAndSweep recomputes every arena's reference count from scratch against
// a live set, rather than through paired Reference/Deref calls: every
// arena's count is zeroed, then incremented once per pointer in live that
// falls within it, and finally any arena left at zero is reclaimed (head
// reset, and the scan hint moved down to it).
//
// Arenas are swept from the highest index to the lowest so that the
// resulting currentArena hint ends up at the lowest reclaimed arena. Unlike
// Deref, this moves the hint even when that arena is above the old hint;
// when no arena is reclaimed the hint is left as it was.
func (a *Allocator) ScanAndSweep(live []int64) {
	debug.Log(nil, "scan-and-sweep", "arenas=%d live=%d", a.arenaCount, len(live))

	for i := int64(0); i < a.arenaCount; i++ {
		a.setRefCount(i, 0)
	}

	for _, ptr := range live {
		idx, ok := a.arenaForPtr(ptr)
		if !ok {
			continue
		}

		rc := a.refCount(idx)
		if rc < MaxRefCount {
			a.setRefCount(idx, rc+1)
		}
	}

	for idx := a.arenaCount - 1; idx >= 0; idx-- {
		if a.refCount(idx) == 0 {
			a.setHead(idx, 0)
			a.currentArena = idx
		}
	}

	debug.Log(nil, "scan-and-sweep", "done currentArena=%d", a.currentArena)
}
