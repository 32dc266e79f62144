package allocator

import (
	"sara/internal/debug"
	"sara/pkg/result"
)

// Alloc bump-allocates byteCount bytes from the first arena, starting the
// scan at currentArena and wrapping around, whose head leaves enough room.
//
// Fails with InvalidArgument if byteCount exceeds ArenaSize — allocations
// never span arenas — and with CapacityExhausted if no arena currently has
// enough free space.
func (a *Allocator) Alloc(byteCount int64) result.Result[int64] {
	if byteCount > ArenaSize {
		return result.Err[int64](result.InvalidArgument, "alloc of %d bytes exceeds arena size %d", byteCount, ArenaSize)
	}

	for n := int64(0); n < a.arenaCount; n++ {
		idx := (a.currentArena + n) % a.arenaCount

		h := int64(a.head(idx))
		if h > ArenaSize-byteCount {
			continue
		}

		rc := a.refCount(idx)
		if rc < MaxRefCount {
			rc++
		}

		newHead := h + byteCount
		a.setHead(idx, uint16(newHead))
		a.setRefCount(idx, rc)
		a.currentArena = idx

		debug.Log(nil, "alloc", "arena=%d head=%d->%d ref=%d ptr=%d", idx, h, newHead, rc, a.start+idx*ArenaSize+h)

		return result.Ok(a.start + idx*ArenaSize + h)
	}

	return result.Err[int64](result.CapacityExhausted, "no arena with %d free bytes", byteCount)
}
