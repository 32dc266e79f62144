package vector

import (
	"sara/internal/debug"
	"sara/pkg/memory"
	"sara/pkg/result"
)

// Push appends value, allocating a new chunk first if the current one is
// full.
func (v *Vector[T]) Push(value T) result.Result[result.Unit] {
	if !v.valid {
		return result.Err[result.Unit](result.ConstructionFailure, "vector invalid")
	}

	idx := int64(v.elementCount)
	chunkIdx := idx / v.elemsPerChunk

	if chunkIdx >= v.chunkCount {
		if r := v.newChunk(); r.IsErr() {
			return r
		}
	}

	slot := idx % v.elemsPerChunk
	memory.Write(v.mem, elementOffset(v.endChunkPtr, slot, v.elemSize), value)
	v.elementCount++

	debug.Log(nil, "push", "index=%d chunk=%d slot=%d", idx, v.endChunkPtr, slot)

	return result.Ok(result.Unit{})
}

// Pop removes and returns the last element. If it was the sole element of
// a non-base chunk, the chunk itself is reclaimed.
func (v *Vector[T]) Pop() result.Result[T] {
	if v.elementCount == 0 {
		return result.Err[T](result.InvalidArgument, "pop of empty vector")
	}

	index := int64(v.elementCount) - 1
	slot := index % v.elemsPerChunk

	value := memory.Read[T](v.mem, elementOffset(v.endChunkPtr, slot, v.elemSize))

	if slot == 0 && index > 0 {
		old := v.endChunkPtr

		prev := v.FindNearestChunk(index - v.elemsPerChunk)
		v.endChunkPtr = prev.chunk
		memory.Write[int64](v.mem, v.endChunkPtr, -1)

		v.alloc.Deref(old)
		v.chunkCount--
		v.skipTableDirty = true

		debug.Log(nil, "pop", "index=%d chunk %d reclaimed, end now %d", index, old, v.endChunkPtr)
	} else {
		debug.Log(nil, "pop", "index=%d", index)
	}

	v.elementCount--

	return result.Ok(value)
}

// Get returns the element at logical index i.
func (v *Vector[T]) Get(i uint32) result.Result[T] {
	if i >= v.elementCount {
		return result.Err[T](result.InvalidArgument, "index %d out of range (len=%d)", i, v.elementCount)
	}

	lookup := v.FindNearestChunk(int64(i))
	if !lookup.found {
		return result.Err[T](result.InvalidArgument, "could not resolve chunk for index %d", i)
	}

	debug.Assert(i < v.elementCount, "index %d out of bounds (len=%d)", i, v.elementCount)

	slot := int64(i) % v.elemsPerChunk

	return result.Ok(memory.Read[T](v.mem, elementOffset(lookup.chunk, slot, v.elemSize)))
}

// Set overwrites the element at logical index i, returning the previous
// value.
func (v *Vector[T]) Set(i uint32, value T) result.Result[T] {
	if i >= v.elementCount {
		return result.Err[T](result.InvalidArgument, "index %d out of range (len=%d)", i, v.elementCount)
	}

	lookup := v.FindNearestChunk(int64(i))
	offset := elementOffset(lookup.chunk, int64(i)%v.elemsPerChunk, v.elemSize)

	prev := memory.Read[T](v.mem, offset)
	memory.Write(v.mem, offset, value)

	return result.Ok(prev)
}

// Swap exchanges the elements at logical indices i and j.
func (v *Vector[T]) Swap(i, j uint32) result.Result[result.Unit] {
	if i >= v.elementCount || j >= v.elementCount {
		return result.Err[result.Unit](result.InvalidArgument, "swap index out of range (len=%d)", v.elementCount)
	}

	li := v.FindNearestChunk(int64(i))
	lj := v.FindNearestChunk(int64(j))

	oi := elementOffset(li.chunk, int64(i)%v.elemsPerChunk, v.elemSize)
	oj := elementOffset(lj.chunk, int64(j)%v.elemsPerChunk, v.elemSize)

	vi := memory.Read[T](v.mem, oi)
	vj := memory.Read[T](v.mem, oj)

	memory.Write(v.mem, oi, vj)
	memory.Write(v.mem, oj, vi)

	return result.Ok(result.Unit{})
}

// Prealloc extends the chunk chain until it can hold length elements and
// sets the logical length to it directly, without writing to the newly
// exposed slots — their contents are whatever the backing allocation held,
// by design; callers relying on Prealloc followed by Set must not assume a
// zero fill.
func (v *Vector[T]) Prealloc(length uint32) result.Result[result.Unit] {
	if !v.valid {
		return result.Err[result.Unit](result.ConstructionFailure, "vector invalid")
	}

	needed := int64(1)
	if length > 0 {
		needed = (int64(length) + v.elemsPerChunk - 1) / v.elemsPerChunk
	}

	for v.chunkCount < needed {
		if r := v.newChunk(); r.IsErr() {
			return r
		}
	}

	v.elementCount = length
	v.RebuildSkipTable()

	return result.Ok(result.Unit{})
}

// Deallocate derefs the skip table (if any) and every chunk in the chain,
// defusing each chunk's forward pointer to -1 as it goes so an accidental
// reuse of a stale pointer cannot walk into a cycle. The vector must not be
// used afterward.
func (v *Vector[T]) Deallocate() result.Result[result.Unit] {
	if v.skipTable != -1 {
		v.alloc.Deref(v.skipTable)
		v.skipTable = -1
		v.skipEntries = 0
	}

	ptr := v.baseChunkTable
	for ptr != -1 {
		next := memory.Read[int64](v.mem, ptr)
		memory.Write[int64](v.mem, ptr, -1)
		v.alloc.Deref(ptr)
		ptr = next
	}

	v.valid = false
	v.chunkCount = 0

	return result.Ok(result.Unit{})
}
