package vector

import (
	"sara/pkg/memory"
	"sara/pkg/result"
)

// newChunk allocates a fresh chunk, links it onto the end of the chain, and
// marks the skip table dirty so it picks up the new chunk on its next
// rebuild.
func (v *Vector[T]) newChunk() result.Result[result.Unit] {
	p := v.alloc.Alloc(chunkHeaderSize + v.elemsPerChunk*v.elemSize)
	if p.IsErr() {
		v.valid = false
		return result.Err[result.Unit](result.ConstructionFailure, "chunk alloc failed: %v", p.Reason)
	}

	ptr := p.Unwrap()
	memory.Write[int64](v.mem, ptr, -1)
	memory.Write[int64](v.mem, v.endChunkPtr, ptr)

	v.endChunkPtr = ptr
	v.chunkCount++
	v.skipTableDirty = true

	return result.Ok(result.Unit{})
}

// FindNearestChunk resolves the chunk holding targetIndex.
//
// The first and last chunk are resolved in O(1) (the common cases: the
// start and the append point). Anything in between consults the skip table
// for a nearby chunk, then walks the forward-linked chain the remaining
// distance; a walk longer than 5 hops marks the skip table dirty so it
// gets denser on the next rebuild.
func (v *Vector[T]) FindNearestChunk(targetIndex int64) chunkLookup {
	targetChunk := targetIndex / v.elemsPerChunk

	var endChunk int64
	if v.elementCount > 0 {
		endChunk = (int64(v.elementCount) - 1) / v.elemsPerChunk
	}

	if targetChunk == 0 {
		return chunkLookup{found: true, chunk: v.baseChunkTable, chunkIndex: 0}
	}

	if v.elementCount == 0 || targetChunk == endChunk {
		return chunkLookup{found: true, chunk: v.endChunkPtr, chunkIndex: targetChunk}
	}

	if targetIndex >= int64(v.elementCount) {
		return chunkLookup{found: false, chunk: v.endChunkPtr, chunkIndex: targetChunk}
	}

	v.maybeRebuildSkipTable()

	startChunk, chunkPtr := int64(0), v.baseChunkTable

	if v.skipEntries > 1 {
		guess := targetChunk * int64(v.skipEntries) / endChunk

		lo := guess - 2
		if lo < 0 {
			lo = 0
		}

		hi := guess + 2
		if hi > int64(v.skipEntries)-1 {
			hi = int64(v.skipEntries) - 1
		}

		for k := lo; k <= hi; k++ {
			idx, ptr := v.readSkipEntry(k)
			if int64(idx) > targetChunk {
				break
			}

			startChunk, chunkPtr = int64(idx), ptr
		}
	}

	steps := targetChunk - startChunk
	for s := int64(0); s < steps; s++ {
		chunkPtr = memory.Read[int64](v.mem, chunkPtr)
	}

	if steps > 5 && v.skipEntries < SkipTableSizeLimit {
		v.skipTableDirty = true
	}

	return chunkLookup{found: true, chunk: chunkPtr, chunkIndex: targetChunk}
}
