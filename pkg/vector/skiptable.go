package vector

import "sara/pkg/memory"

// readSkipEntry reads the k-th (chunk_index, chunk_ptr) pair.
func (v *Vector[T]) readSkipEntry(k int64) (uint32, int64) {
	return memory.ReadCompound[uint32, int64](v.mem, v.skipTable+k*SkipElemSize)
}

// maybeRebuildSkipTable is the guarded entry point FindNearestChunk calls
// before consulting the table: it does nothing if a rebuild is already in
// flight (the reentrancy guard — RebuildSkipTable itself calls
// FindNearestChunk while populating the new table) or if the table isn't
// dirty.
func (v *Vector[T]) maybeRebuildSkipTable() {
	if v.rebuilding || !v.skipTableDirty {
		return
	}

	v.RebuildSkipTable()
}

// RebuildSkipTable unconditionally recomputes the skip table from the
// current chunk chain.
//
// Fewer than 4 full chunks (element count divided by elements per chunk)
// get no skip table at all — a linear walk from the base is already cheap
// enough. Otherwise a fresh table is built
// by sampling FindNearestChunk at a roughly uniform stride; a sample
// failure aborts the rebuild and leaves the previous table in place. The
// swap to the new table happens only after every sample has succeeded.
func (v *Vector[T]) RebuildSkipTable() {
	v.rebuilding = true
	defer func() { v.rebuilding = false }()

	v.skipTableDirty = false

	chunkTotal := int64(v.elementCount) / v.elemsPerChunk
	if chunkTotal < 4 {
		if v.skipTable != -1 {
			v.alloc.Deref(v.skipTable)
		}

		v.skipTable = -1
		v.skipEntries = 0

		return
	}

	entries := chunkTotal
	if entries > SkipTableSizeLimit {
		entries = SkipTableSizeLimit
	}

	p := v.alloc.Alloc(entries * SkipElemSize)
	if p.IsErr() {
		return // keep the previous table
	}

	newTable := p.Unwrap()

	stride := int64(v.elementCount) / entries
	if stride < 1 {
		stride = 1
	}

	ok := true
	for k := int64(0); k < entries; k++ {
		lookup := v.FindNearestChunk(k * stride)
		if !lookup.found {
			ok = false
			break
		}

		memory.WriteCompound[uint32, int64](v.mem, newTable+k*SkipElemSize, uint32(lookup.chunkIndex), lookup.chunk)
	}

	if !ok {
		v.alloc.Deref(newTable)
		return
	}

	if v.skipTable != -1 {
		v.alloc.Deref(v.skipTable)
	}

	v.skipTable = newTable
	v.skipEntries = int32(entries)
}
