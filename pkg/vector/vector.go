// Package vector implements Vector[T], a chunked, skip-indexed dynamic
// array allocated entirely through [sara/pkg/allocator.Allocator].
//
// A Vector owns no Go memory for its elements: every element lives inside a
// chain of allocator-allocated chunks, each one `[next chunk pointer : i64]`
// followed by up to elemsPerChunk values of T. Random access degrades from
// O(1) toward O(chunks) as the chain grows, so a sparse skip table —
// another allocator allocation, rebuilt lazily — is kept alongside the
// chain to bound the walk.
package vector

import (
	"sara/pkg/allocator"
	"sara/pkg/memory"
	"sara/pkg/opt"
	"sara/pkg/result"
	"sara/pkg/xunsafe/layout"
)

const (
	// TargetElemsPerChunk is the tuning constant for how many elements a
	// chunk holds, subject to the cap imposed by ArenaSize.
	TargetElemsPerChunk = 64

	// SkipTableSizeLimit bounds how many (chunk_index, chunk_ptr) pairs the
	// skip table ever holds, regardless of how long the chain grows.
	SkipTableSizeLimit = 256

	// SkipElemSize is the on-the-wire size of one skip-table entry: a u32
	// chunk index immediately followed by an i64 chunk pointer.
	SkipElemSize = 12

	chunkHeaderSize = 8
)

// Vector is a chunked dynamic array of T, allocated entirely through an
// Allocator. The zero value is not usable; construct with [New].
type Vector[T any] struct {
	mem   memory.Access
	alloc *allocator.Allocator

	elemSize      int64
	elemsPerChunk int64

	elementCount uint32
	chunkCount   int64

	baseChunkTable int64
	endChunkPtr    int64

	skipTable      int64
	skipEntries    int32
	skipTableDirty bool
	rebuilding     bool

	valid bool
}

// chunkLookup is the result of resolving a logical index down to the chunk
// that holds it.
type chunkLookup struct {
	found      bool
	chunk      int64
	chunkIndex int64
}

// New constructs an empty Vector over alloc/mem.
//
// Fails with ConstructionFailure if T is too large to fit more than one
// element per chunk, or if the first chunk cannot be allocated.
func New[T any](alloc *allocator.Allocator, mem memory.Access) result.Result[*Vector[T]] {
	elemSize := int64(layout.Size[T]())

	epc := int64(TargetElemsPerChunk)
	if max := (allocator.ArenaSize - chunkHeaderSize) / elemSize; max < epc {
		epc = max
	}

	if epc <= 1 {
		return result.Err[*Vector[T]](result.ConstructionFailure, "element of size %d cannot fit more than one per chunk", elemSize)
	}

	v := &Vector[T]{
		mem:           mem,
		alloc:         alloc,
		elemSize:      elemSize,
		elemsPerChunk: epc,
		skipTable:     -1,
	}

	first := alloc.Alloc(chunkHeaderSize + epc*elemSize)
	if first.IsErr() {
		return result.Err[*Vector[T]](result.ConstructionFailure, "first chunk alloc failed: %v", first.Reason)
	}

	ptr := first.Unwrap()
	memory.Write[int64](mem, ptr, -1)

	v.baseChunkTable = ptr
	v.endChunkPtr = ptr
	v.chunkCount = 1
	v.valid = true

	v.RebuildSkipTable() // a no-op for a single chunk

	return result.Ok(v)
}

// Len returns the number of elements currently pushed.
func (v *Vector[T]) Len() uint32 { return v.elementCount }

// Valid reports whether the vector is usable. A Vector becomes invalid if
// construction, or an internal allocation it depends on, failed.
func (v *Vector[T]) Valid() bool { return v.valid }

func elementOffset(chunkPtr, slot, elemSize int64) int64 {
	return chunkPtr + chunkHeaderSize + slot*elemSize
}

// CheckedGet is Get with the result folded into an [sara/pkg/opt.Option],
// for call sites that treat absence as a value rather than an error.
func (v *Vector[T]) CheckedGet(i uint32) opt.Option[T] {
	r := v.Get(i)
	if r.IsErr() {
		return opt.None[T]()
	}

	return opt.Some(r.Unwrap())
}
