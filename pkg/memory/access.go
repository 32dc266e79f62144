// Package memory defines the byte-addressable memory contract the allocator
// and every container built on it read and write through.
//
// SArA assumes no host heap: the only primitive available is a contiguous,
// externally supplied byte-addressable region. Access is the abstraction
// over that region. It is deliberately thin — typed reads and writes of
// plain-old-data at a byte offset, with no alignment or bounds guarantees
// beyond what the backing store imposes. Callers have already validated
// offsets through the [sara/pkg/allocator] package before reaching here;
// Access does not bounds-check, and an out-of-range offset is undefined
// behavior, same as it would be in the embedded C/C++ code this package
// stands in for.
package memory

import (
	"sara/pkg/xunsafe"
	"sara/pkg/xunsafe/layout"
)

// Access is the contract a backing byte store presents to the allocator and
// its containers.
//
// Raw exposes the underlying storage so the package-level Read/Write/
// WriteCompound/ReadCompound helpers can reinterpret it as arbitrary
// plain-old-data via [sara/pkg/xunsafe], the same way those types reinterpret
// in-process memory. Read/Write cannot be Access methods directly: Go
// forbids generic methods on interfaces.
type Access interface {
	// Cap returns the number of addressable bytes in this store.
	Cap() int64

	// Raw returns the byte slice backing offset 0 of this store. Indexing
	// past len(Raw()) is undefined behavior; callers only ever reach here
	// after the allocator has already bounds-checked the access.
	Raw() []byte
}

// base returns a pointer to byte 0 of a's backing store. Panics if the store
// is empty, matching a nil/zero-length arena having no valid offsets at all.
func base(a Access) *byte {
	return &a.Raw()[0]
}

// Read reinterprets the bytes at offset as a T and loads it.
//
// The caller must ensure offset+sizeof(T) <= a.Cap(); Read performs no
// bounds check.
func Read[T any](a Access, offset int64) T {
	return *xunsafe.ByteAdd[T](base(a), offset)
}

// Write reinterprets the bytes at offset as a T and stores v into them.
//
// The caller must ensure offset+sizeof(T) <= a.Cap(); Write performs no
// bounds check.
func Write[T any](a Access, offset int64, v T) {
	*xunsafe.ByteAdd[T](base(a), offset) = v
}

// WriteCompound writes head immediately followed by body: sizeof(head) bytes
// of head starting at offset, then sizeof(body) bytes of body starting at
// offset+sizeof(head).
//
// This is the combined operation the vector's chunk header (next-chunk
// pointer immediately followed by the first element) and the tree's node
// record both rely on to avoid two round trips through Access.
func WriteCompound[H, B any](a Access, offset int64, head H, body B) {
	Write(a, offset, head)
	Write(a, offset+int64(layout.Size[H]()), body)
}

// ReadCompound is the inverse of WriteCompound.
func ReadCompound[H, B any](a Access, offset int64) (H, B) {
	h := Read[H](a, offset)
	b := Read[B](a, offset+int64(layout.Size[H]()))
	return h, b
}
