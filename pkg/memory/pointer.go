package memory

import "sara/pkg/either"

// Absent is the left case of a decoded pointer: the -1 sentinel the
// allocator's containers use in place of a null pointer everywhere a
// pointer field is stored as raw bytes.
type Absent struct{}

// DecodePointer turns a raw -1-sentinel pointer into an Either, so a caller
// can match on presence instead of repeating the `== -1` comparison at
// every call site.
func DecodePointer(ptr int64) either.Either[Absent, int64] {
	if ptr == -1 {
		return either.Left[Absent, int64](Absent{})
	}

	return either.Right[Absent, int64](ptr)
}
