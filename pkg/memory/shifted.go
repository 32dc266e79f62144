package memory

import (
	"unsafe"

	"sara/pkg/xunsafe"
)

// Shifted wraps an Access that is mapped at a nonzero base offset and
// addressed by absolute location rather than a store-local one: a location o
// read or written through the Shifted view lands at o-base on the
// underlying store, modeling a device or file whose mapped region does not
// begin at offset zero.
type Shifted struct {
	under Access
	base  int64
}

var _ Access = (*Shifted)(nil)

// NewShifted returns a view of under whose underlying byte 0 corresponds to
// absolute location base.
func NewShifted(under Access, base int64) *Shifted {
	return &Shifted{under: under, base: base}
}

// Cap returns the exclusive upper bound on locations addressable through
// this view: base through base+under.Cap() all land inside the underlying
// store.
func (s *Shifted) Cap() int64 { return s.base + s.under.Cap() }

// Raw returns under's bytes re-based so that index base lands on under's
// byte 0, so the generic Read/Write helpers' offset+Raw()[0] arithmetic
// works out to offset-base underneath.
func (s *Shifted) Raw() []byte {
	raw := s.under.Raw()
	rebased := xunsafe.ByteAdd[byte](&raw[0], -s.base)

	return unsafe.Slice(rebased, int(s.base)+len(raw))
}
