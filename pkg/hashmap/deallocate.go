package hashmap

import "sara/pkg/result"

// Deallocate releases the bucket vector. The map must not be used
// afterward.
func (m *TaggedHashMap) Deallocate() result.Result[result.Unit] {
	return m.entries.Deallocate()
}
