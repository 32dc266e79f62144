package hashmap

import (
	"sara/internal/debug"
	"sara/pkg/result"
)

// Put inserts key/value. If key is already present, it is replaced only
// when canReplace is true; otherwise Put fails and the map is left
// unchanged.
func (m *TaggedHashMap) Put(key, value uint64, canReplace bool) result.Result[result.Unit] {
	if m.countUsed >= m.growAt {
		debug.Log(nil, "grow", "count=%d countUsed=%d growAt=%d", m.count, m.countUsed, m.growAt)

		if r := m.resizeNext(); r.IsErr() {
			return result.Err[result.Unit](result.CapacityExhausted, "grow failed: %v", r.Reason)
		}
	}

	debug.Assert(m.count == 0 || float64(m.countUsed) <= float64(m.count)*LoadFactor+1, "load factor exceeded before insert: %d/%d", m.countUsed, m.count)

	return m.insert(Entry{Hash: m.hash(key), Key: key, Value: value}, canReplace, true)
}

// insert runs the Robin-Hood probe sequence for e, swapping e with any
// occupant whose probe distance is shorter than e's current one and
// continuing to insert the displaced occupant. checkDuplicates is false
// when re-inserting during a resize, where every key is already known
// unique.
func (m *TaggedHashMap) insert(e Entry, canReplace, checkDuplicates bool) result.Result[result.Unit] {
	idx := e.Hash & m.countMod
	dist := uint32(0)

	for {
		slot := m.entries.Get(idx).Unwrap()

		if slot.Hash == 0 {
			m.entries.Set(idx, e)
			m.countUsed++

			debug.Log(nil, "insert", "key=%d slot=%d dist=%d countUsed=%d", e.Key, idx, dist, m.countUsed)

			return result.Ok(result.Unit{})
		}

		if checkDuplicates && slot.Key == e.Key {
			if !canReplace {
				return result.Err[result.Unit](result.InvalidArgument, "key already present")
			}

			slot.Value = e.Value
			m.entries.Set(idx, slot)

			return result.Ok(result.Unit{})
		}

		occupantDist := probeDistance(idx, slot.Hash&m.countMod, m.count)
		if occupantDist < dist {
			m.entries.Set(idx, e)
			e = slot
			dist = occupantDist
			checkDuplicates = false
		}

		idx = (idx + 1) % m.count
		dist++

		if dist >= m.count {
			if r := m.resizeNext(); r.IsErr() {
				return result.Err[result.Unit](result.CapacityExhausted, "grow failed: %v", r.Reason)
			}

			return m.insert(e, canReplace, checkDuplicates)
		}
	}
}

// Get returns key's value, or fails if key is not present.
func (m *TaggedHashMap) Get(key uint64) result.Result[uint64] {
	h := m.hash(key)
	idx := h & m.countMod

	for i := uint32(0); ; i++ {
		slot := m.entries.Get(idx).Unwrap()

		if slot.Hash == 0 {
			return result.Err[uint64](result.InvalidArgument, "key not found")
		}

		if slot.Hash == h && slot.Key == key {
			return result.Ok(slot.Value)
		}

		if i > probeDistance(idx, slot.Hash&m.countMod, m.count) {
			return result.Err[uint64](result.InvalidArgument, "key not found")
		}

		idx = (idx + 1) % m.count
	}
}

// Remove deletes key, back-shifting every subsequent entry in its probe
// chain by one so later lookups stay correct without needing tombstones.
func (m *TaggedHashMap) Remove(key uint64) result.Result[uint64] {
	h := m.hash(key)
	idx := h & m.countMod

	for i := uint32(0); ; i++ {
		slot := m.entries.Get(idx).Unwrap()

		if slot.Hash == 0 {
			return result.Err[uint64](result.InvalidArgument, "key not found")
		}

		if slot.Hash == h && slot.Key == key {
			value := slot.Value
			m.backShift(idx)
			m.countUsed--

			if m.auto && m.shrinkAt > 0 && m.countUsed <= m.shrinkAt {
				m.Resize(m.shrinkAt, true)
			}

			return result.Ok(value)
		}

		if i > probeDistance(idx, slot.Hash&m.countMod, m.count) {
			return result.Err[uint64](result.InvalidArgument, "key not found")
		}

		idx = (idx + 1) % m.count
	}
}

// backShift moves every entry following the freed slot back by one,
// stopping at the first empty slot or the first entry already at its ideal
// bucket (probe distance 0), and clears the tail it leaves behind.
func (m *TaggedHashMap) backShift(empty uint32) {
	cur := empty

	for {
		next := (cur + 1) % m.count

		slot := m.entries.Get(next).Unwrap()
		if slot.Hash == 0 || probeDistance(next, slot.Hash&m.countMod, m.count) == 0 {
			break
		}

		m.entries.Set(cur, slot)
		cur = next
	}

	m.entries.Set(cur, Entry{})
}
