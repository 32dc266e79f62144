package hashmap_test

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"sara/pkg/allocator"
	"sara/pkg/hashmap"
	"sara/pkg/memory"
)

func TestPutGetRemove(t *testing.T) {
	Convey("Given a hash map (A5, A6, A7)", t, func() {
		access := memory.NewBytes(1024 * 1024)
		alloc := allocator.New(0, 1024*1024, access).Unwrap()
		m := hashmap.New(alloc, access, hashmap.MinBucketSize).Unwrap()

		Convey("Put(k, v, true); Get(k) returns v", func() {
			So(m.Put(42, 100, true).IsOk(), ShouldBeTrue)
			So(m.Get(42).Unwrap(), ShouldEqual, uint64(100))
		})

		Convey("Put(k, v, false) on an existing key fails and leaves the value unchanged", func() {
			So(m.Put(7, 1, true).IsOk(), ShouldBeTrue)
			So(m.Put(7, 2, false).IsErr(), ShouldBeTrue)
			So(m.Get(7).Unwrap(), ShouldEqual, uint64(1))
		})

		Convey("Remove(k) makes Get(k) fail without disturbing other keys", func() {
			So(m.Put(1, 10, true).IsOk(), ShouldBeTrue)
			So(m.Put(2, 20, true).IsOk(), ShouldBeTrue)

			removed := m.Remove(1)
			So(removed.IsOk(), ShouldBeTrue)
			So(removed.Unwrap(), ShouldEqual, uint64(10))

			So(m.Get(1).IsErr(), ShouldBeTrue)
			So(m.Get(2).Unwrap(), ShouldEqual, uint64(20))
		})
	})
}

func TestHashMapStress(t *testing.T) {
	Convey("Given a hash map sized for stress (S6, scaled down)", t, func() {
		access := memory.NewBytes(10 * 1024 * 1024)
		alloc := allocator.New(0, 10*1024*1024, access).Unwrap()
		m := hashmap.New(alloc, access, 10000).Unwrap()

		require.True(t, m.Put(0, 1, true).IsOk())

		rng := rand.New(rand.NewSource(1))

		const iterations = 5000

		for i := 0; i < iterations; i++ {
			key := uint64(rng.Intn(1_000_000) + 1)
			require.True(t, m.Put(key, uint64(i), true).IsOk())
			m.Remove(uint64(rng.Intn(1_000_000) + 1))
		}

		So(m.Get(0).Unwrap(), ShouldEqual, uint64(1))
		So(m.Len(), ShouldBeGreaterThanOrEqualTo, uint32(100))
	})
}

func TestDeallocateEmptiesAllocator(t *testing.T) {
	access := memory.NewBytes(4 * 1024 * 1024)
	alloc := allocator.New(0, 4*1024*1024, access).Unwrap()
	m := hashmap.New(alloc, access, hashmap.MinBucketSize).Unwrap()

	for i := uint64(0); i < 128; i++ {
		require.True(t, m.Put(i, i*2, true).IsOk())
	}

	require.True(t, m.Deallocate().IsOk())

	stats := alloc.State()
	require.Zero(t, stats.AllocatedBytes)
	require.Zero(t, stats.TotalRefCount)
}

func TestAllEntriesAndReferences(t *testing.T) {
	access := memory.NewBytes(1024 * 1024)
	alloc := allocator.New(0, 1024*1024, access).Unwrap()
	m := hashmap.New(alloc, access, hashmap.MinBucketSize).Unwrap()

	require.True(t, m.Put(1, 11, true).IsOk())
	require.True(t, m.Put(2, 22, true).IsOk())

	refs := m.References()
	require.True(t, refs.IsOk())
	require.ElementsMatch(t, []int64{11, 22}, refs.Unwrap())
}
