package tree_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"sara/pkg/allocator"
	"sara/pkg/memory"
	"sara/pkg/tree"
)

type sample struct {
	ID int64
}

func TestBuildAndWalk(t *testing.T) {
	Convey("Given a tree rooted at sample 0 (S8)", t, func() {
		access := memory.NewBytes(1024 * 1024)
		alloc := allocator.New(0, 1024*1024, access).Unwrap()
		tr := tree.New[sample](alloc, access, sample{ID: 0}).Unwrap()

		p1 := tr.AddChild(tr.Root(), sample{ID: 1}).Unwrap()
		p2 := tr.AddChild(tr.Root(), sample{ID: 2}).Unwrap()
		p3 := tr.AddChild(p2, sample{ID: 3}).Unwrap()

		Convey("Child(root) is p1", func() {
			So(tr.Child(tr.Root()).Unwrap(), ShouldEqual, p1)
		})

		Convey("Sibling(p1) is p2, and p2 has no further sibling", func() {
			So(tr.Sibling(p1).Unwrap(), ShouldEqual, p2)
			So(tr.Sibling(p2).IsErr(), ShouldBeTrue)
		})

		Convey("Child(p2) is p3, and ReadBody(p3) is sample 3", func() {
			So(tr.Child(p2).Unwrap(), ShouldEqual, p3)
			So(tr.ReadBody(p3).Unwrap(), ShouldResemble, sample{ID: 3})
		})
	})
}

func TestAddChildThenChildReadBody(t *testing.T) {
	access := memory.NewBytes(1024 * 1024)
	alloc := allocator.New(0, 1024*1024, access).Unwrap()
	tr := tree.New[sample](alloc, access, sample{ID: 0}).Unwrap()

	p := tr.AddChild(tr.Root(), sample{ID: 42}).Unwrap()

	require.Equal(t, p, tr.Child(tr.Root()).Unwrap())
	require.Equal(t, sample{ID: 42}, tr.ReadBody(p).Unwrap())
}

func TestInsertAndRemoveChild(t *testing.T) {
	access := memory.NewBytes(1024 * 1024)
	alloc := allocator.New(0, 1024*1024, access).Unwrap()
	tr := tree.New[sample](alloc, access, sample{ID: 0}).Unwrap()

	a := tr.AddChild(tr.Root(), sample{ID: 1}).Unwrap()
	c := tr.AddChild(tr.Root(), sample{ID: 3}).Unwrap()

	b := tr.InsertChild(tr.Root(), 1, sample{ID: 2}).Unwrap()

	require.Equal(t, a, tr.Child(tr.Root()).Unwrap())
	require.Equal(t, b, tr.Sibling(a).Unwrap())
	require.Equal(t, c, tr.Sibling(b).Unwrap())

	require.True(t, tr.RemoveChild(tr.Root(), 1).IsOk())
	require.Equal(t, c, tr.Sibling(a).Unwrap())
}
