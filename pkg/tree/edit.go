package tree

import (
	"sara/pkg/memory"
	"sara/pkg/result"
)

func (t *Tree[T]) newNode(parent int64, value T) result.Result[int64] {
	p := t.alloc.Alloc(nodeSize[T]())
	if p.IsErr() {
		return result.Err[int64](result.ConstructionFailure, "node alloc failed: %v", p.Reason)
	}

	ptr := p.Unwrap()
	memory.WriteCompound(t.mem, ptr, header{Parent: parent, FirstChild: noPtr, NextSibling: noPtr}, value)

	return result.Ok(ptr)
}

// AddChild appends value as a child of parent: as the first child if parent
// currently has none, otherwise at the tail of parent's existing sibling
// chain.
func (t *Tree[T]) AddChild(parent int64, value T) result.Result[int64] {
	ph := t.readHeader(parent)
	if ph.FirstChild != noPtr {
		return t.AddSibling(ph.FirstChild, value)
	}

	p := t.newNode(parent, value)
	if p.IsErr() {
		return p
	}

	ph.FirstChild = p.Unwrap()
	t.writeHeader(parent, ph)

	return p
}

// AddSibling walks node's sibling chain to its tail and appends value
// there, as a sibling of node sharing node's parent.
func (t *Tree[T]) AddSibling(node int64, value T) result.Result[int64] {
	cur := node
	h := t.readHeader(cur)

	for h.NextSibling != noPtr {
		cur = h.NextSibling
		h = t.readHeader(cur)
	}

	p := t.newNode(h.Parent, value)
	if p.IsErr() {
		return p
	}

	h.NextSibling = p.Unwrap()
	t.writeHeader(cur, h)

	return p
}

// InsertChild inserts value as parent's index-th child (0-based), shifting
// the existing child at that position, and everything after it, one slot
// to the right.
//
// Fails if index is greater than the current number of children; index ==
// count appends value after the last child.
func (t *Tree[T]) InsertChild(parent int64, index uint32, value T) result.Result[int64] {
	ph := t.readHeader(parent)

	if ph.FirstChild == noPtr {
		if index != 0 {
			return result.Err[int64](result.InvalidArgument, "index %d out of range for a childless node", index)
		}

		return t.AddChild(parent, value)
	}

	if index == 0 {
		p := t.newNode(parent, value)
		if p.IsErr() {
			return p
		}

		nh := t.readHeader(p.Unwrap())
		nh.NextSibling = ph.FirstChild
		t.writeHeader(p.Unwrap(), nh)

		ph.FirstChild = p.Unwrap()
		t.writeHeader(parent, ph)

		return p
	}

	cur := ph.FirstChild
	ch := t.readHeader(cur)

	for i := uint32(1); i < index; i++ {
		if ch.NextSibling == noPtr {
			return result.Err[int64](result.InvalidArgument, "index %d beyond sibling chain", index)
		}

		cur = ch.NextSibling
		ch = t.readHeader(cur)
	}

	p := t.newNode(parent, value)
	if p.IsErr() {
		return p
	}

	nh := t.readHeader(p.Unwrap())
	nh.NextSibling = ch.NextSibling
	t.writeHeader(p.Unwrap(), nh)

	ch.NextSibling = p.Unwrap()
	t.writeHeader(cur, ch)

	return p
}

// RemoveChild deletes parent's index-th child and its entire subtree.
func (t *Tree[T]) RemoveChild(parent int64, index uint32) result.Result[result.Unit] {
	ph := t.readHeader(parent)
	if ph.FirstChild == noPtr {
		return result.Err[result.Unit](result.InvalidArgument, "node has no children")
	}

	if index == 0 {
		deleted := ph.FirstChild
		dh := t.readHeader(deleted)

		ph.FirstChild = dh.NextSibling
		t.writeHeader(parent, ph)

		t.DeleteNode(deleted)

		return result.Ok(result.Unit{})
	}

	cur := ph.FirstChild
	ch := t.readHeader(cur)

	for i := uint32(1); i < index; i++ {
		if ch.NextSibling == noPtr {
			return result.Err[result.Unit](result.InvalidArgument, "index %d beyond sibling chain", index)
		}

		cur = ch.NextSibling
		ch = t.readHeader(cur)
	}

	if ch.NextSibling == noPtr {
		return result.Err[result.Unit](result.InvalidArgument, "index %d beyond sibling chain", index)
	}

	deleted := ch.NextSibling
	dh := t.readHeader(deleted)

	ch.NextSibling = dh.NextSibling
	t.writeHeader(cur, ch)

	t.DeleteNode(deleted)

	return result.Ok(result.Unit{})
}

// DeleteNode recursively frees ptr's subtree: every sibling of ptr's first
// child, and everything reachable from each of those, is dereffed before
// ptr itself.
func (t *Tree[T]) DeleteNode(ptr int64) {
	h := t.readHeader(ptr)

	child := h.FirstChild
	for child != noPtr {
		ch := t.readHeader(child)
		next := ch.NextSibling

		t.DeleteNode(child)

		child = next
	}

	t.alloc.Deref(ptr)
}
