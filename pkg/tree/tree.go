// Package tree implements Tree[T], a first-child/next-sibling k-way tree of
// fixed-size nodes allocated through [sara/pkg/allocator.Allocator].
//
// Every node is one allocation: a 24-byte header of three pointers
// (parent, first child, next sibling) immediately followed by a T payload.
// A k-way tree with an unbounded fan-out is represented without a
// variable-length child array by threading each node's children through a
// singly linked sibling list rooted at its parent's first_child pointer —
// the same trick a filesystem directory entry or a DOM node uses.
package tree

import (
	"sara/pkg/allocator"
	"sara/pkg/memory"
	"sara/pkg/result"
	"sara/pkg/xunsafe/layout"
)

const noPtr = -1

// header is the fixed 24-byte prefix of every node.
type header struct {
	Parent      int64
	FirstChild  int64
	NextSibling int64
}

// Tree is a first-child/next-sibling tree of T payloads.
type Tree[T any] struct {
	mem   memory.Access
	alloc *allocator.Allocator

	root  int64
	valid bool
}

// New allocates a root node holding rootValue.
func New[T any](alloc *allocator.Allocator, mem memory.Access, rootValue T) result.Result[*Tree[T]] {
	t := &Tree[T]{mem: mem, alloc: alloc}

	p := alloc.Alloc(nodeSize[T]())
	if p.IsErr() {
		return result.Err[*Tree[T]](result.ConstructionFailure, "root alloc failed: %v", p.Reason)
	}

	root := p.Unwrap()
	memory.WriteCompound(mem, root, header{Parent: noPtr, FirstChild: noPtr, NextSibling: noPtr}, rootValue)

	t.root = root
	t.valid = true

	return result.Ok(t)
}

func nodeSize[T any]() int64 { return 24 + int64(layout.Size[T]()) }

// Root returns the tree's root pointer.
func (t *Tree[T]) Root() int64 { return t.root }

// Valid reports whether the tree is usable.
func (t *Tree[T]) Valid() bool { return t.valid }

func (t *Tree[T]) readHeader(ptr int64) header {
	return memory.Read[header](t.mem, ptr)
}

func (t *Tree[T]) writeHeader(ptr int64, h header) {
	memory.Write(t.mem, ptr, h)
}

// ReadBody returns the payload stored at ptr.
func (t *Tree[T]) ReadBody(ptr int64) result.Result[T] {
	if ptr == noPtr {
		return result.Err[T](result.InvalidArgument, "nil node pointer")
	}

	return result.Ok(memory.Read[T](t.mem, ptr+24))
}

// Child returns p's first child.
func (t *Tree[T]) Child(p int64) result.Result[int64] {
	h := t.readHeader(p)

	d := memory.DecodePointer(h.FirstChild)
	if d.HasLeft() {
		return result.Err[int64](result.InvalidArgument, "node has no children")
	}

	return result.Ok(d.UnwrapRight())
}

// Sibling returns p's next sibling.
func (t *Tree[T]) Sibling(p int64) result.Result[int64] {
	h := t.readHeader(p)

	d := memory.DecodePointer(h.NextSibling)
	if d.HasLeft() {
		return result.Err[int64](result.InvalidArgument, "node has no next sibling")
	}

	return result.Ok(d.UnwrapRight())
}

// SiblingR threads Sibling through a chain of fallible lookups, so a walk
// like SiblingR(SiblingR(Child(...))) short-circuits as soon as any link is
// missing instead of needing an error check at every step.
func (t *Tree[T]) SiblingR(p result.Result[int64]) result.Result[int64] {
	return result.AndThen(p, t.Sibling)
}
