// Package list provides the persistent cons list the Seax VM is built on.
//
// A List is both the VM's list value and the buffer compilers collect
// instructions into. Lists are never mutated once built: Push and Pop return
// new lists that share structure with the original, so a List may be copied
// and handed around freely. No list ever contains a cycle.
//
// Every traversal is a loop, so long lists do not grow the goroutine stack.
package list

import (
	"fmt"
	"iter"
	"strings"

	"github.com/seax-vm/seaxtools/errz"
)

type node[T any] struct {
	head T
	tail *node[T]
}

// List is an immutable singly linked list. The zero value is the empty list.
type List[T any] struct {
	first *node[T]
}

// Empty returns the empty list.
func Empty[T any]() List[T] {
	return List[T]{}
}

// Of builds a list holding items in the given order, so items[0] becomes
// the head.
func Of[T any](items ...T) List[T] {
	return FromSlice(items)
}

// FromSlice builds a list holding the elements of items in order.
func FromSlice[T any](items []T) List[T] {
	var l List[T]
	for i := len(items) - 1; i >= 0; i-- {
		l = l.Push(items[i])
	}
	return l
}

// Push returns a new list with item as its head and l as its tail.
func (l List[T]) Push(item T) List[T] {
	return List[T]{first: &node[T]{head: item, tail: l.first}}
}

// Pop detaches the head of the list. The boolean is false if the list is
// empty.
func (l List[T]) Pop() (T, List[T], bool) {
	if l.first == nil {
		var zero T
		return zero, l, false
	}
	return l.first.head, List[T]{first: l.first.tail}, true
}

// Peek returns the head of the list without removing it.
func (l List[T]) Peek() (T, bool) {
	if l.first == nil {
		var zero T
		return zero, false
	}
	return l.first.head, true
}

// Tail returns the list without its head. The tail of the empty list is the
// empty list.
func (l List[T]) Tail() List[T] {
	if l.first == nil {
		return l
	}
	return List[T]{first: l.first.tail}
}

// IsEmpty returns true if the list has no elements.
func (l List[T]) IsEmpty() bool {
	return l.first == nil
}

// Length counts the elements of the list.
func (l List[T]) Length() int {
	count := 0
	for n := l.first; n != nil; n = n.tail {
		count++
	}
	return count
}

// At returns the element at the 0-based position i from the head. A negative
// or out-of-range index is a broken precondition and panics with
// errz.ErrIndexOutOfRange.
func (l List[T]) At(i int) T {
	if i < 0 {
		errz.Fatalf(errz.ErrIndexOutOfRange, "negative index %d", i)
	}
	return l.AtUint(uint64(i))
}

// AtUint is At for unsigned positions.
func (l List[T]) AtUint(i uint64) T {
	n := l.first
	for pos := uint64(0); n != nil; pos++ {
		if pos == i {
			return n.head
		}
		n = n.tail
	}
	errz.Fatalf(errz.ErrIndexOutOfRange, "index %d with length %d", i, l.Length())
	panic("unreachable")
}

// Iter returns a new iterator positioned at the head of the list.
func (l List[T]) Iter() *Iterator[T] {
	return &Iterator[T]{next: l.first}
}

// All returns a sequence over the elements, head to tail. Each range over
// the sequence starts a fresh traversal.
func (l List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.first; n != nil; n = n.tail {
			if !yield(n.head) {
				return
			}
		}
	}
}

// Slice copies the elements into a new slice, head first.
func (l List[T]) Slice() []T {
	items := make([]T, 0, l.Length())
	for n := l.first; n != nil; n = n.tail {
		items = append(items, n.head)
	}
	return items
}

// Reverse returns a new list with the elements in the opposite order.
func (l List[T]) Reverse() List[T] {
	var out List[T]
	for n := l.first; n != nil; n = n.tail {
		out = out.Push(n.head)
	}
	return out
}

// Append returns the elements of l followed by the elements of other. The
// nodes of other are shared, not copied.
func (l List[T]) Append(other List[T]) List[T] {
	if l.first == nil {
		return other
	}
	items := l.Slice()
	out := other
	for i := len(items) - 1; i >= 0; i-- {
		out = out.Push(items[i])
	}
	return out
}

// Map returns a new list holding fn applied to every element.
func Map[T, U any](l List[T], fn func(T) U) List[U] {
	items := make([]U, 0, l.Length())
	for n := l.first; n != nil; n = n.tail {
		items = append(items, fn(n.head))
	}
	return FromSlice(items)
}

// Equal reports whether a and b have the same length and eq holds for each
// pair of elements at the same position.
func Equal[T any](a, b List[T], eq func(x, y T) bool) bool {
	x, y := a.first, b.first
	for x != nil && y != nil {
		if x == y {
			// shared tail
			return true
		}
		if !eq(x.head, y.head) {
			return false
		}
		x, y = x.tail, y.tail
	}
	return x == nil && y == nil
}

// Format renders the list as "(e1, e2, ..., en)" using fn for each element.
func (l List[T]) Format(fn func(T) string) string {
	var b strings.Builder
	b.WriteByte('(')
	for n := l.first; n != nil; n = n.tail {
		if n != l.first {
			b.WriteString(", ")
		}
		b.WriteString(fn(n.head))
	}
	b.WriteByte(')')
	return b.String()
}

// String renders the list as "(e1, e2, ..., en)"; the empty list is "()".
func (l List[T]) String() string {
	return l.Format(func(item T) string {
		return fmt.Sprint(item)
	})
}

// Iterator walks a list from head to tail.
type Iterator[T any] struct {
	next *node[T]
}

// Next returns the next element. The boolean is false once the list is
// exhausted.
func (it *Iterator[T]) Next() (T, bool) {
	if it.next == nil {
		var zero T
		return zero, false
	}
	item := it.next.head
	it.next = it.next.tail
	return item, true
}
