/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package cursor

import (
	"iter"
)

// List is a Cursor over a materialized slice. Transactions only remember the
// position they were opened at.
type List[T any] struct {
	items   []T
	pos     int
	markers []int

	value T
	seen  bool
	def   T

	config
}

// NewList returns a List over items. The slice is not copied and must not be
// modified while the cursor is in use.
func NewList[T any](items []T, opts ...Option) *List[T] {
	return &List[T]{
		items:  items,
		config: newConfig(opts),
	}
}

// Collect drains src into a List. A producer failure other than io.EOF is
// returned along with whatever was read before it.
func Collect[T any](src Source[T], opts ...Option) (*List[T], error) {
	s := NewStream(src)

	var items []T
	for v := range s.All() {
		items = append(items, v)
	}

	return NewList(items, opts...), s.Err()
}

func (l *List[T]) Next() (T, error) {
	if l.pos >= len(l.items) {
		var zero T
		l.emit(EventExhausted, len(l.markers), 0)
		return zero, ErrExhausted
	}

	l.value, l.seen = l.items[l.pos], true
	l.pos++
	l.emit(EventNext, len(l.markers), 1)

	return l.value, nil
}

func (l *List[T]) Look(i int) T {
	if i < 0 {
		panic(negativeLookahead(i))
	}

	if i >= len(l.items)-l.pos {
		return l.def
	}

	l.value, l.seen = l.items[l.pos+i], true
	l.emit(EventLook, len(l.markers), i)

	return l.value
}

func (l *List[T]) Peek() T {
	return l.Look(0)
}

func (l *List[T]) Last() (T, bool) {
	return l.value, l.seen
}

func (l *List[T]) SetDefault(v T) {
	l.def = v
}

func (l *List[T]) PushMarker() {
	l.markers = append(l.markers, l.pos)
	l.emit(EventPush, len(l.markers), 0)
}

func (l *List[T]) PopMarker(reset bool) {
	n := len(l.markers)
	if n == 0 {
		panic(unbalanced(n))
	}

	saved := l.markers[n-1]
	l.markers = l.markers[:n-1]

	if reset {
		l.emit(EventRollback, len(l.markers), l.pos-saved)
		l.pos = saved
		return
	}

	// The enclosing marker keeps its own position so that an outer
	// rollback still rewinds past this commit.
	l.emit(EventCommit, len(l.markers), l.pos-saved)
}

func (l *List[T]) Depth() int {
	return len(l.markers)
}

func (l *List[T]) All() iter.Seq[T] {
	return all(l.Next)
}

// Err always returns nil; a List cannot fail part way through.
func (l *List[T]) Err() error {
	return nil
}

// Pos returns the index of the element the next call to Next will return.
func (l *List[T]) Pos() int {
	return l.pos
}

// Len returns the total number of elements, consumed or not.
func (l *List[T]) Len() int {
	return len(l.items)
}
