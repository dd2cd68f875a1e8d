/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package cursor

import (
	"io"
	"iter"

	"github.com/pkg/errors"
)

// Stream is a Cursor over a one-shot Source. Anything pulled from the source
// ahead of the caller is held in a lookahead buffer, and everything consumed
// while a transaction is open is logged so that a rollback can replay it.
type Stream[T any] struct {
	source    Source[T]
	lookahead []T

	// One log per open transaction, innermost last.
	markers [][]T

	value T
	seen  bool
	def   T

	done bool
	err  error

	config
}

// NewStream returns a Stream reading from src.
func NewStream[T any](src Source[T], opts ...Option) *Stream[T] {
	return &Stream[T]{
		source: src,
		config: newConfig(opts),
	}
}

// pull reads one element from the source into the lookahead buffer. Once the
// source has ended it is never read again.
func (s *Stream[T]) pull() bool {
	if s.done {
		return false
	}

	v, err := s.source.Next()
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = errors.Wrap(err, "cursor: source failed")
		}
		return false
	}

	s.lookahead = append(s.lookahead, v)
	s.emit(EventPull, len(s.markers), 1)

	return true
}

func (s *Stream[T]) Next() (T, error) {
	if len(s.lookahead) == 0 && !s.pull() {
		var zero T
		s.emit(EventExhausted, len(s.markers), 0)
		if s.err != nil {
			return zero, s.err
		}
		return zero, ErrExhausted
	}

	v := s.lookahead[0]
	var zero T
	s.lookahead[0] = zero
	s.lookahead = s.lookahead[1:]

	s.value, s.seen = v, true

	if n := len(s.markers); n > 0 {
		s.markers[n-1] = append(s.markers[n-1], v)
	}

	s.emit(EventNext, len(s.markers), 1)

	return v, nil
}

func (s *Stream[T]) Look(i int) T {
	if i < 0 {
		panic(negativeLookahead(i))
	}

	for len(s.lookahead) <= i {
		if !s.pull() {
			return s.def
		}
	}

	s.value, s.seen = s.lookahead[i], true
	s.emit(EventLook, len(s.markers), i)

	return s.value
}

func (s *Stream[T]) Peek() T {
	return s.Look(0)
}

func (s *Stream[T]) Last() (T, bool) {
	return s.value, s.seen
}

func (s *Stream[T]) SetDefault(v T) {
	s.def = v
}

func (s *Stream[T]) PushMarker() {
	s.markers = append(s.markers, nil)
	s.emit(EventPush, len(s.markers), 0)
}

func (s *Stream[T]) PopMarker(reset bool) {
	n := len(s.markers)
	if n == 0 {
		panic(unbalanced(n))
	}

	log := s.markers[n-1]
	s.markers[n-1] = nil
	s.markers = s.markers[:n-1]

	switch {
	case reset:
		// The log becomes the front of the buffer; it is ours to extend.
		s.lookahead = append(log, s.lookahead...)
		s.emit(EventRollback, len(s.markers), len(log))
	case len(s.markers) > 0:
		s.markers[n-2] = append(s.markers[n-2], log...)
		s.emit(EventCommit, len(s.markers), len(log))
	default:
		s.emit(EventCommit, 0, len(log))
	}
}

func (s *Stream[T]) Depth() int {
	return len(s.markers)
}

func (s *Stream[T]) All() iter.Seq[T] {
	return all(s.Next)
}

func (s *Stream[T]) Err() error {
	return s.err
}

// Buffered returns the number of elements pulled from the source but not yet
// consumed.
func (s *Stream[T]) Buffered() int {
	return len(s.lookahead)
}
