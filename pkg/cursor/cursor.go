/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package cursor provides token cursors with arbitrary lookahead and nested,
// transactional backtracking for recursive-descent parsers.
//
// Two implementations share the Cursor contract: Stream, which wraps a
// one-shot Source and buffers whatever it has pulled ahead of the caller, and
// List, which wraps a fully materialized slice and backtracks by index.
package cursor

import (
	"iter"

	"github.com/pkg/errors"
)

var (
	// ErrExhausted is returned by Next when no elements remain.
	ErrExhausted = errors.New("cursor exhausted")

	// ErrUnbalancedMarker is the panic value (wrapped) raised when PopMarker
	// is called without a matching PushMarker. It indicates a bug in the
	// caller, not a problem with the input.
	ErrUnbalancedMarker = errors.New("pop_marker called without an open marker")
)

// Cursor is an ordered supply of elements with lookahead and nested
// transactions.
type Cursor[T any] interface {
	// Next returns the next element and advances. It returns ErrExhausted
	// once every element has been consumed.
	Next() (T, error)

	// Look returns the element i positions ahead of the next call to Next
	// without advancing. Look(0) is what Next would return. When fewer than
	// i+1 elements remain the configured default is returned instead.
	Look(i int) T

	// Peek is shorthand for Look(0).
	Peek() T

	// Last returns the most recent value produced by Next or Look.
	Last() (T, bool)

	// SetDefault sets the value Look returns past the end of the input.
	SetDefault(v T)

	// PushMarker opens a nested transaction.
	PushMarker()

	// PopMarker closes the innermost transaction. When reset is true every
	// element consumed since the matching PushMarker is made available
	// again; otherwise the consumption is committed to the enclosing
	// transaction, or made permanent if there is none.
	PopMarker(reset bool)

	// Depth returns the number of open transactions.
	Depth() int

	// All iterates over the remaining elements by calling Next.
	All() iter.Seq[T]

	// Err returns the producer failure that ended the input, if any.
	Err() error
}

// Option configures a cursor at construction time.
type Option func(*config)

type config struct {
	observer Observer
}

// WithObserver registers o to receive an Event for every cursor operation.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *config) emit(kind EventKind, depth, count int) {
	if c.observer != nil {
		c.observer.Observe(Event{Kind: kind, Depth: depth, Count: count})
	}
}

func unbalanced(depth int) error {
	return errors.Wrapf(ErrUnbalancedMarker, "marker depth %d", depth)
}

func negativeLookahead(i int) error {
	return errors.Errorf("cursor: negative lookahead %d", i)
}

// all is shared by both implementations of All.
func all[T any](next func() (T, error)) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := next()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
