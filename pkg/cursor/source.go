/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package cursor

import (
	"io"
	"iter"
)

// Source is a single-pass producer of elements. Next returns io.EOF once the
// producer is finished; any other error is treated as a failure that also
// ends the input.
type Source[T any] interface {
	Next() (T, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc[T any] func() (T, error)

func (f SourceFunc[T]) Next() (T, error) {
	return f()
}

// FromSlice returns a Source that yields items once, in order.
func FromSlice[T any](items []T) Source[T] {
	i := 0
	return SourceFunc[T](func() (T, error) {
		if i >= len(items) {
			var zero T
			return zero, io.EOF
		}
		v := items[i]
		i++
		return v, nil
	})
}

// FromSeq returns a Source that pulls from seq, and a stop function that
// releases the iterator. The iterator is stopped on its own once it reports
// its last element; callers that may abandon the source before then must
// call stop. Calling stop more than once is harmless.
func FromSeq[T any](seq iter.Seq[T]) (Source[T], func()) {
	next, stop := iter.Pull(seq)
	src := SourceFunc[T](func() (T, error) {
		v, ok := next()
		if !ok {
			stop()
			return v, io.EOF
		}
		return v, nil
	})
	return src, stop
}

// FromChannel returns a Source that receives from ch until it is closed.
func FromChannel[T any](ch <-chan T) Source[T] {
	return SourceFunc[T](func() (T, error) {
		v, ok := <-ch
		if !ok {
			return v, io.EOF
		}
		return v, nil
	})
}
