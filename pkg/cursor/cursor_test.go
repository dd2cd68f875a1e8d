/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package cursor_test

import (
	"fmt"
	"io"
	"math"
	"slices"
	"testing"

	"github.com/dburkart/lookahead/pkg/cursor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// variants returns a fresh cursor of each kind over items.
func variants[T any](items []T) map[string]func() cursor.Cursor[T] {
	return map[string]func() cursor.Cursor[T]{
		"stream": func() cursor.Cursor[T] { return cursor.NewStream(cursor.FromSlice(items)) },
		"list":   func() cursor.Cursor[T] { return cursor.NewList(items) },
	}
}

func drain[T any](t *testing.T, c cursor.Cursor[T]) []T {
	t.Helper()
	var out []T
	for v := range c.All() {
		out = append(out, v)
	}
	return out
}

func mustNext[T any](t *testing.T, c cursor.Cursor[T], n int) []T {
	t.Helper()
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := c.Next()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestNextInOrder(t *testing.T) {
	for name, mk := range variants([]int{1, 2, 3}) {
		t.Run(name, func(t *testing.T) {
			c := mk()
			assert.Equal(t, []int{1, 2, 3}, mustNext(t, c, 3))

			_, err := c.Next()
			assert.ErrorIs(t, err, cursor.ErrExhausted)

			// Exhaustion is sticky.
			_, err = c.Next()
			assert.ErrorIs(t, err, cursor.ErrExhausted)
		})
	}
}

func TestRollbackIdentity(t *testing.T) {
	for name, mk := range variants([]string{"a", "b", "c", "d", "e"}) {
		t.Run(name, func(t *testing.T) {
			c := mk()
			mustNext(t, c, 1)

			c.PushMarker()
			first := mustNext(t, c, 3)
			c.PopMarker(true)

			assert.Equal(t, first, mustNext(t, c, 3))
			assert.Equal(t, []string{"e"}, drain(t, c))
		})
	}
}

func TestRollbackAfterLookahead(t *testing.T) {
	for name, mk := range variants([]int{1, 2, 3, 4}) {
		t.Run(name, func(t *testing.T) {
			c := mk()

			c.PushMarker()
			assert.Equal(t, 3, c.Look(2))
			mustNext(t, c, 1)
			assert.Equal(t, 4, c.Look(2))
			c.PopMarker(true)

			assert.Equal(t, []int{1, 2, 3, 4}, drain(t, c))
		})
	}
}

func TestCommitTransparency(t *testing.T) {
	for name, mk := range variants([]int{10, 20, 30}) {
		t.Run(name, func(t *testing.T) {
			c := mk()
			mustNext(t, c, 1)

			c.PushMarker()
			c.PopMarker(false)

			assert.Equal(t, 0, c.Depth())
			assert.Equal(t, 20, c.Peek())
			assert.Equal(t, []int{20, 30}, drain(t, c))
		})
	}
}

func TestCommitWithoutOuterIsPermanent(t *testing.T) {
	for name, mk := range variants([]int{1, 2, 3}) {
		t.Run(name, func(t *testing.T) {
			c := mk()

			c.PushMarker()
			mustNext(t, c, 2)
			c.PopMarker(false)

			assert.Equal(t, []int{3}, drain(t, c))
		})
	}
}

func TestNestedRollback(t *testing.T) {
	for name, mk := range variants([]int{1, 2, 3, 4, 5, 6}) {
		t.Run(name, func(t *testing.T) {
			c := mk()

			c.PushMarker() // A
			assert.Equal(t, []int{1, 2}, mustNext(t, c, 2))

			c.PushMarker() // B
			assert.Equal(t, []int{3, 4}, mustNext(t, c, 2))
			c.PopMarker(false)

			assert.Equal(t, 1, c.Depth())
			c.PopMarker(true)

			assert.Equal(t, 0, c.Depth())
			assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, drain(t, c))
		})
	}
}

func TestNestedInnerRollbackOuterCommit(t *testing.T) {
	for name, mk := range variants([]int{1, 2, 3, 4}) {
		t.Run(name, func(t *testing.T) {
			c := mk()

			c.PushMarker()
			mustNext(t, c, 1)

			c.PushMarker()
			mustNext(t, c, 2)
			c.PopMarker(true)

			assert.Equal(t, 2, c.Peek())
			mustNext(t, c, 1)
			c.PopMarker(false)

			assert.Equal(t, []int{3, 4}, drain(t, c))
		})
	}
}

func TestLookDoesNotAdvance(t *testing.T) {
	for name, mk := range variants([]int{7, 8, 9}) {
		t.Run(name, func(t *testing.T) {
			c := mk()

			for i := 0; i < 5; i++ {
				for j := 0; j < 4; j++ {
					c.Look(j)
				}
				assert.Equal(t, 7, c.Look(0))
			}

			assert.Equal(t, 9, c.Look(2))
			v, err := c.Next()
			require.NoError(t, err)
			assert.Equal(t, 7, v)
		})
	}
}

func TestLookDefault(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		for name, mk := range variants([]*string{ptr("only")}) {
			t.Run(name, func(t *testing.T) {
				c := mk()
				assert.Nil(t, c.Look(1))
				assert.Equal(t, "only", *c.Look(0))
			})
		}
	})

	t.Run("sentinel", func(t *testing.T) {
		for name, mk := range variants([]int{1}) {
			t.Run(name, func(t *testing.T) {
				c := mk()
				c.SetDefault(-1)

				assert.Equal(t, -1, c.Look(1))
				assert.Equal(t, -1, c.Look(100))
				assert.Equal(t, 1, c.Look(0))

				mustNext(t, c, 1)
				assert.Equal(t, -1, c.Look(0))
				assert.Equal(t, -1, c.Look(math.MaxInt))

				_, err := c.Next()
				assert.ErrorIs(t, err, cursor.ErrExhausted)
			})
		}
	})
}

func TestLastValue(t *testing.T) {
	for name, mk := range variants([]int{1, 2, 3}) {
		t.Run(name, func(t *testing.T) {
			c := mk()
			c.SetDefault(99)

			_, ok := c.Last()
			assert.False(t, ok)

			c.Look(1)
			v, ok := c.Last()
			assert.True(t, ok)
			assert.Equal(t, 2, v)

			mustNext(t, c, 1)
			v, _ = c.Last()
			assert.Equal(t, 1, v)

			// Falling off the end does not replace the last value.
			assert.Equal(t, 99, c.Look(10))
			v, _ = c.Last()
			assert.Equal(t, 1, v)
		})
	}
}

func TestNegativeLookPanics(t *testing.T) {
	for name, mk := range variants([]int{1}) {
		t.Run(name, func(t *testing.T) {
			c := mk()
			assert.Panics(t, func() { c.Look(-1) })
		})
	}
}

func TestUnbalancedPopPanics(t *testing.T) {
	for name, mk := range variants([]int{1, 2}) {
		t.Run(name, func(t *testing.T) {
			c := mk()
			c.PushMarker()
			c.PopMarker(false)

			err := recoverError(func() { c.PopMarker(true) })
			require.Error(t, err)
			assert.True(t, errors.Is(err, cursor.ErrUnbalancedMarker))
		})
	}
}

// op is one step of a replayable trace.
type op struct {
	name string
	arg  int
}

func (o op) apply(c cursor.Cursor[int]) string {
	switch o.name {
	case "next":
		v, err := c.Next()
		if err != nil {
			return "exhausted"
		}
		return fmt.Sprint(v)
	case "look":
		return fmt.Sprint(c.Look(o.arg))
	case "push":
		c.PushMarker()
		return fmt.Sprint(c.Depth())
	case "pop":
		c.PopMarker(o.arg != 0)
		return fmt.Sprint(c.Depth())
	case "last":
		v, ok := c.Last()
		return fmt.Sprint(v, ok)
	}
	panic("unknown op " + o.name)
}

func TestListStreamEquivalence(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	trace := []op{
		{"look", 3}, {"next", 0}, {"push", 0}, {"next", 0}, {"next", 0},
		{"push", 0}, {"look", 2}, {"next", 0}, {"pop", 0}, {"last", 0},
		{"next", 0}, {"pop", 1}, {"next", 0}, {"push", 0}, {"look", 10},
		{"next", 0}, {"next", 0}, {"next", 0}, {"pop", 1}, {"push", 0},
		{"next", 0}, {"next", 0}, {"next", 0}, {"next", 0}, {"next", 0},
		{"next", 0}, {"next", 0}, {"next", 0}, {"look", 0}, {"pop", 1},
		{"look", 6}, {"look", 7}, {"last", 0},
	}

	stream := cursor.NewStream(cursor.FromSlice(items))
	stream.SetDefault(-1)
	list := cursor.NewList(items)
	list.SetDefault(-1)

	for i, o := range trace {
		s, l := o.apply(stream), o.apply(list)
		assert.Equalf(t, l, s, "step %d (%s %d)", i, o.name, o.arg)
	}

	assert.Equal(t, drain[int](t, list), drain[int](t, stream))
}

// countingSource records how many times it has been asked for an element.
type countingSource struct {
	items []int
	calls int
}

func (s *countingSource) Next() (int, error) {
	s.calls++
	if len(s.items) == 0 {
		return 0, io.EOF
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, nil
}

func TestStreamPullsOnce(t *testing.T) {
	src := &countingSource{items: []int{1, 2, 3}}
	s := cursor.NewStream[int](src)

	s.Look(1)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 2, s.Buffered())

	s.Look(0)
	s.Look(1)
	assert.Equal(t, 2, src.calls)

	// Past the end: the source is asked exactly once more after its last
	// element, then never again.
	s.Look(5)
	assert.Equal(t, 4, src.calls)
	s.Look(5)
	s.Look(3)
	assert.Equal(t, 4, src.calls)

	// Nothing pulled during the failed lookahead was lost.
	assert.Equal(t, []int{1, 2, 3}, drain[int](t, s))
	assert.Equal(t, 4, src.calls)
}

func TestStreamSourceFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	s := cursor.NewStream[int](cursor.SourceFunc[int](func() (int, error) {
		calls++
		if calls > 2 {
			return 0, boom
		}
		return calls, nil
	}))
	s.SetDefault(-1)

	assert.Equal(t, -1, s.Look(5))
	assert.ErrorIs(t, s.Err(), boom)

	assert.Equal(t, []int{1, 2}, mustNext[int](t, s, 2))

	_, err := s.Next()
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, cursor.ErrExhausted))
}

func TestTry(t *testing.T) {
	for name, mk := range variants([]int{1, 2, 3}) {
		t.Run(name, func(t *testing.T) {
			c := mk()
			errNoMatch := errors.New("no match")

			err := cursor.Try(c, func() error {
				mustNext(t, c, 2)
				return errNoMatch
			})
			assert.ErrorIs(t, err, errNoMatch)
			assert.Equal(t, 0, c.Depth())
			assert.Equal(t, 1, c.Peek())

			err = cursor.Try(c, func() error {
				mustNext(t, c, 1)
				return nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 2, c.Peek())

			assert.Panics(t, func() {
				_ = cursor.Try(c, func() error {
					mustNext(t, c, 2)
					panic("production failed")
				})
			})
			assert.Equal(t, 0, c.Depth())
			assert.Equal(t, []int{2, 3}, drain(t, c))
		})
	}
}

func TestTransactionReleasesOnce(t *testing.T) {
	c := cursor.NewList([]int{1, 2, 3})

	outer := cursor.Begin[int](c)
	mustNext[int](t, c, 1)

	inner := cursor.Begin[int](c)
	mustNext[int](t, c, 1)
	inner.Commit()
	inner.Rollback()
	assert.True(t, inner.Done())
	assert.Equal(t, 1, c.Depth())

	outer.Rollback()
	outer.Commit()
	assert.Equal(t, 0, c.Depth())
	assert.Equal(t, 1, c.Peek())
}

func TestAllStopsEarly(t *testing.T) {
	for name, mk := range variants([]int{1, 2, 3, 4}) {
		t.Run(name, func(t *testing.T) {
			c := mk()
			for v := range c.All() {
				if v == 2 {
					break
				}
			}
			assert.Equal(t, []int{3, 4}, drain(t, c))
		})
	}
}

func TestSources(t *testing.T) {
	t.Run("seq", func(t *testing.T) {
		src, stop := cursor.FromSeq(slices.Values([]string{"x", "y"}))
		defer stop()

		s := cursor.NewStream(src)
		assert.Equal(t, "y", s.Look(1))
		assert.Equal(t, []string{"x", "y"}, drain[string](t, s))
	})

	t.Run("seq abandoned", func(t *testing.T) {
		released := false
		seq := func(yield func(int) bool) {
			defer func() { released = true }()
			for i := 0; ; i++ {
				if !yield(i) {
					return
				}
			}
		}

		src, stop := cursor.FromSeq[int](seq)
		s := cursor.NewStream(src)
		assert.Equal(t, 2, s.Look(2))
		assert.False(t, released)

		stop()
		assert.True(t, released)

		// The stopped iterator reads as the end of the input.
		mustNext(t, s, 3)
		_, err := s.Next()
		assert.ErrorIs(t, err, cursor.ErrExhausted)
		stop()
	})

	t.Run("channel", func(t *testing.T) {
		ch := make(chan int, 3)
		ch <- 1
		ch <- 2
		close(ch)

		s := cursor.NewStream(cursor.FromChannel(ch))
		assert.Equal(t, []int{1, 2}, drain[int](t, s))
		assert.NoError(t, s.Err())
	})

	t.Run("collect", func(t *testing.T) {
		l, err := cursor.Collect(cursor.FromSlice([]int{4, 5}))
		require.NoError(t, err)
		assert.Equal(t, 2, l.Len())
		assert.Equal(t, 5, l.Look(1))
	})
}

func TestObserver(t *testing.T) {
	var kinds []string
	obs := cursor.ObserverFunc(func(e cursor.Event) {
		kinds = append(kinds, fmt.Sprintf("%s/%d/%d", e.Kind, e.Depth, e.Count))
	})

	s := cursor.NewStream(cursor.FromSlice([]int{1, 2}), cursor.WithObserver(obs))
	s.PushMarker()
	s.Next()
	s.Next()
	s.PopMarker(true)
	s.Look(2)

	assert.Equal(t, []string{
		"push/1/0",
		"pull/1/1", "next/1/1",
		"pull/1/1", "next/1/1",
		"rollback/0/2",
	}, kinds)
}

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
