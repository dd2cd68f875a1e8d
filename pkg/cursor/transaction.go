/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package cursor

// Transaction guards one PushMarker/PopMarker pair. Whichever of Commit or
// Rollback is called first pops the marker; every later call is a no-op, so
//
//	tx := cursor.Begin(c)
//	defer tx.Rollback()
//	...
//	tx.Commit()
//
// rolls back on every exit path except the one that commits.
type Transaction[T any] struct {
	c    Cursor[T]
	done bool
}

// Begin opens a transaction on c.
func Begin[T any](c Cursor[T]) *Transaction[T] {
	c.PushMarker()
	return &Transaction[T]{c: c}
}

// Commit keeps everything consumed since Begin.
func (t *Transaction[T]) Commit() {
	t.end(false)
}

// Rollback makes everything consumed since Begin available again.
func (t *Transaction[T]) Rollback() {
	t.end(true)
}

// Done reports whether the transaction has been committed or rolled back.
func (t *Transaction[T]) Done() bool {
	return t.done
}

func (t *Transaction[T]) end(reset bool) {
	if t.done {
		return
	}
	t.done = true
	t.c.PopMarker(reset)
}

// Try runs fn inside a transaction on c. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics; a panic is
// propagated once the cursor has been restored.
func Try[T any](c Cursor[T], fn func() error) error {
	tx := Begin(c)
	defer tx.Rollback()

	if err := fn(); err != nil {
		return err
	}

	tx.Commit()
	return nil
}
