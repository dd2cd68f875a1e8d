/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import (
	"fmt"
	"strings"

	"github.com/dburkart/lookahead/pkg/common/parse"
	"github.com/pkg/errors"
)

// Entry is one top-level item of a document: either a named declaration or
// a bare schema (Name is empty).
type Entry struct {
	Name     string
	NameSpan parse.Span
	Object   Object
	Span     parse.Span
}

type Document struct {
	Input   string
	Entries []Entry

	lines []string
}

func (d *Document) Lines() []string {
	if d.lines == nil {
		d.lines = parse.Lines(d.Input)
	}
	return d.lines
}

// Source returns the text of the input that e was parsed from.
func (d *Document) Source(e Entry) string {
	return parse.Extract(d.Lines(), e.Span)
}

func (d *Document) Lookup(name string) (Object, bool) {
	for _, e := range d.Entries {
		if e.Name == name {
			return e.Object, true
		}
	}
	return nil, false
}

// ErrUndeclared is returned when a name has no declaration in a document.
var ErrUndeclared = errors.New("schema not declared")

// Validate reports whether val is a well-formed encoding of the schema
// declared as name.
func (d *Document) Validate(name string, val []byte) (bool, error) {
	obj, ok := d.Lookup(name)
	if !ok {
		return false, errors.Wrapf(ErrUndeclared, "'%s'", name)
	}
	return obj.Validate(val), nil
}

// Dump renders each entry with its span, canonical schema and the source it
// came from.
func (d *Document) Dump() string {
	var b strings.Builder

	for _, e := range d.Entries {
		name := e.Name
		if name == "" {
			name = "-"
		}

		fmt.Fprintf(&b, "%s %s %s\n", name, e.Span, e.Object.ToSchema())
		for _, line := range strings.Split(d.Source(e), "\n") {
			fmt.Fprintf(&b, "  | %s\n", line)
		}
	}

	return b.String()
}
