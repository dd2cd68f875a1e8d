/*
 * Copyright (c) 2022-2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import "fmt"

type TokenType interface {
	ToString() string
}

// Location is a half-open range of byte offsets into the input.
type Location struct {
	Start int
	End   int
}

// Position is a 1-based line and column. Columns count runes. The zero
// Position means "unknown".
type Position struct {
	Line   int
	Column int
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the extent of a construct in the source. End, when known, is the
// position of the construct's last character.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	if !s.End.IsValid() {
		return s.Start.String()
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Join returns the span running from the start of s to the end of o.
func (s Span) Join(o Span) Span {
	end := o.End
	if !end.IsValid() {
		end = o.Start
	}
	return Span{Start: s.Start, End: end}
}

type Token struct {
	Type     TokenType
	Lexeme   string
	Location Location
	Span     Span
}
