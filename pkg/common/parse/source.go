/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrPositionOutOfRange is wrapped by the panic Extract raises when a span
// names a line that isn't in the supplied lines.
var ErrPositionOutOfRange = errors.New("position out of range")

// Lines splits src the same way a scanner counts lines: on '\n', with a
// trailing '\r' removed from each line.
func Lines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// CheckSpan reports whether every line span refers to exists in lines.
func CheckSpan(lines []string, span Span) error {
	if !span.Start.IsValid() {
		return nil
	}

	last := span.Start.Line
	if span.End.IsValid() {
		if span.End.Line < span.Start.Line {
			return errors.Wrapf(ErrPositionOutOfRange, "span %s ends before it starts", span)
		}
		last = span.End.Line
	}

	if last > len(lines) {
		return errors.Wrapf(ErrPositionOutOfRange, "line %d of %d", last, len(lines))
	}

	return nil
}

// Extract returns the source text covered by span.
//
// With no start position the result is empty. With a start but no end the
// whole start line is returned. Otherwise the text runs from the start column
// up to and including the end column, with lines joined by '\n'.
//
// Extract panics if span refers to a line outside lines.
func Extract(lines []string, span Span) string {
	if err := CheckSpan(lines, span); err != nil {
		panic(err)
	}

	if !span.Start.IsValid() {
		return ""
	}

	startLine := span.Start.Line - 1
	if !span.End.IsValid() {
		return lines[startLine]
	}

	endLine := span.End.Line - 1
	startColumn := span.Start.Column - 1
	endColumn := span.End.Column

	if startLine == endLine {
		return runeSlice(lines[startLine], startColumn, endColumn)
	}

	var b strings.Builder

	b.WriteString(runeSuffix(lines[startLine], startColumn))
	for _, l := range lines[startLine+1 : endLine] {
		b.WriteByte('\n')
		b.WriteString(l)
	}
	b.WriteByte('\n')
	b.WriteString(runeSlice(lines[endLine], 0, endColumn))

	return b.String()
}

// runeSlice returns runes [from, to) of s, clamping both bounds to the line.
func runeSlice(s string, from, to int) string {
	r := []rune(s)

	to = max(0, min(to, len(r)))
	from = max(0, from)
	if from >= to {
		return ""
	}

	return string(r[from:to])
}

// runeSuffix returns the runes of s from index from to the end of the line.
func runeSuffix(s string, from int) string {
	return runeSlice(s, from, utf8.RuneCountInString(s))
}
