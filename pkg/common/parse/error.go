/*
 * Copyright (c) 2022-2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type SyntaxError struct {
	Span    Span
	Message string
}

func NewSyntaxError(t Token, m string) SyntaxError {
	return SyntaxError{Span: t.Span, Message: m}
}

func (s SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", s.Span.Start, s.Message)
}

// FormatError renders the line the error starts on with a caret underneath
// the offending text, followed by the message.
func (s *SyntaxError) FormatError(input string) string {
	lines := Lines(input)

	start := s.Span.Start
	if !start.IsValid() || start.Line > len(lines) {
		return fmt.Sprintf("Syntax error found in input:\n%s\n", s.Message)
	}

	line := lines[start.Line-1]
	column := start.Column - 1
	if column < 0 {
		column = 0
	}

	// Underline to the end of the span, or the end of the line if the span
	// continues past it.
	width := utf8.RuneCountInString(line) - column
	if s.Span.End.IsValid() && s.Span.End.Line == start.Line {
		width = s.Span.End.Column - column
	}

	repeat := width - 1
	if repeat < 0 {
		repeat = 0
	}

	errorString := fmt.Sprintf("Syntax error found on line %d:\n", start.Line)
	errorString += line
	errorString += fmt.Sprintf("\n%s^%s ", strings.Repeat(" ", column), strings.Repeat("~", repeat))
	errorString += fmt.Sprintf("%s\n", s.Message)
	return errorString
}
