/*
 * Copyright (c) 2023, Gideon Williams gideon@gideonw.com
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Printable is anything that can be rendered as a table.
type Printable interface {
	Headers() []string
	Values() [][]string
}

type OutputWriter interface {
	Write(v Printable) error
}

type CSVWriter struct {
	w io.Writer
}

type TextWriter struct {
	w io.Writer
}

type JSONWriter struct {
	w io.Writer
}

type YAMLWriter struct {
	w io.Writer
}

var Formats = []string{"text", "csv", "json", "yaml"}

func NewOutputWriter(w io.Writer, t string) OutputWriter {
	switch t {
	case "csv":
		return CSVWriter{
			w,
		}
	case "json":
		return JSONWriter{
			w,
		}
	case "yaml":
		return YAMLWriter{
			w,
		}
	}
	return TextWriter{
		w,
	}
}

func (w CSVWriter) Write(v Printable) error {
	wtr := csv.NewWriter(w.w)
	if err := wtr.Write(v.Headers()); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	return errors.Wrap(wtr.WriteAll(v.Values()), "writing csv rows")
}

func (w TextWriter) Write(v Printable) error {
	headers := make([]any, len(v.Headers()))
	for i, h := range v.Headers() {
		headers[i] = h
	}

	table := tablewriter.NewWriter(w.w)
	table.Header(headers...)
	if err := table.Bulk(v.Values()); err != nil {
		return errors.Wrap(err, "building table")
	}
	return errors.Wrap(table.Render(), "rendering table")
}

func (w JSONWriter) Write(v Printable) error {
	enc := json.NewEncoder(w.w)
	return errors.Wrap(enc.Encode(records(v)), "encoding json")
}

func (w YAMLWriter) Write(v Printable) error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(records(v)); err != nil {
		return errors.Wrap(err, "encoding yaml")
	}
	return errors.Wrap(enc.Close(), "encoding yaml")
}

// records turns each row into a map keyed by header.
func records(v Printable) []map[string]string {
	headers := v.Headers()
	out := make([]map[string]string, 0, len(v.Values()))

	for _, row := range v.Values() {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		out = append(out, rec)
	}

	return out
}
