/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package metrics

import (
	"github.com/dburkart/lookahead/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
)

type documentCollector struct {
	doc *schema.Document

	entries      *prometheus.Desc
	declarations *prometheus.Desc
	lines        *prometheus.Desc
}

func NewDocumentCollector(name string, doc *schema.Document) prometheus.Collector {
	labels := prometheus.Labels{"document": name}
	return &documentCollector{
		doc: doc,
		entries: prometheus.NewDesc(
			"lookahead_document_entries",
			"Number of top-level entries in the document.",
			nil, labels,
		),
		declarations: prometheus.NewDesc(
			"lookahead_document_declarations",
			"Number of named declarations in the document.",
			nil, labels,
		),
		lines: prometheus.NewDesc(
			"lookahead_document_lines",
			"Number of source lines in the document.",
			nil, labels,
		),
	}
}

// Describe implements Collector.
func (c *documentCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.declarations
	ch <- c.lines
}

// Collect implements Collector.
func (c *documentCollector) Collect(ch chan<- prometheus.Metric) {
	declarations := 0
	for _, e := range c.doc.Entries {
		if e.Name != "" {
			declarations++
		}
	}

	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(len(c.doc.Entries)))
	ch <- prometheus.MustNewConstMetric(c.declarations, prometheus.GaugeValue, float64(declarations))
	ch <- prometheus.MustNewConstMetric(c.lines, prometheus.GaugeValue, float64(len(c.doc.Lines())))
}
