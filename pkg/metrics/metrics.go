/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package metrics

import (
	"github.com/dburkart/lookahead/pkg/cursor"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)

	// Observer returns a cursor observer that records events under the
	// given cursor mode label.
	Observer(mode string) cursor.Observer

	// WriteTextfile writes every registered metric to path in the text
	// exposition format.
	WriteTextfile(path string) error
}

type metricsStore struct {
	registry     *prometheus.Registry
	Events       *prometheus.CounterVec
	MarkerDepth  *prometheus.HistogramVec
	Replayed     *prometheus.HistogramVec
	MaxBacktrack *prometheus.GaugeVec
}

var (
	ModeLabel  = "mode"
	EventLabel = "event"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
	)

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lookahead_cursor_events_total",
			Help: "Cursor operations by kind",
		}, []string{ModeLabel, EventLabel}),
		MarkerDepth: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lookahead_marker_depth",
			Help:    "Transaction nesting depth observed when a marker is pushed",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}, []string{ModeLabel}),
		Replayed: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lookahead_rollback_elements",
			Help:    "Elements made available again by a single rollback",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{ModeLabel}),
		MaxBacktrack: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lookahead_max_rollback_elements",
			Help: "Largest number of elements replayed by one rollback",
		}, []string{ModeLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Observer(mode string) cursor.Observer {
	maxReplayed := 0

	return cursor.ObserverFunc(func(e cursor.Event) {
		ms.Events.With(prometheus.Labels{ModeLabel: mode, EventLabel: e.Kind.ToString()}).Inc()

		switch e.Kind {
		case cursor.EventPush:
			ms.MarkerDepth.With(prometheus.Labels{ModeLabel: mode}).Observe(float64(e.Depth))
		case cursor.EventRollback:
			ms.Replayed.With(prometheus.Labels{ModeLabel: mode}).Observe(float64(e.Count))
			if e.Count > maxReplayed {
				maxReplayed = e.Count
				ms.MaxBacktrack.With(prometheus.Labels{ModeLabel: mode}).Set(float64(e.Count))
			}
		}
	})
}

func (ms *metricsStore) WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, ms.registry), "writing metrics to %s", path)
}
