// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package mcleveldb

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lvyitian/minet-leveldb/internal/base"
)

// Metrics instruments Get outcomes and table-reader cache behavior. It is
// purely observational: no code path consults it to decide anything, so a
// nil *Metrics (the default) simply means no instrumentation is installed.
type Metrics struct {
	getTotal      *prometheus.CounterVec
	readerCacheMiss prometheus.Histogram
}

// NewMetrics registers this engine's counters with reg and returns a
// *Metrics ready to pass as Options.Metrics. Callers own the lifetime of
// reg; NewMetrics does not create its own registry so multiple Databases in
// one process can share one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		getTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcleveldb",
			Name:      "get_total",
			Help:      "Count of Get calls by outcome.",
		}, []string{"outcome"}),
		readerCacheMiss: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mcleveldb",
			Name:      "reader_cache_load_seconds",
			Help:      "Latency of opening a table reader on a cache miss.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.getTotal, m.readerCacheMiss)
	return m
}

func (m *Metrics) observeResult(kind base.ResultKind, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.getTotal.WithLabelValues("corruption").Inc()
		return
	}
	switch kind {
	case base.Found:
		m.getTotal.WithLabelValues("found").Inc()
	case base.Deleted:
		m.getTotal.WithLabelValues("deleted").Inc()
	default:
		m.getTotal.WithLabelValues("not_found").Inc()
	}
}

func (m *Metrics) observeCacheLoad(seconds float64) {
	if m == nil {
		return
	}
	m.readerCacheMiss.Observe(seconds)
}
