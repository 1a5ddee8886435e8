// Copyright 2026 The ntfs-parse Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package perf records timing and counters for the tool's performance mode
// (-p). It is never part of the correctness contract: callers must behave
// identically whether or not a Recorder is supplied.
package perf

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records per-stage decode latency and event counters. The zero
// value is not usable; construct with NewRecorder.
type Recorder struct {
	registry   *prometheus.Registry
	durations  *prometheus.HistogramVec
	counters   *prometheus.CounterVec
}

// NewRecorder builds a Recorder with its own registry so it never collides
// with metrics registered elsewhere in a host process.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ntfsparse",
		Name:      "stage_duration_seconds",
		Help:      "Wall-clock duration of a named decode stage.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
	counters := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ntfsparse",
		Name:      "events_total",
		Help:      "Count of named pipeline events (e.g. dumped_pages, skipped_records).",
	}, []string{"name"})
	reg.MustRegister(durations, counters)
	return &Recorder{registry: reg, durations: durations, counters: counters}
}

// ObserveDuration records d against stage's histogram.
func (r *Recorder) ObserveDuration(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.durations.WithLabelValues(stage).Observe(d.Seconds())
}

// Stopwatch returns a function that, when called, records the elapsed time
// against stage. Typical use: defer r.Stopwatch(stage)().
func (r *Recorder) Stopwatch(stage string) func() {
	start := time.Now()
	return func() {
		r.ObserveDuration(stage, time.Since(start))
	}
}

// IncCounter increments the named counter by one.
func (r *Recorder) IncCounter(name string) {
	if r == nil {
		return
	}
	r.counters.WithLabelValues(name).Inc()
}

// Registry exposes the underlying registry so the CLI glue can serve it on
// an HTTP /metrics endpoint; this is itself outside the core package.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
