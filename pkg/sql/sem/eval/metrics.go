// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts the outcomes of evaluations, by error code.
type Metrics struct {
	Errors   *prometheus.CounterVec
	Warnings *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg, which may
// be nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sqlscalar",
			Name:      "eval_errors_total",
			Help:      "Total count of evaluations aborted by an error.",
		}, []string{"code"}),
		Warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sqlscalar",
			Name:      "eval_warnings_total",
			Help:      "Total count of warnings raised by evaluations.",
		}, []string{"code"}),
	}
	if reg != nil {
		reg.MustRegister(m.Errors, m.Warnings)
	}
	return m
}
