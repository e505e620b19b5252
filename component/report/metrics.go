/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package report

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "adg_upstream"

// NewRegistry returns a registry holding the gauges of s.
func NewRegistry(s *Status, now time.Time) (*prometheus.Registry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	domains := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "classification_domains",
			Help:      "Domains read per classification",
		},
		[]string{"classification"},
	)
	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "domains_total",
		Help:      "Distinct domains written to the rule file",
	})
	failures := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "failed_classifications",
		Help:      "Classifications that could not be read",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last generation",
	})

	for c, n := range s.Counts {
		domains.WithLabelValues(c).Set(float64(n))
	}
	total.Set(float64(s.Total))
	failures.Set(float64(len(s.Failures)))
	lastRun.Set(float64(now.Unix()))

	registry := prometheus.NewRegistry()
	if err := registry.Register(domains); err != nil {
		return nil, err
	}
	registry.MustRegister(total, failures, lastRun)
	return registry, nil
}

// WriteMetrics writes s in the node_exporter textfile collector format.
func WriteMetrics(path string, s *Status, now time.Time) error {
	registry, err := NewRegistry(s, now)
	if err != nil {
		return err
	}
	if err = prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
