// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package prometheus

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/dageth/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dageth_codec"

var _ metrics.Codec = (*Metrics)(nil)

// Metrics counts codec operations per operation, trie kind and outcome.
type Metrics struct {
	nodes    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// New creates the codec counters and registers them on the registerer
// given. Counters already registered are reused.
func New(registerer prometheus.Registerer) (m *Metrics, err error) {
	m = &Metrics{
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_total",
			Help:      "trie nodes processed successfully by operation, trie kind and node type",
		}, []string{"operation", "kind", "type"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "failed codec operations by operation and trie kind",
		}, []string{"operation", "kind"}),
	}

	collectorsToRegister := map[string]**prometheus.CounterVec{
		"nodes counter":    &m.nodes,
		"failures counter": &m.failures,
	}

	for collectorName, collector := range collectorsToRegister {
		err = registerer.Register(*collector)
		alreadyRegistered := prometheus.AlreadyRegisteredError{}
		switch {
		case err == nil:
		case errors.As(err, &alreadyRegistered):
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, fmt.Errorf("cannot reuse %s: registered collector is %T",
					collectorName, alreadyRegistered.ExistingCollector)
			}
			*collector = existing
		default:
			return nil, fmt.Errorf("cannot register %s: %w", collectorName, err)
		}
	}

	return m, nil
}

// Succeeded increments the nodes counter.
func (m *Metrics) Succeeded(operation metrics.Operation, kind, nodeType string) {
	m.nodes.WithLabelValues(string(operation), kind, nodeType).Inc()
}

// Failed increments the failures counter.
func (m *Metrics) Failed(operation metrics.Operation, kind string) {
	m.failures.WithLabelValues(string(operation), kind).Inc()
}
