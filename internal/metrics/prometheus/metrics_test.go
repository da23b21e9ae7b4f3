// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package prometheus

import (
	"testing"

	"github.com/ChainSafe/dageth/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Metrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := New(registry)
	require.NoError(t, err)

	m.Succeeded(metrics.OperationDecode, "state", "leaf")
	m.Succeeded(metrics.OperationDecode, "state", "leaf")
	m.Succeeded(metrics.OperationEncode, "storage", "branch")
	m.Failed(metrics.OperationDecode, "tx")

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.nodes.WithLabelValues("decode", "state", "leaf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.nodes.WithLabelValues("encode", "storage", "branch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.failures.WithLabelValues("decode", "tx")))

	count, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func Test_New_alreadyRegistered(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	first, err := New(registry)
	require.NoError(t, err)

	second, err := New(registry)
	require.NoError(t, err)

	second.Failed(metrics.OperationPrepare, "receipt")
	assert.Equal(t, 1.0, testutil.ToFloat64(
		first.failures.WithLabelValues("prepare", "receipt")))
}
