// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package ethtrie

import "github.com/ChainSafe/dageth/internal/metrics"

// Logger is the logger used by the codec.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Metrics records the outcome of the codec operations.
type Metrics interface {
	Succeeded(operation metrics.Operation, kind, nodeType string)
	Failed(operation metrics.Operation, kind string)
}
