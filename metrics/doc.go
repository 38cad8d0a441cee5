// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics declares the Prometheus collectors of the service. They are
// registered on the default registry and exposed at GET /metrics.
package metrics
