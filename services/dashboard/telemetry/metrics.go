// Copyright (C) 2025 CFE Solutions (engineering@cfe-solutions.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package telemetry holds the Prometheus instrumentation for the dashboard
// service. The counters make degraded mode visible: every fallback to
// synthetic data and every store error is counted, so a dashboard quietly
// running on placeholder data shows up on /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyntheticFallbacks counts responses served from the synthetic
	// generators instead of the backing stores, per service.
	SyntheticFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clio",
		Subsystem: "dashboard",
		Name:      "synthetic_fallbacks_total",
		Help:      "Responses served from synthetic data instead of a backing store.",
	}, []string{"service"})

	// StoreErrors counts failed store calls, per store kind.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clio",
		Subsystem: "dashboard",
		Name:      "store_errors_total",
		Help:      "Failed queries against the relational or graph store.",
	}, []string{"store"})

	// RequestsServed counts view payloads served, per view.
	RequestsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clio",
		Subsystem: "dashboard",
		Name:      "views_served_total",
		Help:      "Dashboard view payloads served.",
	}, []string{"view"})
)
