/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the drive
server, tracking HTTP requests, tool executions, catalog size, sessions,
and snapshot activity.

# Features

- HTTP request metrics (latency, throughput, size)
- Tool execution metrics (duration, failures)
- Catalog and session gauges
- Snapshot save/restore counters
- System metrics (uptime)

Every collector owns its registry, so constructing a second collector in
tests never collides with the first.

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.SetSessionsActive(3)
	metrics.IncSnapshotsSaved()

	// Time operations
	timer := monitoring.NewTimer(metrics, "drive", "mkdir")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the collector's own handler:

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
