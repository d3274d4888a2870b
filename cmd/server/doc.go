// Package main is the entry point for the drive server.
//
// The server keeps a hierarchical drive simulation entirely in memory:
// storage units, directory trees, per-directory file indexes, and a
// global B-tree catalog for searches. Clients drive it over a REST API
// whose tools are grouped into services (drive, catalog, backup).
//
// The server provides:
//   - REST API for tool execution and discovery
//   - Session cursors for concurrent clients
//   - Snapshot persistence with restore-on-boot
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional YAML/TOML file overlay (-config)
//   - CLI flags override both
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
//	# With a config file
//	./server -config drive.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown with a parting snapshot
package main
