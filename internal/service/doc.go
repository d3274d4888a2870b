// Package service provides the registry that fronts every drive provider.
//
// The registry maintains a catalog of registered providers and handles
// discovery, tool routing, and execution serialization.
//
// Components:
//   - Registry: Central provider catalog
//   - Provider: Interface for service implementations
//   - Intent-based discovery with relevance scoring
//
// Features:
//   - Thread-safe provider registration
//   - Category-based filtering
//   - Tool routing on the "provider.tool" prefix
//   - One mutex around execution; the drive core stays lock-free
//   - Registry statistics
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(driveProvider)
//	services := registry.List(nil)
//	result, err := registry.Execute(ctx, "drive.mkdir", params, appCtx)
package service
