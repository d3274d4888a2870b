// Package providers implements the tool providers of the drive service.
//
// Providers expose drive capabilities through a standardized tool-based
// interface. Each provider owns one slice of the domain and registers its
// tools under a common prefix.
//
// Available Providers:
//   - Drive: Navigation, directories, files, history (drive.*)
//   - Catalog: Name, size and pattern queries over the index (catalog.*)
//   - Backup: Snapshot save, restore, listing and retention (backup.*)
//
// Provider Interface:
//   - Definition(): Returns service metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
//
// Example Usage:
//
//	drv := drive.NewProvider(eng)
//	result, err := drv.Execute(ctx, "drive.mkdir", params, reqCtx)
package providers
