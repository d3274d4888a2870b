// Package config provides 12-factor configuration management for the drive server.
//
// Configuration is loaded from environment variables with sensible defaults.
// An optional YAML or TOML file can be overlaid on top with LoadFile; keys
// present in the file override the environment.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - CORS: Allowed cross-origin request origins
//   - Drive: Storage units, catalog degree, journal settings
//   - Backup: Snapshot directory, compression, checksums, retention
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ORIGINS
//   - DRIVE_UNITS, DRIVE_INDEX_DEGREE, DRIVE_LOG_OPS, DRIVE_HISTORY_LIMIT, DRIVE_SEED
//   - BACKUP_DIR, BACKUP_COMPRESS, BACKUP_CHECKSUM, BACKUP_KEEP, BACKUP_RESTORE
package config
