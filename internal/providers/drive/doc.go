// Package drive exposes the in-memory drive as service tools.
//
// This package is organized into specialized modules:
//   - navigate: Session movement (cd, pwd, use, units)
//   - dirs: Directory operations (mkdir, rmdir, list, tree, find)
//   - files: File operations (touch, read, write, rm, rename, stat)
//   - logs: Operation and error journals
//
// All tools:
//   - Resolve paths against the caller's session
//   - Report failed operations as failure results, not Go errors
//   - Return a human-readable "message" plus structured fields
//
// Session Resolution:
//   - With a session ID in the context: that session's position
//   - Without one: the shared default session
//
// Example Usage:
//
//	provider := drive.NewProvider(eng)
//	result, err := provider.Execute(ctx, "drive.mkdir", params, appCtx)
package drive
