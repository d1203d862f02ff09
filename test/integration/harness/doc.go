// Package harness provides utilities for integration testing the taxsync CLI.
// It handles binary compilation, environment isolation, command execution and
// on-disk source and target repositories.
//
// Environment variables managed:
//   - TAXSYNC_HOME: Isolated per test (temp directory)
//   - TAXSYNC_DEBUG: Disabled to reduce noise
//   - TAXSYNC_SOURCE_REPO / TAXSYNC_TARGET_REPO: Cleared unless a test sets them
package harness
