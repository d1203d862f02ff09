package version

import "fmt"

// Tagline is the application's tagline used in help text and documentation
const Tagline = "Publish taxonomy contribution branches from a local repository to a target repository"

// Build information injected at build time via ldflags
// Example: -ldflags="-X taxsync/version.Version=v1.0.0 -X taxsync/version.Commit=abc123 ..."
var (
	Commit    = "unknown" // Git commit hash
	Date      = "unknown" // Build date (RFC3339)
	GoVersion = "unknown" // Go version used
	Version   = "dev"     // Semantic version or "dev"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("taxsync %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}
