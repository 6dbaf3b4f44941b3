// Package version carries the build metadata stamped into the
// gate-check binary.
package version

import "fmt"

// Populated via -ldflags at release-build time; source builds report
// the "dev" defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the bare version string, "dev" for source builds.
func GetVersion() string {
	if Version == "dev" {
		return "dev"
	}
	return Version
}

// GetFullVersion returns the version with commit and build date, e.g.
// "v1.2.0 (commit: abc123, built: 2026-08-23T10:30:00Z)".
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
