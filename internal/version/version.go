// Package version holds build metadata injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for --version output and the TUI footer.
func String() string {
	return fmt.Sprintf("dinedash %s (%s, built %s)", Version, Commit, Date)
}
