// Package build exposes build-time metadata injected via ldflags.
package build

import "fmt"

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/joestump/commas/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// String renders the build metadata on one line, e.g. "dev (unknown@unknown)".
func String() string {
	return fmt.Sprintf("%s (%s@%s)", Version, Commit, Branch)
}
