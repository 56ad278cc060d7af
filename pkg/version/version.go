// Package version holds build metadata, set with -ldflags at release time.
package version

import "fmt"

var (
	// Version is the release tag of the shim
	Version = "dev"
	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)

// String describes the build in one line
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
