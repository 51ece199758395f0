// Package version holds build metadata injected at link time.
package version

// Set with -ldflags "-X github.com/classref/classref/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
