// Package version exposes build metadata, overridden at link time via
// -ldflags for release builds of the decimate tools.
package version

var (
	// Version is the current tool version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
