// Package version holds the build information of requesterctl. The values
// are overridden at build time with -ldflags "-X".
package version

var (
	// Version is the semantic version of the build.
	Version = "v0.0.0-dev"
	// GitCommit is the commit the build was made from.
	GitCommit = "unknown"
	// BuildTime is the RFC 3339 time of the build.
	BuildTime = ""
)
