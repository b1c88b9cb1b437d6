// Package version holds build identification, injected via ldflags.
package version

var (
	AppVersion = "dev"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)
