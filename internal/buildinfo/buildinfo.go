// Package buildinfo holds release metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/modforge/modforge/internal/buildinfo.Version=v0.3.0"
package buildinfo

// Empty in local builds; the version command falls back to debug.BuildInfo.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
