package common

import "fmt"

// Version variables injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// ServerName is the name advertised to MCP clients.
const ServerName = "canvas-lms-server"

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns a formatted version string with all build info
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// GetBuild returns the build timestamp
func GetBuild() string {
	return Build
}

// GetGitCommit returns the git commit hash
func GetGitCommit() string {
	return GitCommit
}
