// SPDX-License-Identifier: MIT
//
// Package build carries build metadata injected at compile time via
// linker flags, for example:
//
//	go build -ldflags "-X spekgram/pkg/build.buildVersion=0.2.0"
package build

// ldFlags holds the build-time information.
type ldFlags struct {
	Name    string
	Time    string
	Commit  string
	Version string
}

// Package-level variables populated by -ldflags during compilation.
// Development builds without ldflags fall back to the defaults below.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = &ldFlags{
		Name:    "spekgram",
		Time:    "unknown",
		Commit:  "unknown",
		Version: "dev",
	}
)

// Initialize copies any build information provided via ldflags into
// the buildFlags struct. Must be called early in program startup.
func Initialize() {
	if buildName != "" {
		buildFlags.Name = buildName
	}
	if buildTime != "" {
		buildFlags.Time = buildTime
	}
	if buildCommit != "" {
		buildFlags.Commit = buildCommit
	}
	if buildVersion != "" {
		buildFlags.Version = buildVersion
	}
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *ldFlags {
	return buildFlags
}
