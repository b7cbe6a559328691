// Package buildinfo reports the version baked into the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// readBuildInfo is swapped out by tests.
var readBuildInfo = debug.ReadBuildInfo

// Version returns the module version. Development builds fall back to
// the VCS revision when the Go toolchain stamped one, then to "dev".
func Version() string {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "dev"
	}
	version := info.Main.Version
	if version != "" && version != "(devel)" {
		return version
	}
	if rev := setting(info, "vcs.revision"); rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if setting(info, "vcs.modified") == "true" {
			rev += "-dirty"
		}
		return rev
	}
	return "dev"
}

// Tags returns the build tags recorded at compile time.
func Tags() string {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return ""
	}
	return setting(info, "-tags")
}

// VersionWithTags returns the version string and tags if present.
func VersionWithTags() string {
	version := Version()
	tags := Tags()
	if tags == "" {
		return version
	}
	return fmt.Sprintf("%s (tags: %s)", version, tags)
}

func setting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
