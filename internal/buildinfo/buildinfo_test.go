package buildinfo

import (
	"runtime/debug"
	"testing"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
}

func TestVersionUnavailable(t *testing.T) {
	withBuildInfo(t, nil, false)
	if got := Version(); got != "dev" {
		t.Fatalf("expected dev, got %q", got)
	}
}

func TestVersionFromModule(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "v1.2.3"
	withBuildInfo(t, info, true)
	if got := Version(); got != "v1.2.3" {
		t.Fatalf("expected v1.2.3, got %q", got)
	}
}

func TestVersionFallsBackToRevision(t *testing.T) {
	info := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	info.Main.Version = "(devel)"
	withBuildInfo(t, info, true)
	if got := Version(); got != "0123456789ab-dirty" {
		t.Fatalf("unexpected version %q", got)
	}
}

func TestVersionWithTags(t *testing.T) {
	info := &debug.BuildInfo{
		Settings: []debug.BuildSetting{{Key: "-tags", Value: "netgo"}},
	}
	info.Main.Version = "v0.1.0"
	withBuildInfo(t, info, true)
	if got := VersionWithTags(); got != "v0.1.0 (tags: netgo)" {
		t.Fatalf("unexpected version %q", got)
	}
}
