package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	return func() {
		Version = origVersion
		Commit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	Commit = ""
	BuildTime = ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease() {
		t.Error("dev should not be a release")
	}
	if info.GoVersion == "" || info.Platform == "" {
		t.Errorf("expected go version and platform, got %q %q", info.GoVersion, info.Platform)
	}
}

func TestGetLinkTimeValues(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0"
	Commit = "abc1234def"
	BuildTime = "2024-01-15T10:30:00Z"

	info := Get()
	if info.Commit != "abc1234" {
		t.Errorf("expected commit shortened to 'abc1234', got %q", info.Commit)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("expected build year 2024, got %d", info.BuildDate.Year())
	}
}

func TestApplyBuildSettings(t *testing.T) {
	info := &Info{Version: "1.0.0"}
	info.applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2025-03-01T12:00:00Z"},
	})

	if info.Commit != "0123456789" {
		t.Errorf("expected commit from vcs stamp, got %q", info.Commit)
	}
	if !info.Dirty {
		t.Error("expected dirty tree")
	}
	if info.IsRelease() {
		t.Error("dirty build should not be a release")
	}
	if !info.BuildDate.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected build date %v", info.BuildDate)
	}
}

func TestApplyBuildSettingsKeepsLinkTimeValues(t *testing.T) {
	built := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	info := &Info{Commit: "feedbee", BuildDate: built}
	info.applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789"},
		{Key: "vcs.time", Value: "2025-03-01T12:00:00Z"},
	})

	if info.Commit != "feedbee" || !info.BuildDate.Equal(built) {
		t.Errorf("link-time values overwritten: %q %v", info.Commit, info.BuildDate)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", Commit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", Commit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	info := Info{
		Version:   "1.0.0",
		BuildDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		GoVersion: "go1.26.0",
		Platform:  "linux/amd64",
	}
	got := info.String()
	for _, part := range []string{"1.0.0", "built 2024-01-15T10:30:00Z", "go1.26.0", "linux/amd64"} {
		if !strings.Contains(got, part) {
			t.Errorf("String() = %q, missing %q", got, part)
		}
	}
}

func TestIsRelease(t *testing.T) {
	if !(&Info{Version: "1.0.0"}).IsRelease() {
		t.Error("1.0.0 should be a release")
	}
	if (&Info{Version: "1.0.0-dirty"}).IsRelease() {
		t.Error("dirty version should not be a release")
	}
}
