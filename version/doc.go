// Package version reports the build of the procout binary.
//
// Version, Commit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/procout/version.Version=1.2.0" ./cmd/procout
//
// Anything not set is filled from the VCS stamp the Go toolchain embeds.
package version
