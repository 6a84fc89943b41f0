// Package version holds the build version, set with
// -ldflags "-X taxjoin/internal/version.Version=...".
package version

var Version = "0.1.0"
