// Package version reports the build version of the service.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is stamped at build time:
//
//	go build -ldflags "-X github.com/nxtrohith/Micro-Task-sub000/internal/shared/version.Current=v1.2.0"
var Current = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a tagged semver build rather than "dev" or a bare commit.
func IsRelease(v string) bool {
	return semver.IsValid(Normalize(v)) && semver.Prerelease(Normalize(v)) == ""
}

// String returns the normalized current version, or "dev" for untagged builds.
func String() string {
	if !semver.IsValid(Normalize(Current)) {
		return "dev"
	}
	return semver.Canonical(Normalize(Current))
}
