package entities

import "fmt"

// LatestVersion is the sentinel requesting the newest release
const LatestVersion = "latest"

// Version is either the "latest" sentinel or a vMAJOR.MINOR.PATCH triple
type Version struct {
	tag                 string
	Major, Minor, Patch uint64
}

// Latest returns the "latest" version sentinel
func Latest() Version {
	return Version{tag: LatestVersion}
}

// SemVer returns a numeric version triple rendered as tag
func SemVer(tag string, major, minor, patch uint64) Version {
	if tag == "" {
		tag = fmt.Sprintf("v%d.%d.%d", major, minor, patch)
	}
	return Version{tag: tag, Major: major, Minor: minor, Patch: patch}
}

// IsLatest reports whether v is the "latest" sentinel
func (v Version) IsLatest() bool {
	return v.tag == LatestVersion
}

// String renders the release tag: "latest" or "vX.Y.Z"
func (v Version) String() string {
	return v.tag
}
