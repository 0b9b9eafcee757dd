// Package services implements domain business logic and use cases.
package services

import (
	"fmt"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
)

// Host identifiers are Go's GOOS/GOARCH values; the Node.js spellings used
// by the Actions runner ("win32", "x64") are accepted as well.
var (
	osNames = map[string]string{
		"windows": entities.OSWindows,
		"win32":   entities.OSWindows,
		"darwin":  entities.OSMacOS,
		"linux":   entities.OSLinux,
	}
	archNames = map[string]string{
		"arm64": entities.ArchAarch64,
		"amd64": entities.ArchX86_64,
		"x64":   entities.ArchX86_64,
	}
)

// UnsupportedKind says which half of the host identifier was rejected
type UnsupportedKind string

const (
	UnsupportedOS   UnsupportedKind = "OS"
	UnsupportedArch UnsupportedKind = "CPU arch"
)

// UnsupportedPlatformError is returned for hosts no release artifact exists
// for. It is never recovered from.
type UnsupportedPlatformError struct {
	Kind     UnsupportedKind
	Platform string
	Arch     string
	IssueURL string
}

func (e *UnsupportedPlatformError) Error() string {
	value := e.Platform
	if e.Kind == UnsupportedArch {
		value = e.Arch
	}
	return fmt.Sprintf("ZLint does not currently support %s. Please open an issue on github: %s", value, e.IssueURL)
}

// ResolvePlatform maps a host platform/arch pair onto the release naming scheme
func ResolvePlatform(hostPlatform, hostArch string) (entities.PlatformTarget, error) {
	os, ok := osNames[hostPlatform]
	if !ok {
		return entities.PlatformTarget{}, unsupported(UnsupportedOS, hostPlatform, hostArch)
	}
	arch, ok := archNames[hostArch]
	if !ok {
		return entities.PlatformTarget{}, unsupported(UnsupportedArch, hostPlatform, hostArch)
	}
	return entities.PlatformTarget{OS: os, Arch: arch}, nil
}

func unsupported(kind UnsupportedKind, platform, arch string) *UnsupportedPlatformError {
	title := fmt.Sprintf("github actions: %s not supported (%s-%s)", kind, platform, arch)
	return &UnsupportedPlatformError{
		Kind:     kind,
		Platform: platform,
		Arch:     arch,
		IssueURL: IssueURL(title),
	}
}
