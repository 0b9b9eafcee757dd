// Package entities defines core domain models and data structures.
package entities

// Artifact represents a linter release artifact fetched for one platform
type Artifact struct {
	Name     string // "zlint"
	Version  Version
	Platform PlatformTarget
	URL      string // where the artifact was downloaded from
	Path     string // local file, executable once the locator returns it
}
