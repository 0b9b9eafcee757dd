package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
)

// Release coordinates for the linter
const (
	ArtifactName   = "zlint"
	ReleasesBase   = "https://github.com/DonIsaac/zlint/releases"
	IssuesBase     = "https://github.com/DonIsaac/zlint/issues/new"
	ProvenanceTag  = "github-actions"
	signatureExt   = ".asc"
	provenanceName = "source"
)

// ReleaseURL builds the download URL of the artifact for version on target
func ReleaseURL(version entities.Version, target entities.PlatformTarget) string {
	downloadPart := "download/" + version.String()
	if version.IsLatest() {
		downloadPart = "latest/download"
	}
	return fmt.Sprintf("%s/%s/%s-%s?%s=%s",
		ReleasesBase, downloadPart, ArtifactName, target, provenanceName, ProvenanceTag)
}

// SignatureURL returns the location of the detached signature published
// next to an artifact
func SignatureURL(artifactURL string) string {
	base, query, found := strings.Cut(artifactURL, "?")
	if !found {
		return base + signatureExt
	}
	return base + signatureExt + "?" + query
}

// IssueURL links to a prefilled bug report on the linter's tracker
func IssueURL(title string) string {
	return IssuesBase + "?assignees=&labels=C-bug&projects=&template=bug_report.md&title=" + url.QueryEscape(title)
}

var truthy = map[string]bool{"yes": true, "y": true, "true": true, "1": true}

// IsYes parses a boolean-ish input. Only yes, y, true and 1 (any case) are true.
func IsYes(opt string) bool {
	return opt != "" && truthy[strings.ToLower(opt)]
}
