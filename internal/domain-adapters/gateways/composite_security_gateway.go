package gateways

import (
	"context"

	"github.com/DonIsaac/zlint-action/internal/domain/interfaces/gateways"
)

// compositeArtifactVerifier implements ArtifactVerifier by composing the
// checksum and signature verifiers
type compositeArtifactVerifier struct {
	checksumVerifier *checksumVerifier
	gpgVerifier      *gpgVerifier
}

// NewArtifactVerifier creates an artifact verifier with all dependencies
func NewArtifactVerifier() gateways.ArtifactVerifier {
	return &compositeArtifactVerifier{
		checksumVerifier: NewChecksumVerifier(),
		gpgVerifier:      NewGPGVerifier(),
	}
}

// VerifyChecksum verifies a file's SHA256 checksum
func (c *compositeArtifactVerifier) VerifyChecksum(ctx context.Context, filePath, expectedSum string) error {
	return c.checksumVerifier.VerifyChecksum(ctx, filePath, expectedSum)
}

// VerifySignature verifies a detached OpenPGP signature
func (c *compositeArtifactVerifier) VerifySignature(ctx context.Context, filePath, sigURL, armoredKey string) error {
	return c.gpgVerifier.VerifySignature(ctx, filePath, sigURL, armoredKey)
}
