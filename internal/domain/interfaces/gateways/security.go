package gateways

import "context"

// ArtifactVerifier checks the integrity of a downloaded artifact
type ArtifactVerifier interface {
	// VerifyChecksum compares the file's SHA256 digest against expectedSum (hex)
	VerifyChecksum(ctx context.Context, filePath, expectedSum string) error

	// VerifySignature checks a detached OpenPGP signature fetched from sigURL
	// against the armored public key
	VerifySignature(ctx context.Context, filePath, sigURL, armoredKey string) error
}
