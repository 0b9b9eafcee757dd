package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/DonIsaac/zlint-action/internal/external-adapters/gpg"
)

// gpgVerifier wraps the external GPG adapter to check artifact signatures
type gpgVerifier struct{}

// NewGPGVerifier creates a new GPG verifier gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGVerifier() *gpgVerifier {
	return &gpgVerifier{}
}

// VerifySignature checks the detached signature at sigURL against filePath.
// key is either an armored public key block or a path to a key file.
func (g *gpgVerifier) VerifySignature(ctx context.Context, filePath, sigURL, key string) error {
	// A fresh keyring per call keeps keys from one run out of the next
	verifier := gpg.NewVerifier()

	var err error
	if strings.Contains(key, "-----BEGIN PGP PUBLIC KEY BLOCK-----") {
		err = verifier.ImportArmoredKey(key)
	} else {
		err = verifier.ImportKeyFromFile(key)
	}
	if err != nil {
		return fmt.Errorf("failed to import public key: %w", err)
	}

	if err := verifier.VerifySignature(ctx, filePath, sigURL); err != nil {
		return fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return nil
}
