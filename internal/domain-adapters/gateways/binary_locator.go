package gateways

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces/gateways"
	"github.com/DonIsaac/zlint-action/internal/domain/services"
)

// ownerExecute is the S_IXUSR permission bit
const ownerExecute os.FileMode = 0o100

// Sentinels for the two ConfigError kinds
var (
	ErrNotExecutable  = errors.New("not executable")
	ErrBinaryNotFound = errors.New("could not find binary")
)

// ConfigError reports a user supplied binary that cannot be used
type ConfigError struct {
	Kind error // ErrNotExecutable or ErrBinaryNotFound
	Path string
	Err  error // underlying stat failure, only for ErrBinaryNotFound
}

func (e *ConfigError) Error() string {
	if e.Kind == ErrNotExecutable {
		return fmt.Sprintf("ZLint binary at '%s' is not executable.", e.Path)
	}
	return fmt.Sprintf("Could not find ZLint binary at '%s'.", e.Path)
}

// Is matches the ConfigError's kind sentinel
func (e *ConfigError) Is(target error) bool {
	return target == e.Kind
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// BinaryLocator produces the path of a verified, executable linter binary
type BinaryLocator struct {
	downloader gateways.Downloader
	verifier   gateways.ArtifactVerifier
	logger     interfaces.Logger
	hostOS     string
	hostArch   string
}

// BinaryLocatorConfig holds host overrides for the locator
type BinaryLocatorConfig struct {
	HostOS   string // defaults to runtime.GOOS
	HostArch string // defaults to runtime.GOARCH
}

// NewBinaryLocator creates a new binary locator
func NewBinaryLocator(
	downloader gateways.Downloader,
	verifier gateways.ArtifactVerifier,
	logger interfaces.Logger,
	config BinaryLocatorConfig,
) *BinaryLocator {
	if config.HostOS == "" {
		config.HostOS = runtime.GOOS
	}
	if config.HostArch == "" {
		config.HostArch = runtime.GOARCH
	}
	return &BinaryLocator{
		downloader: downloader,
		verifier:   verifier,
		logger:     logger,
		hostOS:     config.HostOS,
		hostArch:   config.HostArch,
	}
}

// Locate returns the absolute path of an executable linter binary, either
// the one named by intent or a freshly downloaded release
func (l *BinaryLocator) Locate(ctx context.Context, intent entities.ConfigIntent) (string, error) {
	if intent.UsesExistingBinary() {
		l.logger.Info(fmt.Sprintf("Using existing binary at '%s'", intent.BinaryPath))
		path, err := l.VerifyExistingBinary(intent.BinaryPath)
		if err != nil {
			return "", err
		}
		l.logger.Info("Binary found")
		return path, nil
	}

	raw := intent.Version
	if raw == "" {
		raw = entities.LatestVersion
	}
	l.logger.Info("Verifying version: " + raw)
	version, err := services.ValidateVersion(raw)
	if err != nil {
		return "", err
	}

	artifact, err := l.DownloadBinary(ctx, version, intent)
	if err != nil {
		return "", err
	}
	return artifact.Path, nil
}

// VerifyExistingBinary resolves binaryPath against the working directory and
// checks that it is a regular file with the owner execute bit set
func (l *BinaryLocator) VerifyExistingBinary(binaryPath string) (string, error) {
	abs, err := filepath.Abs(binaryPath)
	if err != nil {
		return "", &ConfigError{Kind: ErrBinaryNotFound, Path: binaryPath, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &ConfigError{Kind: ErrBinaryNotFound, Path: abs, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &ConfigError{Kind: ErrBinaryNotFound, Path: abs, Err: fmt.Errorf("%s is not a regular file", abs)}
	}
	if info.Mode().Perm()&ownerExecute == 0 {
		return "", &ConfigError{Kind: ErrNotExecutable, Path: abs}
	}

	return abs, nil
}

// DownloadBinary fetches the release artifact for version on the host
// platform, verifies it when requested, and marks it executable
func (l *BinaryLocator) DownloadBinary(ctx context.Context, version entities.Version, intent entities.ConfigIntent) (*entities.Artifact, error) {
	target, err := services.ResolvePlatform(l.hostOS, l.hostArch)
	if err != nil {
		return nil, err
	}

	url := services.ReleaseURL(version, target)
	l.logger.Info("Downloading ZLint binary from " + url)

	path, err := l.downloader.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to download ZLint %s for %s: %w", version, target, err)
	}
	if path, err = filepath.Abs(path); err != nil {
		return nil, fmt.Errorf("failed to resolve downloaded binary: %w", err)
	}

	if intent.Checksum != "" {
		if err := l.verifier.VerifyChecksum(ctx, path, intent.Checksum); err != nil {
			return nil, err
		}
		l.logger.Info("Checksum verified", interfaces.F("sha256", intent.Checksum))
	}
	if intent.PublicKey != "" {
		sigURL := intent.SignatureURL
		if sigURL == "" {
			sigURL = services.SignatureURL(url)
		}
		if err := l.verifier.VerifySignature(ctx, path, sigURL, intent.PublicKey); err != nil {
			return nil, err
		}
		l.logger.Info("Signature verified")
	}

	//nolint:gosec // G302: the downloaded linter must be executable
	if err := os.Chmod(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to make %s executable: %w", path, err)
	}

	return &entities.Artifact{
		Name:     services.ArtifactName,
		Version:  version,
		Platform: target,
		URL:      url,
		Path:     path,
	}, nil
}
