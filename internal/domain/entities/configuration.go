package entities

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Action input names
const (
	InputBinary    = "binary"
	InputVersion   = "version"
	InputDiffOnly  = "diff-only"
	InputChecksum  = "checksum"
	InputPublicKey = "public-key"
	InputSignature = "signature-url"
)

var configValidate = validator.New()

// ConfigIntent is the raw, unvalidated description of how the linter binary
// should be obtained
type ConfigIntent struct {
	BinaryPath   string // explicit binary; when set Version is ignored
	Version      string // requested release, "latest" when empty
	DiffOnly     bool
	Checksum     string // optional sha256 of the downloaded artifact
	PublicKey    string // optional armored OpenPGP key (or a path to one)
	SignatureURL string // overrides the default <artifact url>.asc location
}

// UsesExistingBinary reports whether the intent points at a binary on disk
func (i ConfigIntent) UsesExistingBinary() bool {
	return i.BinaryPath != ""
}

// Configuration is the resolved, immutable run configuration.
// A Configuration can only be built around an existing absolute path.
type Configuration struct {
	binaryPath string
	diffOnly   bool
}

// NewConfiguration validates binaryPath and builds a Configuration
func NewConfiguration(binaryPath string, diffOnly bool) (Configuration, error) {
	if !filepath.IsAbs(binaryPath) {
		return Configuration{}, fmt.Errorf("binary path %q is not absolute", binaryPath)
	}
	if err := configValidate.Var(binaryPath, "required,file"); err != nil {
		return Configuration{}, fmt.Errorf("binary path %q is not a file: %w", binaryPath, err)
	}
	return Configuration{binaryPath: binaryPath, diffOnly: diffOnly}, nil
}

// BinaryPath returns the absolute path to the linter executable
func (c Configuration) BinaryPath() string {
	return c.binaryPath
}

// DiffOnly reports whether linting should be restricted to changed files
func (c Configuration) DiffOnly() bool {
	return c.diffOnly
}
