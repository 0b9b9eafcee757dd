package orchestrators

import (
	"context"
	"strings"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces/gateways"
	"github.com/DonIsaac/zlint-action/internal/domain/services"
)

// BinaryLocator interface for resolving the linter binary
type BinaryLocator interface {
	Locate(ctx context.Context, intent entities.ConfigIntent) (string, error)
}

// ConfigAssembler turns raw action inputs into a Configuration
type ConfigAssembler struct {
	inputs  gateways.InputSource
	locator BinaryLocator
	logger  interfaces.Logger
}

// NewConfigAssembler creates a new configuration assembler
func NewConfigAssembler(inputs gateways.InputSource, locator BinaryLocator, logger interfaces.Logger) *ConfigAssembler {
	return &ConfigAssembler{
		inputs:  inputs,
		locator: locator,
		logger:  logger,
	}
}

// Assemble reads the inputs, locates the binary and returns the validated
// Configuration. The "Configuring ZLint" log group is closed on every path.
func (a *ConfigAssembler) Assemble(ctx context.Context) (entities.Configuration, error) {
	a.logger.StartGroup("Configuring ZLint")
	defer a.logger.EndGroup()

	intent := a.ReadIntent()
	binary, err := a.locator.Locate(ctx, intent)
	if err != nil {
		return entities.Configuration{}, err
	}

	return entities.NewConfiguration(binary, intent.DiffOnly)
}

// ReadIntent collects the raw inputs into a ConfigIntent
func (a *ConfigAssembler) ReadIntent() entities.ConfigIntent {
	version := a.input(entities.InputVersion)
	if version == "" {
		version = entities.LatestVersion
	}
	return entities.ConfigIntent{
		BinaryPath:   a.input(entities.InputBinary),
		Version:      version,
		DiffOnly:     services.IsYes(a.input(entities.InputDiffOnly)),
		Checksum:     a.input(entities.InputChecksum),
		PublicKey:    a.input(entities.InputPublicKey),
		SignatureURL: a.input(entities.InputSignature),
	}
}

func (a *ConfigAssembler) input(name string) string {
	return strings.TrimSpace(a.inputs.Input(name))
}
