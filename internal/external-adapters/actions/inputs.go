// Package actions adapts the GitHub Actions runner environment: inputs,
// the triggering event and workflow-command logging.
package actions

import (
	"os"
	"strings"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
	"github.com/DonIsaac/zlint-action/internal/domain/interfaces/gateways"
)

// InputEnvName returns the variable the runner uses for an input, e.g.
// "diff-only" becomes INPUT_DIFF-ONLY
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// EnvInputs reads inputs from INPUT_* environment variables
type EnvInputs struct {
	lookup func(string) (string, bool)
}

// NewEnvInputs creates an input source over the process environment
func NewEnvInputs() *EnvInputs {
	return &EnvInputs{lookup: os.LookupEnv}
}

// Input returns the trimmed value of the input, "" when unset. Hyphenated
// names are also looked up with underscores (INPUT_DIFF_ONLY), the form a
// composite step can pass through its env block.
func (e *EnvInputs) Input(name string) string {
	key := InputEnvName(name)
	v, ok := e.lookup(key)
	if !ok && strings.Contains(key, "-") {
		v, _ = e.lookup(strings.ReplaceAll(key, "-", "_"))
	}
	return strings.TrimSpace(v)
}

// Defaults serves the defaults declared in action metadata
func Defaults(meta *entities.ActionMetadata) gateways.InputSource {
	return gateways.InputFunc(func(name string) string {
		return meta.Default(strings.ToLower(name))
	})
}

// Chain returns the first non-empty value across sources, in order
func Chain(sources ...gateways.InputSource) gateways.InputSource {
	return gateways.InputFunc(func(name string) string {
		for _, s := range sources {
			if s == nil {
				continue
			}
			if v := s.Input(name); v != "" {
				return v
			}
		}
		return ""
	})
}
