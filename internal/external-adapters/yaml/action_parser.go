// Package yaml parses action.yml metadata.
package yaml

import (
	"fmt"
	"os"
	"strings"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlAction represents the raw YAML structure
type yamlAction struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Inputs      map[string]yamlInput `yaml:"inputs"`
	Runs        yamlRuns             `yaml:"runs"`
}

type yamlInput struct {
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
	// Default is a node so that unquoted scalars like `false` keep their text
	Default yaml.Node `yaml:"default"`
}

type yamlRuns struct {
	Using string `yaml:"using"`
	Main  string `yaml:"main"`
	Image string `yaml:"image"`
}

// ActionParser parses action.yml files
type ActionParser struct{}

// NewActionParser creates a new YAML parser
func NewActionParser() *ActionParser {
	return &ActionParser{}
}

// ParseFile parses an action.yml file into ActionMetadata
func (p *ActionParser) ParseFile(filePath string) (*entities.ActionMetadata, error) {
	//nolint:gosec // G304: filePath is the action metadata path chosen by the operator
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into ActionMetadata
func (p *ActionParser) Parse(data []byte) (*entities.ActionMetadata, error) {
	var raw yamlAction
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if raw.Name == "" {
		return nil, fmt.Errorf("action must have a name")
	}

	inputs := make(map[string]entities.ActionInput, len(raw.Inputs))
	for name, in := range raw.Inputs {
		def, err := scalarValue(&in.Default)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", name, err)
		}
		inputs[strings.ToLower(name)] = entities.ActionInput{
			Description: in.Description,
			Required:    in.Required,
			Default:     def,
		}
	}

	main := raw.Runs.Main
	if main == "" {
		main = raw.Runs.Image
	}

	return &entities.ActionMetadata{
		Name:        raw.Name,
		Description: raw.Description,
		Inputs:      inputs,
		Runtime:     raw.Runs.Using,
		Main:        main,
	}, nil
}

func scalarValue(n *yaml.Node) (string, error) {
	switch n.Kind {
	case 0:
		return "", nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	default:
		return "", fmt.Errorf("default must be a scalar")
	}
}
