package entities

// ActionInput describes one input declared in action.yml
type ActionInput struct {
	Description string
	Required    bool
	Default     string
}

// ActionMetadata is the subset of action.yml the runner cares about
type ActionMetadata struct {
	Name        string
	Description string
	Inputs      map[string]ActionInput
	Runtime     string // runs.using
	Main        string // runs.main or runs.image
}

// Default returns the declared default for an input, "" when undeclared
func (m *ActionMetadata) Default(name string) string {
	if m == nil {
		return ""
	}
	return m.Inputs[name].Default
}
