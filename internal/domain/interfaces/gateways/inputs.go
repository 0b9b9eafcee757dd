// Package gateways defines interfaces for external service adapters.
package gateways

// InputSource looks up a named action input. Missing inputs are "".
type InputSource interface {
	Input(name string) string
}

// InputFunc adapts a plain function to InputSource
type InputFunc func(name string) string

// Input calls f(name)
func (f InputFunc) Input(name string) string {
	return f(name)
}
