package main

import (
	"strings"

	"github.com/spf13/pflag"
)

// flagInputs exposes explicitly set flags as an input source
type flagInputs struct {
	flags *pflag.FlagSet
}

func newFlagInputs(flags *pflag.FlagSet) flagInputs {
	return flagInputs{flags: flags}
}

// Input returns the flag's value only when it was set on the command line
func (f flagInputs) Input(name string) string {
	flag := f.flags.Lookup(strings.ToLower(name))
	if flag == nil || !flag.Changed {
		return ""
	}
	return flag.Value.String()
}
