//go:build unix

package gateways

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// signalName renders sig the way it is reported by the shell ("SIGKILL")
func signalName(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return sig.String()
}
