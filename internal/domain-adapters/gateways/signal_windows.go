//go:build windows

package gateways

import "syscall"

func signalName(sig syscall.Signal) string {
	return sig.String()
}
