//go:build !windows

package watchdog

import "syscall"

// detachedProcAttr starts the child in a new session so terminal signals
// aimed at the watchdog never reach the tunnel.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
