//go:build windows

package watchdog

import "syscall"

const detachedProcess = 0x00000008

// detachedProcAttr starts the child without a console in its own process
// group.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
		HideWindow:    true,
	}
}
