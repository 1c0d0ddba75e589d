//go:build linux

package backend

import (
	"os/exec"
	"syscall"
)

// configureChild asks the kernel to SIGTERM the backend if we die without
// running Close, so it is never orphaned.
func configureChild(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Pdeathsig: syscall.SIGTERM}
}
