//go:build !windows

// Package process manages external helper processes (monolith, the PDF browser).
package process

import (
	"os/exec"
	"syscall"
)

// NewGroup configures cmd to start in its own process group so that
// KillProcessGroup reaches every child it spawns.
func NewGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; callers also kill the process itself.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
