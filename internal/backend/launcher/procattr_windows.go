//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

// applyProcAttr hides the console window Windows would otherwise open for
// the interpreter.
func applyProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow: true,
	}
}
