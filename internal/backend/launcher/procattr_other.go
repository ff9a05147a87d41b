//go:build !windows

package launcher

import "os/exec"

// applyProcAttr is a no-op outside Windows. No process group or Pdeathsig is
// set, so the backend's lifetime is not tied to ours.
func applyProcAttr(cmd *exec.Cmd) {}
