//go:build unix

package engine

import (
	"os/exec"
	"syscall"
)

// detach puts the engine in its own process group so a terminal interrupt is
// delivered to this program only.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
