//go:build !unix

package engine

import "os/exec"

func detach(cmd *exec.Cmd) {}
