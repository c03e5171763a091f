//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// detach starts the child in a new session so it outlives the menu's terminal
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
