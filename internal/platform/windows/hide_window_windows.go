package windows

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps the interpreter from flashing a console window.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
