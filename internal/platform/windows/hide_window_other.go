//go:build !windows

package windows

import "os/exec"

func hideWindow(_ *exec.Cmd) {}
