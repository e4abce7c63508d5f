//go:build unix && !linux && !darwin

package platform

import (
	"os/exec"
	"syscall"
)

// UnixAPI implements ProcessAPI for the remaining Unix targets
type UnixAPI struct {
	unixProcess
}

// NewProcessAPI creates a new ProcessAPI instance for generic Unix
func NewProcessAPI() ProcessAPI {
	return &UnixAPI{}
}

// ConfigureCommand puts the child in its own process group so Kill reaches its children
func (u *UnixAPI) ConfigureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// ResourceDir returns the executable's directory
func (u *UnixAPI) ResourceDir() (string, error) {
	return executableDir()
}
