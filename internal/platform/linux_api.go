//go:build linux

package platform

import (
	"os/exec"
	"syscall"
)

// LinuxAPI implements ProcessAPI for Linux
type LinuxAPI struct {
	unixProcess
}

// NewLinuxAPI creates a new Linux API instance
func NewLinuxAPI() *LinuxAPI {
	return &LinuxAPI{}
}

// NewProcessAPI creates a new ProcessAPI instance for Linux
func NewProcessAPI() ProcessAPI {
	return NewLinuxAPI()
}

// ConfigureCommand puts the child in its own process group and asks the
// kernel to SIGKILL it if the shell dies without running Terminate.
func (l *LinuxAPI) ConfigureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGKILL,
	}
}

// ResourceDir returns the executable's directory; Linux packages ship
// resources next to the binary.
func (l *LinuxAPI) ResourceDir() (string, error) {
	return executableDir()
}
