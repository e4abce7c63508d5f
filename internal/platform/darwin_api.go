//go:build darwin

package platform

import (
	"os/exec"
	"syscall"
)

// DarwinAPI implements ProcessAPI for macOS
type DarwinAPI struct {
	unixProcess
}

// NewDarwinAPI creates a new macOS API instance
func NewDarwinAPI() *DarwinAPI {
	return &DarwinAPI{}
}

// NewProcessAPI creates a new ProcessAPI instance for macOS
func NewProcessAPI() ProcessAPI {
	return NewDarwinAPI()
}

// ConfigureCommand puts the child in its own process group.
// macOS has no parent-death signal.
func (d *DarwinAPI) ConfigureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// ResourceDir returns Contents/Resources of the app bundle, or the
// executable's directory when running outside a bundle (wails dev).
func (d *DarwinAPI) ResourceDir() (string, error) {
	dir, err := executableDir()
	if err != nil {
		return "", err
	}
	return BundleResourceDir(dir), nil
}
