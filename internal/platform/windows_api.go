//go:build windows

package platform

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// WindowsAPI implements ProcessAPI for Windows
type WindowsAPI struct{}

// NewWindowsAPI creates a new Windows API instance
func NewWindowsAPI() *WindowsAPI {
	return &WindowsAPI{}
}

// NewProcessAPI creates a new ProcessAPI instance for Windows
func NewProcessAPI() ProcessAPI {
	return NewWindowsAPI()
}

// ConfigureCommand keeps server.exe from opening a console window next to the GUI
func (w *WindowsAPI) ConfigureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW | windows.CREATE_NEW_PROCESS_GROUP,
	}
}

// Kill terminates the process with TerminateProcess, falling back to os.Process.Kill
// when a terminate handle cannot be opened.
func (w *WindowsAPI) Kill(p *os.Process) error {
	if p == nil {
		return nil
	}

	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(p.Pid))
	if err != nil {
		return p.Kill()
	}
	defer windows.CloseHandle(h)

	return windows.TerminateProcess(h, 1)
}

// ResourceDir returns the executable's directory; the installer places bin\ beside it
func (w *WindowsAPI) ResourceDir() (string, error) {
	return executableDir()
}
