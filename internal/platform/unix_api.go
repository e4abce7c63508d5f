//go:build unix

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// unixProcess holds the kill behavior shared by all Unix targets
type unixProcess struct{}

// Kill sends SIGKILL to the child's process group, falling back to the
// single process when the group is already gone or was never created.
func (unixProcess) Kill(p *os.Process) error {
	if p == nil {
		return nil
	}

	err := unix.Kill(-p.Pid, unix.SIGKILL)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.ESRCH) || errors.Is(err, unix.EPERM) {
		return p.Kill()
	}
	return err
}
