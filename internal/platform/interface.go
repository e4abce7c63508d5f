package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ProcessAPI defines the platform-specific operations needed to supervise a child process
type ProcessAPI interface {
	// ConfigureCommand sets OS process attributes on cmd before it is started
	ConfigureCommand(cmd *exec.Cmd)
	// Kill forcefully terminates p (and its process group where supported)
	Kill(p *os.Process) error
	// ResourceDir returns the directory holding the application's bundled resources
	ResourceDir() (string, error)
}

// executableDir returns the directory of the running executable with symlinks resolved
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// BundleResourceDir maps the executable directory of a macOS app bundle
// (<App>.app/Contents/MacOS) to its resource directory (<App>.app/Contents/Resources).
// Directories outside a bundle are returned unchanged.
func BundleResourceDir(exeDir string) string {
	clean := filepath.Clean(exeDir)
	contents := filepath.Dir(clean)
	if filepath.Base(clean) == "MacOS" && filepath.Base(contents) == "Contents" {
		return filepath.Join(contents, "Resources")
	}
	return clean
}
