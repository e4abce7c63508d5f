package sidecar

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// Port is the fixed port the sidecar binds to
	Port = 8880
	// Mode tells the server it was started by the desktop shell rather than by hand
	Mode = "desktop"

	// PortEnv and ModeEnv are the environment variable names carrying Port and Mode
	PortEnv = "PORT"
	ModeEnv = "ENV"

	// ServerURL is where the frontend reaches the sidecar
	ServerURL = "http://localhost:8880"

	binDir        = "bin"
	binaryBase    = "server"
	windowsTarget = "windows"
)

// BinaryName returns the sidecar executable name for the given GOOS value
func BinaryName(goos string) string {
	if goos == windowsTarget {
		return binaryBase + ".exe"
	}
	return binaryBase
}

// ExecutablePath returns <resourceDir>/bin/<BinaryName(goos)>
func ExecutablePath(resourceDir, goos string) string {
	return filepath.Join(resourceDir, binDir, BinaryName(goos))
}

// Environment returns base with PORT and ENV replaced by the sidecar contract values.
// Inherited PORT/ENV entries are dropped so the fixed values always win.
func Environment(base []string) []string {
	env := make([]string, 0, len(base)+2)
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if key == PortEnv || key == ModeEnv {
			continue
		}
		env = append(env, kv)
	}
	return append(env,
		PortEnv+"="+strconv.Itoa(Port),
		ModeEnv+"="+Mode,
	)
}
