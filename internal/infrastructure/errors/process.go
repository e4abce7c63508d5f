package errors

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// ClassifyError classifies process and filesystem errors into sidecar error codes
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return ErrCodeUnknown
	}

	var sErr *SidecarError
	if errors.As(err, &sErr) {
		return sErr.Code
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrCodePermission
	case errors.Is(err, os.ErrProcessDone):
		return ErrCodeProcessExited
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrCodeTimeout
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ErrCodeProcessExited
	}

	// Fall back to message matching for errors that lost their type (e.g. wrapped with %v)
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "no such file or directory"),
		strings.Contains(errStr, "cannot find the file"),
		strings.Contains(errStr, "executable file not found"):
		return ErrCodeNotFound
	case strings.Contains(errStr, "permission denied"),
		strings.Contains(errStr, "access is denied"):
		return ErrCodePermission
	case strings.Contains(errStr, "process already finished"):
		return ErrCodeProcessExited
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "timed out"):
		return ErrCodeTimeout
	default:
		return ErrCodeUnknown
	}
}

// WrapLaunchError wraps a spawn failure, classifying it and recording the executable path.
// Errors that cannot be classified more precisely are reported as ErrCodeSpawn.
func WrapLaunchError(err error, path string) error {
	if err == nil {
		return nil
	}

	code := ClassifyError(err)
	if code == ErrCodeUnknown {
		code = ErrCodeSpawn
	}
	return NewSidecarErrorWithContext("launch", err, code, map[string]string{
		"path": path,
	})
}

// WrapKillError wraps a termination failure with the pid of the target process
func WrapKillError(err error, pid string) error {
	if err == nil {
		return nil
	}

	code := ClassifyError(err)
	if code == ErrCodeUnknown {
		code = ErrCodeKill
	}
	return NewSidecarErrorWithContext("terminate", err, code, map[string]string{
		"pid": pid,
	})
}

// HandleResourceDirError creates a standardized error for an unresolvable resource directory
func HandleResourceDirError(err error) error {
	return NewSidecarError("resource_dir", err, ErrCodeResourceDir)
}
