package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{"nil error", nil, ErrCodeUnknown},
		{"fs.ErrNotExist", fs.ErrNotExist, ErrCodeNotFound},
		{"wrapped path error", &fs.PathError{Op: "fork/exec", Path: "/app/bin/server", Err: fs.ErrNotExist}, ErrCodeNotFound},
		{"exec.ErrNotFound", exec.ErrNotFound, ErrCodeNotFound},
		{"fs.ErrPermission", fmt.Errorf("start: %w", fs.ErrPermission), ErrCodePermission},
		{"os.ErrProcessDone", os.ErrProcessDone, ErrCodeProcessExited},
		{"context.DeadlineExceeded", context.DeadlineExceeded, ErrCodeTimeout},
		{"context.Canceled", context.Canceled, ErrCodeTimeout},
		{"sidecar error keeps code", NewSidecarError("op", nil, ErrCodeKill), ErrCodeKill},
		{"message no such file", errors.New("fork/exec /x: no such file or directory"), ErrCodeNotFound},
		{"message windows not found", errors.New("The system cannot find the file specified."), ErrCodeNotFound},
		{"message permission denied", errors.New("permission denied"), ErrCodePermission},
		{"message access denied", errors.New("Access is denied."), ErrCodePermission},
		{"message process finished", errors.New("os: process already finished"), ErrCodeProcessExited},
		{"message timed out", errors.New("probe timed out"), ErrCodeTimeout},
		{"unknown error", errors.New("exec format error"), ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.expected {
				t.Errorf("ClassifyError() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestWrapLaunchError(t *testing.T) {
	if WrapLaunchError(nil, "/x") != nil {
		t.Error("WrapLaunchError(nil) should return nil")
	}

	err := WrapLaunchError(&fs.PathError{Op: "fork/exec", Path: "/x", Err: fs.ErrNotExist}, "/x")
	if !IsNotFound(err) {
		t.Errorf("Expected not found classification, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("Expected wrapped error to match fs.ErrNotExist")
	}

	var sErr *SidecarError
	if !errors.As(err, &sErr) {
		t.Fatalf("Expected *SidecarError, got %T", err)
	}
	if sErr.Op != "launch" || sErr.Context["path"] != "/x" {
		t.Errorf("Unexpected op/context: %q %v", sErr.Op, sErr.Context)
	}

	unknown := WrapLaunchError(errors.New("exec format error"), "/x")
	if !IsSpawn(unknown) {
		t.Errorf("Expected unclassified launch error to become SPAWN, got %v", unknown)
	}
}

func TestWrapKillError(t *testing.T) {
	if WrapKillError(nil, "1") != nil {
		t.Error("WrapKillError(nil) should return nil")
	}

	if err := WrapKillError(os.ErrProcessDone, "12"); !IsProcessExited(err) {
		t.Errorf("Expected PROCESS_EXITED, got %v", err)
	}

	err := WrapKillError(errors.New("operation not supported"), "12")
	if !IsKill(err) {
		t.Errorf("Expected KILL, got %v", err)
	}
	var sErr *SidecarError
	if errors.As(err, &sErr) && sErr.Context["pid"] != "12" {
		t.Errorf("Expected pid context, got %v", sErr.Context)
	}
}

func TestHandleResourceDirError(t *testing.T) {
	cause := errors.New("executable path unavailable")
	err := HandleResourceDirError(cause)

	if !IsResourceDir(err) {
		t.Errorf("Expected RESOURCE_DIR, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to wrap its cause")
	}
}
