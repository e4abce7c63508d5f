package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrorCode represents different types of sidecar errors
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNotFound
	ErrCodePermission
	ErrCodeSpawn
	ErrCodeResourceDir
	ErrCodeKill
	ErrCodeReadiness
	ErrCodeTimeout
	ErrCodeProcessExited
)

// String returns a string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodePermission:
		return "PERMISSION"
	case ErrCodeSpawn:
		return "SPAWN"
	case ErrCodeResourceDir:
		return "RESOURCE_DIR"
	case ErrCodeKill:
		return "KILL"
	case ErrCodeReadiness:
		return "READINESS"
	case ErrCodeTimeout:
		return "TIMEOUT"
	case ErrCodeProcessExited:
		return "PROCESS_EXITED"
	default:
		return "UNKNOWN"
	}
}

// SidecarError represents a supervisor error with classification and context
type SidecarError struct {
	Op        string            // operation name (launch, terminate, readiness)
	Err       error             // underlying error
	Code      ErrorCode         // error classification
	Context   map[string]string // additional context information
	Timestamp time.Time         // when the error occurred
}

func (e *SidecarError) Error() string {
	if e == nil {
		return "sidecar error"
	}

	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	if e.Code != ErrCodeUnknown {
		parts = append(parts, fmt.Sprintf("code=%s", e.Code.String()))
	}

	// Context keys are sorted so the message is deterministic
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, e.Context[k]))
		}
	}

	contextStr := ""
	if len(parts) > 0 {
		contextStr = fmt.Sprintf(" [%s]", strings.Join(parts, " "))
	}

	if e.Err != nil {
		return e.Err.Error() + contextStr
	}
	return "sidecar error" + contextStr
}

func (e *SidecarError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements error matching for errors.Is
func (e *SidecarError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*SidecarError); ok {
		return e.Code == t.Code
	}
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}
	return false
}

// GetCode returns the error code as a string (for logging interface compatibility)
func (e *SidecarError) GetCode() string {
	if e == nil {
		return ErrCodeUnknown.String()
	}
	return e.Code.String()
}

// GetContext returns the error context (for logging interface compatibility)
func (e *SidecarError) GetContext() map[string]string {
	if e == nil || e.Context == nil {
		return make(map[string]string)
	}
	return e.Context
}

// GetTimestamp returns the error timestamp (for logging interface compatibility)
func (e *SidecarError) GetTimestamp() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.Timestamp
}

// NewSidecarError creates a new sidecar error with the given parameters
func NewSidecarError(op string, err error, code ErrorCode) *SidecarError {
	return &SidecarError{
		Op:        op,
		Err:       err,
		Code:      code,
		Context:   make(map[string]string),
		Timestamp: time.Now(),
	}
}

// NewSidecarErrorWithContext creates a new sidecar error with additional context
func NewSidecarErrorWithContext(op string, err error, code ErrorCode, context map[string]string) *SidecarError {
	sErr := NewSidecarError(op, err, code)
	if context != nil {
		// Clone so later mutation by the caller cannot race with readers
		sErr.Context = make(map[string]string, len(context))
		for k, v := range context {
			sErr.Context[k] = v
		}
	}
	return sErr
}

func hasCode(err error, code ErrorCode) bool {
	var sErr *SidecarError
	if errors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a "not found" error
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsPermission checks if the error is a permission error
func IsPermission(err error) bool {
	return hasCode(err, ErrCodePermission)
}

// IsSpawn checks if the error is a generic spawn failure
func IsSpawn(err error) bool {
	return hasCode(err, ErrCodeSpawn)
}

// IsResourceDir checks if the error is a resource directory resolution failure
func IsResourceDir(err error) bool {
	return hasCode(err, ErrCodeResourceDir)
}

// IsKill checks if the error is a termination failure
func IsKill(err error) bool {
	return hasCode(err, ErrCodeKill)
}

// IsReadiness checks if the error is a readiness probe failure
func IsReadiness(err error) bool {
	return hasCode(err, ErrCodeReadiness)
}

// IsTimeout checks if the error is a "timeout" error
func IsTimeout(err error) bool {
	return hasCode(err, ErrCodeTimeout)
}

// IsProcessExited checks if the error reports an early process exit
func IsProcessExited(err error) bool {
	return hasCode(err, ErrCodeProcessExited)
}
