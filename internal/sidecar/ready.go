package sidecar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"k8s.io/apimachinery/pkg/util/wait"

	apperrors "opendbm/internal/infrastructure/errors"
	"opendbm/internal/infrastructure/logging"
)

// HealthPath is the sidecar's liveness endpoint
const HealthPath = "/health"

const healthRequestTimeout = time.Second

// ErrProcessExited is reported when the sidecar dies while being probed
var ErrProcessExited = errors.New("server exited before becoming ready")

// ReadinessCheck reports whether the sidecar accepts requests.
// A non-nil error stops polling.
type ReadinessCheck func(ctx context.Context) (bool, error)

// NewHealthClient returns a resty client for probing the sidecar. Resty's
// own diagnostics go to logger at debug level.
func NewHealthClient(logger logging.Logger) *resty.Client {
	return resty.New().
		SetTimeout(healthRequestTimeout).
		SetLogger(restyLogger{logger: logger})
}

// HealthCheck probes url with GET. Connection errors count as "not ready yet".
func HealthCheck(client *resty.Client, url string) ReadinessCheck {
	return func(ctx context.Context) (bool, error) {
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			return false, nil
		}
		return resp.StatusCode() == http.StatusOK, nil
	}
}

// WaitReady polls check every interval until it succeeds, timeout elapses,
// ctx is cancelled or h exits.
func WaitReady(ctx context.Context, h Handle, interval, timeout time.Duration, check ReadinessCheck) error {
	attempts := 0
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		select {
		case <-h.Done():
			return false, ErrProcessExited
		default:
		}
		attempts++
		return check(ctx)
	})
	if err == nil {
		return nil
	}

	code := apperrors.ErrCodeReadiness
	if errors.Is(err, ErrProcessExited) {
		code = apperrors.ErrCodeProcessExited
	}
	return apperrors.NewSidecarErrorWithContext("readiness", err, code, map[string]string{
		"attempts": strconv.Itoa(attempts),
		"timeout":  timeout.String(),
	})
}

// restyLogger adapts logging.Logger to resty.Logger
type restyLogger struct {
	logger logging.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.debug(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.debug(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.debug(format, v...)
}

// Probe failures are expected while the server boots, so everything goes to debug
func (l restyLogger) debug(format string, v ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
