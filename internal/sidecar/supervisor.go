package sidecar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"opendbm/internal/config"
	apperrors "opendbm/internal/infrastructure/errors"
	"opendbm/internal/infrastructure/logging"
)

var (
	// ErrAlreadyLaunched is returned by Launch after the first attempt, successful or not
	ErrAlreadyLaunched = errors.New("sidecar: launch already attempted")
	// ErrClosed is returned by Launch once Terminate has run
	ErrClosed = errors.New("sidecar: supervisor terminated")
)

// Supervisor owns the single sidecar handle of an application run
type Supervisor struct {
	mu       sync.Mutex
	handle   Handle
	launched bool
	closed   bool

	starter Starter
	cfg     *config.Config
	logger  logging.Logger

	// Overridable in tests
	goos    string
	environ func() []string
	sleep   func(time.Duration)
	check   ReadinessCheck
}

// New creates a supervisor. A nil cfg uses config.DefaultConfig and a nil
// logger the default zap logger.
func New(starter Starter, cfg *config.Config, logger logging.Logger) *Supervisor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if starter == nil {
		starter = NewProcessStarter(nil, cfg.ServerLogDir)
	}

	return &Supervisor{
		starter: starter,
		cfg:     cfg,
		logger:  logger,
		goos:    runtime.GOOS,
		environ: os.Environ,
		sleep:   time.Sleep,
		check:   HealthCheck(NewHealthClient(logger), ServerURL+HealthPath),
	}
}

// Launch starts <resourceDir>/bin/server once. On failure it logs the
// "not started" diagnostic and returns the classified error; the caller
// should keep running without the sidecar. ctx bounds only the optional
// readiness probe.
func (s *Supervisor) Launch(ctx context.Context, resourceDir string) error {
	start := time.Now()
	path := ExecutablePath(resourceDir, s.goos)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.launched {
		s.mu.Unlock()
		return ErrAlreadyLaunched
	}
	s.launched = true

	handle, err := s.starter.Start(path, Environment(s.environ()))
	if err != nil {
		s.mu.Unlock()
		launchErr := apperrors.WrapLaunchError(err, path)
		s.logger.Warn(fmt.Sprintf("server not started (%v). Run it separately in dev mode.", err),
			"path", path,
			"error_code", apperrors.ClassifyError(launchErr).String())
		return launchErr
	}
	s.handle = handle
	s.mu.Unlock()

	go s.watch(handle)

	if s.cfg.StartupDelay > 0 {
		s.sleep(s.cfg.StartupDelay)
	}
	s.logger.Info("server started on "+ServerURL, "pid", handle.Pid(), "path", path)

	if s.cfg.ReadinessEnabled() {
		if err := WaitReady(ctx, handle, s.cfg.ReadinessInterval, s.cfg.ReadinessTimeout, s.check); err != nil {
			logging.LogWarning(s.logger, err, "readiness", map[string]interface{}{"url": ServerURL})
		} else {
			s.logger.Info("server ready", "url", ServerURL)
		}
	}

	logging.LogOperation(s.logger, "launch", time.Since(start), map[string]interface{}{
		"pid": handle.Pid(),
	})
	return nil
}

// watch logs an exit that was not caused by Terminate
func (s *Supervisor) watch(h Handle) {
	<-h.Done()

	s.mu.Lock()
	current := s.handle == h
	s.mu.Unlock()

	if !current {
		s.logger.Debug("server process reaped", "pid", h.Pid())
		return
	}

	fields := []interface{}{"pid", h.Pid()}
	if err := h.Err(); err != nil {
		fields = append(fields, "error", err.Error())
	}
	s.logger.Warn("server exited unexpectedly", fields...)
}

// Terminate kills the sidecar if a handle is present and reports whether it
// did. The handle is taken under the lock, so repeated or concurrent calls
// kill the process at most once. Kill errors are logged and dropped.
// After Terminate, Launch refuses to start a process.
func (s *Supervisor) Terminate() bool {
	s.mu.Lock()
	s.closed = true
	h := s.handle
	s.handle = nil
	if h == nil {
		s.mu.Unlock()
		return false
	}
	if err := h.Kill(); err != nil {
		killErr := apperrors.WrapKillError(err, fmt.Sprint(h.Pid()))
		s.logger.Debug("kill failed", "pid", h.Pid(), "error", killErr.Error())
	}
	s.mu.Unlock()

	if s.cfg.StopTimeout > 0 {
		s.awaitExit(h, s.cfg.StopTimeout)
	}
	s.logger.Info("server stopped", "pid", h.Pid())
	return true
}

func (s *Supervisor) awaitExit(h Handle, timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-h.Done():
	case <-timer.C:
		s.logger.Warn("server did not exit in time", "pid", h.Pid(), "timeout", timeout.String())
	}
}

// Running reports whether a handle is held and its process has not exited
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return false
	}
	select {
	case <-s.handle.Done():
		return false
	default:
		return true
	}
}

// PID returns the sidecar's process id, or 0 when no handle is held
func (s *Supervisor) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return 0
	}
	return s.handle.Pid()
}
