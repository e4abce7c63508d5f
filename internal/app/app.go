package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"opendbm/internal/config"
	"opendbm/internal/infrastructure/errors"
	"opendbm/internal/infrastructure/logging"
	"opendbm/internal/platform"
	"opendbm/internal/sidecar"
)

// EventServerStatus is emitted to the frontend once the DOM is ready
const EventServerStatus = "server:status"

// ServerStatus describes the sidecar as seen by the frontend
type ServerStatus struct {
	URL     string `json:"url"`
	Running bool   `json:"running"`
	PID     int    `json:"pid"`
}

// App struct represents the main application
type App struct {
	ctx        context.Context
	cfg        *config.Config
	supervisor *sidecar.Supervisor
	logger     logging.Logger

	resolveResourceDir func() (string, error)
	emit               func(ctx context.Context, event string, data ...interface{})
}

// NewApp creates the application host around an existing supervisor
func NewApp(cfg *config.Config, supervisor *sidecar.Supervisor, logger logging.Logger) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if supervisor == nil {
		supervisor = sidecar.New(nil, cfg, logger)
	}

	return &App{
		cfg:                cfg,
		supervisor:         supervisor,
		logger:             logger,
		resolveResourceDir: platform.NewProcessAPI().ResourceDir,
		emit:               runtime.EventsEmit,
	}
}

// Startup is called at application startup. An unresolvable resource
// directory is fatal; a sidecar that fails to launch is not.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	start := time.Now()

	dir, err := a.resourceDir()
	if err != nil {
		resErr := errors.HandleResourceDirError(err)
		logging.LogError(a.logger, resErr, "startup", nil)
		panic(resErr)
	}

	if err := a.supervisor.Launch(ctx, dir); err != nil {
		a.logger.Info("Continuing without a supervised server", "resource_dir", dir)
	}

	a.logger.Info("Application started",
		"environment", a.cfg.Environment,
		"resource_dir", dir)
	logging.LogOperation(a.logger, "startup", time.Since(start), nil)
}

func (a *App) resourceDir() (string, error) {
	if a.cfg.ResourceDir != "" {
		return filepath.Abs(a.cfg.ResourceDir)
	}
	return a.resolveResourceDir()
}

// DomReady is called after front-end resources have been loaded
func (a *App) DomReady(ctx context.Context) {
	a.emit(ctx, EventServerStatus, a.ServerStatus())
}

// BeforeClose is called when the application is about to quit
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	return false
}

// Shutdown is called once the primary window has been destroyed
func (a *App) Shutdown(ctx context.Context) {
	a.logger.Debug("Starting application shutdown sequence")

	if !a.supervisor.Terminate() {
		a.logger.Debug("No supervised server to stop")
	}

	a.logger.Info("Application shutdown completed")
}

// ServerURL returns the address the frontend should use for API calls
func (a *App) ServerURL() string {
	return sidecar.ServerURL
}

// ServerRunning reports whether the shell is supervising a live server
func (a *App) ServerRunning() bool {
	return a.supervisor.Running()
}

// ServerPID returns the supervised server's pid, or 0
func (a *App) ServerPID() int {
	return a.supervisor.PID()
}

// ServerStatus returns URL, liveness and pid in one call
func (a *App) ServerStatus() ServerStatus {
	return ServerStatus{
		URL:     sidecar.ServerURL,
		Running: a.supervisor.Running(),
		PID:     a.supervisor.PID(),
	}
}

// GetLogger returns the application's structured logger
func (a *App) GetLogger() logging.Logger {
	return a.logger
}
