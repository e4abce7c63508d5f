package main

import (
	"embed"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"opendbm/internal/app"
	"opendbm/internal/config"
	"opendbm/internal/infrastructure/logging"
	"opendbm/internal/platform"
	"opendbm/internal/sidecar"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "opendbm: %v\n", err)
		os.Exit(2)
	}

	zapLogger, err := logging.NewLogger(cfg.LoggingConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "opendbm: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	starter := sidecar.NewProcessStarter(platform.NewProcessAPI(), cfg.ServerLogDir)
	supervisor := sidecar.New(starter, cfg, zapLogger)
	application := app.NewApp(cfg, supervisor, zapLogger)

	err = wails.Run(&options.App{
		Title:            "OpenDBM",
		Width:            1280,
		Height:           800,
		MinWidth:         800,
		MinHeight:        600,
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 255},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Logger:           logging.NewWailsLoggerAdapter(zapLogger),
		LogLevel:         wailsLogLevel(cfg),
		OnStartup:        application.Startup,
		OnDomReady:       application.DomReady,
		OnBeforeClose:    application.BeforeClose,
		OnShutdown:       application.Shutdown,
		WindowStartState: options.Normal,
		Bind: []interface{}{
			application,
		},
		Windows: &windows.Options{
			ZoomFactor: 1.0,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   "OpenDBM",
				Message: "Database manager with a bundled local server",
			},
		},
	})

	if err != nil {
		logging.LogError(zapLogger, err, "run", nil)
		// The window may never have opened, so Shutdown may not have run
		supervisor.Terminate()
		_ = zapLogger.Sync()
		os.Exit(1)
	}
}

// loadConfig builds the configuration from, in increasing priority: the
// environment defaults, OPENDBM_* variables and command line flags.
// Unknown flags are ignored so wails dev can pass its own.
func loadConfig(args []string) (*config.Config, error) {
	flags := flag.NewFlagSet("opendbm", flag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true

	env := flags.String("env", "", "Environment: development, test, production (overrides OPENDBM_ENVIRONMENT)")
	resourceDir := flags.String("resource-dir", "", "Directory containing bin/server (overrides OPENDBM_RESOURCE_DIR)")
	logLevel := flags.String("log-level", "", "Log level: debug, info, warn, error (overrides OPENDBM_LOG_LEVEL)")
	serverLogDir := flags.String("server-log-dir", "", "Write server output to this directory (overrides OPENDBM_SERVER_LOG_DIR)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	base := *env
	if base == "" {
		base = os.Getenv(config.EnvPrefix + "_ENVIRONMENT")
	}

	cfg := config.ConfigForEnvironment(base)
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if *env != "" {
		cfg.Environment = *env
	}
	if *resourceDir != "" {
		cfg.ResourceDir = *resourceDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *serverLogDir != "" {
		cfg.ServerLogDir = *serverLogDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func wailsLogLevel(cfg *config.Config) logger.LogLevel {
	if cfg.IsDevelopment() {
		return logger.DEBUG
	}
	return logger.INFO
}
