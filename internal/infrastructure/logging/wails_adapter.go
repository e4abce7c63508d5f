package logging

// WailsLoggerAdapter routes Wails runtime logging through our Logger.
// It satisfies github.com/wailsapp/wails/v2/pkg/logger.Logger.
type WailsLoggerAdapter struct {
	logger Logger
}

// NewWailsLoggerAdapter creates a new Wails logger adapter
func NewWailsLoggerAdapter(logger Logger) *WailsLoggerAdapter {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &WailsLoggerAdapter{
		logger: logger,
	}
}

func (w *WailsLoggerAdapter) Print(message string) {
	w.logger.Info(message, "component", "wails")
}

func (w *WailsLoggerAdapter) Trace(message string) {
	w.logger.Debug(message, "component", "wails", "trace", true)
}

func (w *WailsLoggerAdapter) Debug(message string) {
	w.logger.Debug(message, "component", "wails")
}

func (w *WailsLoggerAdapter) Info(message string) {
	w.logger.Info(message, "component", "wails")
}

func (w *WailsLoggerAdapter) Warning(message string) {
	w.logger.Warn(message, "component", "wails")
}

func (w *WailsLoggerAdapter) Error(message string) {
	w.logger.Error(message, "component", "wails")
}

// Fatal is logged at error level; exiting is left to Wails itself
func (w *WailsLoggerAdapter) Fatal(message string) {
	w.logger.Error(message, "component", "wails", "fatal", true)
}
