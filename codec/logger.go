package codec

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the codec package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the codec package's logger.
// This must be called before any encode or decode operations.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		debug = false
		return
	}
	logger = l
	debug = l.Core().Enabled(zap.DebugLevel)
}

// debug gates the per-operation trace lines; it follows the configured
// logger's level.
var debug = false

func debugf(format string, args ...any) {
	if debug {
		Logger().Sugar().Debugf(format, args...)
	}
}
