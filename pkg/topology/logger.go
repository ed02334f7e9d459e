package topology

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the package logger. It defaults to a no-op logger.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger used by the package. Pass nil to
// restore silent operation. Safe for concurrent use.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

func logger() *zap.Logger {
	return loggerPtr.Load()
}
