package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerOnce   sync.Once
)

// InitLogger initializes the process-wide logger once. Later calls are ignored.
func InitLogger(opts LoggerOptions) error {
	var initErr error
	loggerOnce.Do(func() {
		logger, err := NewLogger(opts)
		if err != nil {
			initErr = err
			return
		}
		globalLogger = logger
	})
	return initErr
}

// Log returns the process-wide logger, or a discarding logger before InitLogger
func Log() LoggerInterface {
	if globalLogger != nil {
		return globalLogger
	}
	return nopLogger{}
}

// CloseLogger flushes and closes the process-wide logger outputs
func CloseLogger() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

func LogInfo(msg string, fields ...Field) {
	Log().Info(msg, fields...)
}

func LogInfof(format string, args ...interface{}) {
	Log().Infof(format, args...)
}

func LogDebug(msg string, fields ...Field) {
	Log().Debug(msg, fields...)
}

func LogDebugf(format string, args ...interface{}) {
	Log().Debugf(format, args...)
}

func LogWarn(msg string, fields ...Field) {
	Log().Warn(msg, fields...)
}

func LogWarnf(format string, args ...interface{}) {
	Log().Warnf(format, args...)
}

func LogError(msg string, fields ...Field) {
	Log().Error(msg, fields...)
}

func LogErrorf(format string, args ...interface{}) {
	Log().Errorf(format, args...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Info(string, ...Field) {}
func (nopLogger) Infof(string, ...interface{}) {}
func (nopLogger) Warn(string, ...Field) {}
func (nopLogger) Warnf(string, ...interface{}) {}
func (nopLogger) Error(string, ...Field) {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (n nopLogger) With(...Field) LoggerInterface { return n }
func (nopLogger) SetLevel(LogLevel) {}
func (nopLogger) AddOutput(Output) {}
func (nopLogger) Close() error { return nil }
