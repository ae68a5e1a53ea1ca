package ulogger

import (
	"sync"
	"testing"
)

// VerboseTestLogger routes every log line to t.Logf, so output only shows for failing or -v tests.
type VerboseTestLogger struct {
	t     testing.TB
	mutex sync.Mutex
}

func NewVerboseTestLogger(t testing.TB) *VerboseTestLogger {
	return &VerboseTestLogger{t: t}
}

func (l *VerboseTestLogger) LogLevel() int {
	return LevelDebug
}

func (l *VerboseTestLogger) SetLogLevel(_ string) {}

func (l *VerboseTestLogger) New(_ string, _ ...Option) Logger {
	return l
}

func (l *VerboseTestLogger) Duplicate(_ ...Option) Logger {
	return l
}

func (l *VerboseTestLogger) Debugf(format string, args ...interface{}) {
	l.logf("[DEBUG] "+format, args...)
}

func (l *VerboseTestLogger) Infof(format string, args ...interface{}) {
	l.logf("[INFO] "+format, args...)
}

func (l *VerboseTestLogger) Warnf(format string, args ...interface{}) {
	l.logf("[WARN] "+format, args...)
}

func (l *VerboseTestLogger) Errorf(format string, args ...interface{}) {
	l.logf("[ERROR] "+format, args...)
}

func (l *VerboseTestLogger) Fatalf(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.t.Fatalf("[FATAL] "+format, args...)
}

func (l *VerboseTestLogger) logf(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.t.Logf(format, args...)
}
