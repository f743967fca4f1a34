package cyprus

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about failures the dispatcher contains.
type Logger interface {
	LogHandlerFailure(err error)
	LogSendError(err error)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogHandlerFailure(err error) {
	l.Logger.Printf("cyprus: handler failure: %+v", err)
}

func (l stdLogger) LogSendError(err error) {
	l.Logger.Printf("cyprus: error while sending response: %s", err)
}

// NewStdLogger adapts a standard library logger. A nil logger uses [log.Default].
func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}

	return stdLogger{l}
}

type TestLogger struct {
	tb testing.TB

	NumLogHandlerFailure int64
	NumLogSendError      int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogHandlerFailure(err error) {
	atomic.AddInt64(&l.NumLogHandlerFailure, 1)
	l.tb.Logf("cyprus: handler failure: %s", err)
}

func (l *TestLogger) LogSendError(err error) {
	atomic.AddInt64(&l.NumLogSendError, 1)
	l.tb.Logf("cyprus: error while sending response: %s", err)
}

var _ Logger = &TestLogger{}
