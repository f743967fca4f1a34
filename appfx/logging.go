package appfx

import (
	"github.com/advdv/cyprus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment.
// Uses JSON encoding, CYPRUS_LOG_LEVEL controls the level (debug, info, warn, error).
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogHandlerFailure(err error) {
	l.Logger.Error("handler failure", zap.Error(err))
}

func (l zapLogger) LogSendError(err error) {
	l.Logger.Error("error while sending response", zap.Error(err))
}

func newZapCyprusLogger(l *zap.Logger) cyprus.Logger {
	return zapLogger{l.Named("cyprus").Named("appfx")}
}
