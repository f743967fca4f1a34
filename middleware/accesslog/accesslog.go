// Package accesslog provides middleware that writes one log line per request.
package accesslog

import (
	"time"

	"github.com/advdv/cyprus"
	"go.uber.org/zap"
)

// Middleware logs the client ip, method and url of every request. Register it with
// [cyprus.App.Use] before the routes it should cover. The line is written once the rest of the chain
// returned so it also carries the status and duration.
func Middleware(logs *zap.Logger) cyprus.HandlerFunc {
	logs = logs.Named("access")

	return func(req *cyprus.Request, res *cyprus.Response, next cyprus.Next) error {
		start := time.Now()
		err := next()

		fields := []zap.Field{
			zap.String("ip", req.RemoteIP()),
			zap.String("method", req.Method()),
			zap.String("url", req.URL()),
			zap.Int("status", res.StatusCode()),
			zap.Duration("duration", time.Since(start)),
		}

		if err != nil {
			logs.Warn("request failed", append(fields, zap.Error(err))...)
			return err
		}

		logs.Info("request", fields...)

		return nil
	}
}
