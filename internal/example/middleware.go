// Package example implements example middleware in an outside package.
package example

import (
	"context"

	"github.com/advdv/cyprus"
	"go.uber.org/zap"
)

// ctxKey type scopes middlware values.
type ctxKey string

// Middleware provides an example for middleware that adds a request-scoped logger to the context.
func Middleware(logs *zap.Logger) cyprus.HandlerFunc {
	return func(req *cyprus.Request, _ *cyprus.Response, next cyprus.Next) error {
		logs := logs.With(zap.String("method", req.Method()), zap.String("path", req.Path()))
		req.SetContext(context.WithValue(req.Context(), ctxKey("zap"), logs))

		return next()
	}
}

// Log returns the logger stored by [Middleware], or a no-op logger if there is none.
func Log(ctx context.Context) *zap.Logger {
	v, ok := ctx.Value(ctxKey("zap")).(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}

	return v
}
