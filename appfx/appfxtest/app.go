// Package appfxtest provides test helpers for appfx applications.
//
// It constructs the identical DI graph as [appfx.NewApp] but uses
// [fxtest.App] which fails the test immediately on DI errors.
//
// Example:
//
//	appfxtest.SetBaseEnv(t, 18081)
//	app := appfxtest.New[TestEnv](t, routing, appfx.WithFx(...))
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package appfxtest

import (
	"testing"

	"github.com/advdv/cyprus/appfx"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing appfx applications.
type App struct {
	*fxtest.App
}

// New creates a test app with the same DI graph as [appfx.NewApp].
func New[E appfx.Environment](t testing.TB, routing any, opts ...appfx.Option) *App {
	return &App{App: fxtest.New(t, appfx.FxOptions[E](routing, opts...)...)}
}
