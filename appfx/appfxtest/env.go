package appfxtest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [appfx.BaseEnvironment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets all [appfx.BaseEnvironment] env vars to sensible test defaults.
// Port is required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - CYPRUS_SERVICE_NAME: "test"
//   - CYPRUS_OTEL_EXPORTER: "none"
//   - CYPRUS_REMOVE_BRANDING: "true"
//   - AWS_REGION: "us-east-1"
//   - AWS_ACCESS_KEY_ID: "test"
//   - AWS_SECRET_ACCESS_KEY: "test"
//
// Use the returned [Env] to override individual values:
//
//	appfxtest.SetBaseEnv(t, 18085).ServiceName("svc").StaticDir(dir)
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("CYPRUS_PORT", strconv.Itoa(port))
	t.Setenv("CYPRUS_SERVICE_NAME", "test")
	t.Setenv("CYPRUS_OTEL_EXPORTER", "none")
	t.Setenv("CYPRUS_REMOVE_BRANDING", "true")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	return &Env{t: t}
}

// ServiceName overrides CYPRUS_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("CYPRUS_SERVICE_NAME", name)
	return e
}

// Branding re-enables the X-Powered-By header and the 404 page at path.
func (e *Env) Branding(notFoundPage string) *Env {
	e.t.Helper()
	e.t.Setenv("CYPRUS_REMOVE_BRANDING", "false")
	e.t.Setenv("CYPRUS_NOT_FOUND_PAGE", notFoundPage)
	return e
}

// StaticDir overrides CYPRUS_STATIC_DIR.
func (e *Env) StaticDir(dir string) *Env {
	e.t.Helper()
	e.t.Setenv("CYPRUS_STATIC_DIR", dir)
	return e
}

// StaticBucket overrides CYPRUS_STATIC_BUCKET and CYPRUS_STATIC_PREFIX.
func (e *Env) StaticBucket(bucket, prefix string) *Env {
	e.t.Helper()
	e.t.Setenv("CYPRUS_STATIC_BUCKET", bucket)
	e.t.Setenv("CYPRUS_STATIC_PREFIX", prefix)
	return e
}
