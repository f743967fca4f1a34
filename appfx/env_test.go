package appfx_test

import (
	"os"
	"testing"

	"github.com/advdv/cyprus/appfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type customEnv struct {
	appfx.BaseEnvironment
	MainTableName string `env:"MAIN_TABLE_NAME,required"`
}

func TestParseEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CYPRUS_SERVICE_NAME", "svc")

		env, err := appfx.ParseEnv[appfx.BaseEnvironment]()()
		require.NoError(t, err)
		assert.Equal(t, appfx.BaseEnvironment{
			ServiceName:  "svc",
			LogLevel:     zapcore.InfoLevel,
			OtelExporter: "none",
			NotFoundPage: "./404.html",
		}, env)
	})

	t.Run("all values", func(t *testing.T) {
		t.Setenv("CYPRUS_SERVICE_NAME", "svc")
		t.Setenv("CYPRUS_PORT", "8443")
		t.Setenv("CYPRUS_REMOVE_BRANDING", "true")
		t.Setenv("CYPRUS_TLS_CERT_FILE", "cert.pem")
		t.Setenv("CYPRUS_TLS_KEY_FILE", "key.pem")
		t.Setenv("CYPRUS_STATIC_BUCKET", "assets")
		t.Setenv("CYPRUS_STATIC_PREFIX", "public")

		env, err := appfx.ParseEnv[appfx.BaseEnvironment]()()
		require.NoError(t, err)
		assert.Equal(t, 8443, env.Port)
		assert.True(t, env.RemoveBranding)
		assert.Equal(t, "cert.pem", env.TLSCertFile)
		assert.Equal(t, "key.pem", env.TLSKeyFile)
		assert.Equal(t, "assets", env.StaticBucket)
		assert.Equal(t, "public", env.StaticPrefix)
	})

	t.Run("missing service name", func(t *testing.T) {
		t.Setenv("CYPRUS_SERVICE_NAME", "")
		require.NoError(t, os.Unsetenv("CYPRUS_SERVICE_NAME"))

		_, err := appfx.ParseEnv[appfx.BaseEnvironment]()()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CYPRUS_SERVICE_NAME")
	})

	t.Run("custom fields", func(t *testing.T) {
		t.Setenv("CYPRUS_SERVICE_NAME", "svc")
		t.Setenv("MAIN_TABLE_NAME", "items")

		env, err := appfx.ParseEnv[customEnv]()()
		require.NoError(t, err)
		assert.Equal(t, "items", env.MainTableName)
		assert.Equal(t, "svc", env.ServiceName)
	})
}
