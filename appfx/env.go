package appfx

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	logLevel() zapcore.Level
	otelExporter() string
	removeBranding() bool
	tlsFiles() (certFile, keyFile string)
	notFoundPage() string
	staticDir() string
	staticBucket() (bucket, prefix string)
}

// BaseEnvironment contains the environment variables every app reads.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	Port           int           `env:"CYPRUS_PORT" envDefault:"0"`
	ServiceName    string        `env:"CYPRUS_SERVICE_NAME,required"`
	LogLevel       zapcore.Level `env:"CYPRUS_LOG_LEVEL" envDefault:"info"`
	OtelExporter   string        `env:"CYPRUS_OTEL_EXPORTER" envDefault:"none"`
	RemoveBranding bool          `env:"CYPRUS_REMOVE_BRANDING" envDefault:"false"`
	TLSCertFile    string        `env:"CYPRUS_TLS_CERT_FILE"`
	TLSKeyFile     string        `env:"CYPRUS_TLS_KEY_FILE"`
	NotFoundPage   string        `env:"CYPRUS_NOT_FOUND_PAGE" envDefault:"./404.html"`
	// StaticDir, when set, serves the files below it ahead of the routes.
	StaticDir string `env:"CYPRUS_STATIC_DIR"`
	// StaticBucket, when set, serves objects under StaticPrefix from this S3 bucket.
	StaticBucket string `env:"CYPRUS_STATIC_BUCKET"`
	StaticPrefix string `env:"CYPRUS_STATIC_PREFIX"`
}

func (e BaseEnvironment) port() int {
	return e.Port
}

func (e BaseEnvironment) serviceName() string {
	return e.ServiceName
}

func (e BaseEnvironment) logLevel() zapcore.Level {
	return e.LogLevel
}

func (e BaseEnvironment) otelExporter() string {
	return e.OtelExporter
}

func (e BaseEnvironment) removeBranding() bool {
	return e.RemoveBranding
}

func (e BaseEnvironment) tlsFiles() (string, string) {
	return e.TLSCertFile, e.TLSKeyFile
}

func (e BaseEnvironment) notFoundPage() string {
	return e.NotFoundPage
}

func (e BaseEnvironment) staticDir() string {
	return e.StaticDir
}

func (e BaseEnvironment) staticBucket() (string, string) {
	return e.StaticBucket, e.StaticPrefix
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}
		return e, nil
	}
}
