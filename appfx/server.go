package appfx

import (
	"context"
	"net"
	"strconv"

	"github.com/advdv/cyprus"
	"github.com/advdv/cyprus/middleware/accesslog"
	"github.com/advdv/cyprus/middleware/static"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServerParams holds the dependencies for creating the cyprus app.
type ServerParams struct {
	fx.In

	Env        Environment
	Logger     *zap.Logger
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
	AWSConfig  aws.Config
	// Bucket overrides the S3 client used for CYPRUS_STATIC_BUCKET.
	Bucket static.BucketAPI `optional:"true"`
}

// NewServer creates the cyprus app with the environment's settings and the standard middleware:
// request-scoped dependencies, access logging and, when configured, static assets. Routes are
// registered afterwards by the routing function.
func NewServer(params ServerParams) (*cyprus.App, error) {
	certFile, keyFile := params.Env.tlsFiles()
	app := cyprus.New(
		cyprus.WithLogger(newZapCyprusLogger(params.Logger)),
		cyprus.WithRemoveBranding(params.Env.removeBranding()),
		cyprus.WithNotFoundPage(params.Env.notFoundPage()),
		cyprus.WithTLS(certFile, keyFile),
		// Add tracing with explicit provider injection (no globals).
		cyprus.WithServerHandler(withTracing(params.TracerProv, params.Propagator, params.Env.serviceName())),
	)

	app.Use(withRequestDep(&requestDep{logger: params.Logger}))
	app.Use(accesslog.Middleware(params.Logger))

	if dir := params.Env.staticDir(); dir != "" {
		fn, err := static.Dir(dir)
		if err != nil {
			return nil, err
		}

		app.Use(fn)
	}

	if bucket, prefix := params.Env.staticBucket(); bucket != "" {
		api := params.Bucket
		if api == nil {
			api = s3.NewFromConfig(params.AWSConfig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), awsConfigTimeout)
		defer cancel()

		fn, err := static.Bucket(ctx, api, bucket, prefix)
		if err != nil {
			return nil, err
		}

		app.Use(fn)
	}

	return app, nil
}

// startServerHook registers lifecycle hooks for the HTTP server. The port is bound during start so
// a taken port fails the app instead of a background goroutine.
func startServerHook(lc fx.Lifecycle, app *cyprus.App, env Environment, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", ":"+strconv.Itoa(app.ResolvePort(env.port())))
			if err != nil {
				return errors.Wrap(err, "listen")
			}

			go func() {
				if err := app.Serve(ln, func(port int, secure bool) {
					logger.Info("starting server", zap.Int("port", port), zap.Bool("secure", secure))
				}); err != nil {
					logger.Error("server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return app.Shutdown(ctx)
		},
	})
}
