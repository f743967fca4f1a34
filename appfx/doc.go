// Package appfx provides a batteries-included setup for running a cyprus app as a service.
//
// # Overview
//
// appfx handles the boilerplate around a [cyprus.App]: environment parsing, structured logging,
// OpenTelemetry tracing, AWS SDK clients, static assets and graceful shutdown. A complete
// application can be created in a single call:
//
//	appfx.NewApp[Env](func(a *cyprus.App, h *Handlers) {
//	    a.Get("/items", h.ListItems)
//	    a.Get(a.Named("get-item", "/items/:id"), h.GetItem)
//	},
//	    appfx.WithFx(fx.Provide(NewHandlers)),
//	).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    appfx.BaseEnvironment
//	    MainTableName string `env:"MAIN_TABLE_NAME,required"`
//	}
//
// BaseEnvironment provides the following environment variables:
//
//	| Variable               | Required | Default    | Description                                  |
//	|------------------------|----------|------------|----------------------------------------------|
//	| CYPRUS_SERVICE_NAME    | Yes      | -          | Service name for logging and tracing         |
//	| CYPRUS_PORT            | No       | 0          | Port to listen on, 0 means 443 or 80         |
//	| CYPRUS_LOG_LEVEL       | No       | info       | Log level (debug, info, warn, error)         |
//	| CYPRUS_OTEL_EXPORTER   | No       | none       | Trace exporter: "none" or "stdout"           |
//	| CYPRUS_REMOVE_BRANDING | No       | false      | Omit X-Powered-By and the 404 page           |
//	| CYPRUS_TLS_CERT_FILE   | No       | -          | Certificate file, TLS needs both files       |
//	| CYPRUS_TLS_KEY_FILE    | No       | -          | Key file                                     |
//	| CYPRUS_NOT_FOUND_PAGE  | No       | ./404.html | Page sent with branded 404 responses         |
//	| CYPRUS_STATIC_DIR      | No       | -          | Directory served ahead of the routes         |
//	| CYPRUS_STATIC_BUCKET   | No       | -          | S3 bucket served ahead of the routes         |
//	| CYPRUS_STATIC_PREFIX   | No       | -          | Key prefix within CYPRUS_STATIC_BUCKET       |
//
// A static directory or bucket that does not exist fails the app on start.
//
// # Runtime
//
// [Runtime] provides access to app-scoped dependencies and should be injected into handler
// constructors via fx:
//
//   - [Runtime.Env] returns the typed environment configuration
//   - [Runtime.Reverse] generates paths for named patterns
//   - [Runtime.NewRequest] starts a traced outbound request
//
// # Context
//
// Request-scoped values are read from the request's context:
//
//	func (h *Handlers) GetItem(req *cyprus.Request, res *cyprus.Response, _ cyprus.Next) error {
//	    appfx.Log(req.Context()).Info("fetching item")
//	    appfx.Span(req.Context()).AddEvent("fetching item")
//	    // ...
//	}
//
// # Tracing
//
// Spans are exported according to CYPRUS_OTEL_EXPORTER. The tracer provider and propagator are
// injected explicitly (no globals), both into the server handler and into the AWS SDK config.
//
// # AWS Clients
//
// AWS SDK v2 clients are registered with [WithAWSClient] and injected directly into handler
// constructors via fx:
//
//	appfx.WithAWSClient(func(cfg aws.Config) *s3.Client {
//	    return s3.NewFromConfig(cfg)
//	})
package appfx
