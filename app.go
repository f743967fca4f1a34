package cyprus

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/advdv/cyprus/internal/httppattern"
)

// DefaultNotFoundPage is the file sent with 404 responses while branding is enabled.
const DefaultNotFoundPage = "./404.html"

// Next continues with the next function of the chain and returns whatever the rest of the chain
// returned.
type Next func() error

// HandlerFunc is a single function of a request chain. It either completes the response with one
// of the terminal send methods or calls next to hand the request to the following function.
// Returning an error, or panicking, hands the request to the failure boundary.
type HandlerFunc func(req *Request, res *Response, next Next) error

type entryKind int

const (
	routeEntry entryKind = iota
	middlewareEntry
)

// entry is either a method-scoped route or an unscoped middleware.
type entry struct {
	kind    entryKind
	method  string
	pattern Pattern
	fns     []HandlerFunc
}

// match returns the parameters a route extracted. Middleware always match, without parameters.
func (e entry) match(r *http.Request) (Params, bool) {
	if e.kind == middlewareEntry {
		return nil, true
	}

	if !strings.EqualFold(e.method, r.Method) {
		return nil, false
	}

	return e.pattern.Match(r)
}

// App holds the ordered registry of routes and middleware and dispatches requests through them.
type App struct {
	logs           Logger
	removeBranding bool
	notFoundPage   string
	certFile       string
	keyFile        string
	wrap           func(http.Handler) http.Handler
	reverser       *Reverser

	entries []entry
	serving atomic.Bool

	mu   sync.Mutex
	srv  *http.Server
	port int
}

// Option configures the App.
type Option func(*App)

// WithRemoveBranding omits the X-Powered-By header and answers unmatched requests with an empty
// text/plain 404 instead of the not-found page.
func WithRemoveBranding(remove bool) Option {
	return func(a *App) { a.removeBranding = remove }
}

// WithTLS makes Listen serve TLS using the given certificate and key files.
func WithTLS(certFile, keyFile string) Option {
	return func(a *App) { a.certFile, a.keyFile = certFile, keyFile }
}

// WithLogger sets the logger that receives contained failures.
func WithLogger(logs Logger) Option {
	return func(a *App) { a.logs = logs }
}

// WithNotFoundPage sets the file sent with branded 404 responses.
func WithNotFoundPage(path string) Option {
	return func(a *App) { a.notFoundPage = path }
}

// WithServerHandler wraps the handler that Listen and Serve hand to the transport, for example to add
// tracing. ServeHTTP itself is not affected.
func WithServerHandler(wrap func(http.Handler) http.Handler) Option {
	return func(a *App) { a.wrap = wrap }
}

// New creates an App with an empty registry.
func New(opts ...Option) *App {
	app := &App{
		logs:         NewStdLogger(log.Default()),
		notFoundPage: DefaultNotFoundPage,
		reverser:     NewReverser(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// IsSecure reports whether a TLS certificate and key were configured.
func (a *App) IsSecure() bool { return a.certFile != "" && a.keyFile != "" }

// Route registers fns for requests with the given method whose path matches pattern.
func (a *App) Route(method, pattern string, fns ...HandlerFunc) *App {
	a.ensureNotServing()

	if method == "" {
		panic("cyprus: empty method for pattern " + pattern)
	}

	if _, err := httppattern.ParsePattern(pattern); err != nil {
		panic("cyprus: " + err.Error())
	}

	ensureHandlers(fns)
	a.entries = append(a.entries, entry{
		kind:    routeEntry,
		method:  method,
		pattern: NewPattern(pattern),
		fns:     fns,
	})

	return a
}

// Get registers fns for GET requests matching pattern.
func (a *App) Get(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodGet, pattern, fns...)
}

// Head registers fns for HEAD requests matching pattern.
func (a *App) Head(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodHead, pattern, fns...)
}

// Post registers fns for POST requests matching pattern.
func (a *App) Post(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodPost, pattern, fns...)
}

// Put registers fns for PUT requests matching pattern.
func (a *App) Put(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodPut, pattern, fns...)
}

// Delete registers fns for DELETE requests matching pattern.
func (a *App) Delete(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodDelete, pattern, fns...)
}

// Patch registers fns for PATCH requests matching pattern.
func (a *App) Patch(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodPatch, pattern, fns...)
}

// Options registers fns for OPTIONS requests matching pattern.
func (a *App) Options(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodOptions, pattern, fns...)
}

// Connect registers fns for CONNECT requests matching pattern.
func (a *App) Connect(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodConnect, pattern, fns...)
}

// Trace registers fns for TRACE requests matching pattern.
func (a *App) Trace(pattern string, fns ...HandlerFunc) *App {
	return a.Route(http.MethodTrace, pattern, fns...)
}

// Named registers name for pattern so it can be reversed, and returns the pattern unchanged:
//
//	app.Get(app.Named("user", "/users/:id"), showUser)
func (a *App) Named(name, pattern string) string {
	return a.reverser.Named(name, pattern)
}

// Reverse returns the path for a named pattern given its parameter values.
func (a *App) Reverse(name string, vals ...string) (string, error) {
	return a.reverser.Reverse(name, vals...)
}

func (a *App) ensureNotServing() {
	if a.serving.Load() {
		panic("cyprus: cannot register handlers after the app started serving")
	}
}

func ensureHandlers(fns []HandlerFunc) {
	if len(fns) == 0 {
		panic("cyprus: no handler functions given")
	}

	for _, fn := range fns {
		if fn == nil {
			panic("cyprus: nil handler function")
		}
	}
}
