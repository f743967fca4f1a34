package appfx

import (
	"net/http"

	"github.com/advdv/cyprus"
	"github.com/carlmjohnson/requests"
)

// Runtime provides access to app-scoped dependencies.
// Inject this into handler constructors via fx instead of pulling from context.
//
// Example:
//
//	type Handlers struct {
//	    rt *appfx.Runtime[Env]
//	}
//
//	func NewHandlers(rt *appfx.Runtime[Env]) *Handlers {
//	    return &Handlers{rt: rt}
//	}
//
//	func (h *Handlers) ShowUser(req *cyprus.Request, res *cyprus.Response, _ cyprus.Next) error {
//	    self, _ := h.rt.Reverse("show-user", req.Param("id"))
//	    // ...
//	}
type Runtime[E Environment] struct {
	env       E
	app       *cyprus.App
	transport http.RoundTripper
}

// NewRuntime creates a new Runtime with the given dependencies.
func NewRuntime[E Environment](env E, app *cyprus.App, transport http.RoundTripper) *Runtime[E] {
	return &Runtime[E]{env: env, app: app, transport: transport}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Reverse returns the path for a named pattern with the given parameters.
// The pattern must have been named with [cyprus.App.Named].
func (r *Runtime[E]) Reverse(name string, params ...string) (string, error) {
	return r.app.Reverse(name, params...)
}

// NewRequest returns a request builder whose outbound calls are traced.
func (r *Runtime[E]) NewRequest() *requests.Builder {
	return newRequestBuilder(r.transport)
}
