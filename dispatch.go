package cyprus

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ServeHTTP dispatches r through every registered entry that matches it, in registration order,
// followed by the not-found terminator. It never lets a handler failure escape: errors and panics
// are turned into a response by the failure boundary.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.serving.Store(true)

	res := newResponse(w, !a.removeBranding)
	if err := contain(func() error { return a.dispatch(r, res) }); err != nil {
		a.fail(res, err)
	}

	// a chain that halted without sending still transmits the status and headers it gathered.
	if !res.Sent() {
		if err := res.Send(nil); err != nil {
			a.logs.LogSendError(err)
		}
	}
}

// dispatch builds the chain of functions for r and runs it.
func (a *App) dispatch(r *http.Request, res *Response) error {
	r = matchable(r)
	matched := lo.FilterMap(a.entries, func(e entry, _ int) (lo.Tuple2[entry, Params], bool) {
		params, ok := e.match(r)
		return lo.T2(e, params), ok
	})

	params := lo.Assign(lo.Map(matched, func(m lo.Tuple2[entry, Params], _ int) map[string]string {
		return m.B
	})...)

	chain := lo.FlatMap(matched, func(m lo.Tuple2[entry, Params], _ int) []HandlerFunc {
		return m.A.fns
	})
	chain = append(chain, a.notFound)

	req := newRequest(r, params)

	var run func(i int) error
	run = func(i int) error {
		if i >= len(chain) {
			return nil
		}

		return chain[i](req, res, func() error { return run(i + 1) })
	}

	return run(0)
}

// contain runs fn and turns a panic into an error. It wraps the whole chain so a panic unwinds past
// every function that called next. The abort sentinel of the transport is let through.
func contain(fn func() error) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}

		if p == http.ErrAbortHandler { //nolint:errorlint,err113
			panic(p)
		}

		err = panicError(p)
	}()

	return fn()
}

// fail answers a contained failure. When the response already went out the failure is only logged.
func (a *App) fail(res *Response, err error) {
	a.logs.LogHandlerFailure(err)
	if res.Sent() {
		return
	}

	code := int(CodeOf(err))
	if code == 0 {
		code = http.StatusInternalServerError
	}

	res.reset()
	res.Status(code).Mime(MimePlain)

	if serr := res.SendString(fmt.Sprintf("%+v", err)); serr != nil {
		a.logs.LogSendError(serr)
	}
}

// notFound terminates every chain. It is a no-op when an earlier function already responded.
func (a *App) notFound(_ *Request, res *Response, _ Next) error {
	if res.Sent() {
		return nil
	}

	res.Status(http.StatusNotFound)
	if a.removeBranding {
		return res.Mime(MimePlain).SendString("")
	}

	if err := res.Mime(MimeHTML).SendFile(a.notFoundPage); err != nil {
		return errors.Wrap(err, "send not found page")
	}

	return nil
}
