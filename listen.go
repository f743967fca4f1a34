package cyprus

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// ResolvePort returns the port Listen binds for the given value: 0 selects 443 when TLS is
// configured and 80 otherwise.
func (a *App) ResolvePort(port int) int {
	if port != 0 {
		return port
	}

	if a.IsSecure() {
		return 443
	}

	return 80
}

// Listen binds the port, calls callback with the bound port once the listener is open and then serves
// until [App.Shutdown] is called. Binding failures are returned without calling callback.
func (a *App) Listen(port int, callback func(port int, secure bool)) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(a.ResolvePort(port)))
	if err != nil {
		return errors.Wrap(err, "listen")
	}

	return a.Serve(ln, callback)
}

// Serve is like Listen but accepts connections on a listener the caller opened.
func (a *App) Serve(ln net.Listener, callback func(port int, secure bool)) error {
	var handler http.Handler = a
	if a.wrap != nil {
		handler = a.wrap(a)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	var port int
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	a.mu.Lock()
	a.srv, a.port = srv, port
	a.mu.Unlock()

	a.serving.Store(true)
	if callback != nil {
		callback(port, a.IsSecure())
	}

	if a.IsSecure() {
		err := srv.ServeTLS(ln, a.certFile, a.keyFile)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return errors.Wrap(err, "serve tls")
	}

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}

	return nil
}

// Port returns the port the app is serving on, 0 before Listen or Serve was called.
func (a *App) Port() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.port
}

// Shutdown gracefully stops the server started by Listen or Serve.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	srv := a.srv
	a.mu.Unlock()

	if srv == nil {
		return nil
	}

	return errors.Wrap(srv.Shutdown(ctx), "shutdown")
}
