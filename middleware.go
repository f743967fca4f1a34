package cyprus

// Use registers every function as its own middleware entry. Middleware run for all requests, in
// registration order relative to routes: a middleware registered after a route runs after that
// route's functions, provided they call next.
func (a *App) Use(fns ...HandlerFunc) *App {
	a.ensureNotServing()
	ensureHandlers(fns)

	for _, fn := range fns {
		a.entries = append(a.entries, entry{kind: middlewareEntry, fns: []HandlerFunc{fn}})
	}

	return a
}
