// Package cyprus provides a small HTTP request-dispatch layer with continuation-style handler chains.
//
// # Overview
//
// An [App] keeps an ordered registry of routes and middleware. For every request it selects the
// entries that match, concatenates their functions in registration order and runs them one after
// another. Each function either completes the response or hands the request on by calling next:
//
//	app := cyprus.New()
//	app.Use(accesslog.Middleware(logger))
//	app.Get("/users/:id", func(req *cyprus.Request, res *cyprus.Response, next cyprus.Next) error {
//	    return res.Status(http.StatusOK).SendString("user:" + req.Param("id"))
//	})
//
//	if err := app.Listen(8080, nil); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handler Signature
//
//	func(req *cyprus.Request, res *cyprus.Response, next cyprus.Next) error
//
// A function that neither sends nor calls next ends the chain. Calling next returns whatever the
// rest of the chain returned, so middleware can act after the downstream functions ran.
//
// # Matching
//
// Middleware match every request. Routes match when the method is equal, ignoring case, and the
// path matches the pattern. Patterns use named segments and an optional trailing wildcard:
//
//	/users/:id
//	/assets/*
//
// The parameters of all matching routes are merged in match order. When two routes define the same
// name the later one wins.
//
// # Request
//
// [Request] exposes the method, URL, path parameters and remote address directly. Headers, cookies
// and the body are read on first use and cached. A body sent with content-type "application/json"
// is parsed into a structured value; anything else is returned as text.
//
// # Response
//
// [Response] accumulates the status and headers until [Response.Send], [Response.SendString],
// [Response.SendStream] or [Response.SendFile] transmits them. Only the first send counts; later
// sends return [ErrAlreadySent].
//
// # Error Handling
//
// Errors returned by a function, and panics, are contained per request. When nothing was sent yet
// the accumulated status and headers are discarded and a plain-text response is written:
//
//   - [*Error] (created with [NewError]): uses the error's code
//   - Other errors: 500 Internal Server Error
//
// The body carries the error's detail. Failures after a send are only logged. Work started on other
// goroutines is not covered.
//
// # Not Found
//
// Every chain ends with a terminator that answers 404 when no function sent a response. By default
// it sends ./404.html and every response carries the X-Powered-By header. [WithRemoveBranding]
// switches to an empty text/plain 404 without the header.
//
// # Named Patterns
//
// Patterns can be named for path generation, avoiding hardcoded paths:
//
//	app.Get(app.Named("get-user", "/users/:id"), getUser)
//	path, err := app.Reverse("get-user", "123") // "/users/123"
package cyprus
