package cyprus

import (
	"net/http"
	"net/url"

	"goji.io/v3/pat"
	"goji.io/v3/pattern"
)

// Params holds the named values a pattern extracted from the request path.
type Params map[string]string

// Pattern decides whether a request path matches and extracts its named parameters.
type Pattern interface {
	Match(r *http.Request) (Params, bool)
}

// NewPattern returns a Pattern for Sinatra-style descriptions such as "/users/:id" or "/assets/*".
// Matching only considers the path, never the method or the query string.
func NewPattern(s string) Pattern {
	return gojiPattern{pat.New(s)}
}

type gojiPattern struct{ p *pat.Pattern }

func (g gojiPattern) Match(r *http.Request) (Params, bool) {
	mr := g.p.Match(r)
	if mr == nil {
		return nil, false
	}

	params := Params{}
	vars, _ := mr.Context().Value(pattern.AllVariables).(map[pattern.Variable]any)
	for name, val := range vars {
		raw, _ := val.(string)
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}

		params[string(name)] = raw
	}

	return params, true
}

// matchable prepares r so goji patterns see the escaped path. Done once per request.
func matchable(r *http.Request) *http.Request {
	return r.WithContext(pattern.SetPath(r.Context(), r.URL.EscapedPath()))
}
