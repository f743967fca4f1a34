// Package httppattern parses the ":name" path patterns used for routing so they can be validated at
// registration time and reversed into concrete paths.
package httppattern

import (
	"net/url"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenParam
	tokenWildcard
)

type token struct {
	kind  tokenKind
	value string
}

// Pattern is a parsed path pattern.
type Pattern struct {
	str    string
	tokens []token
}

// ParsePattern parses a pattern such as "/users/:id" or "/assets/*".
func ParsePattern(s string) (*Pattern, error) {
	if s == "" {
		return nil, errors.New("empty pattern")
	}

	if s[0] != '/' {
		return nil, errors.Newf("pattern %q must start with '/'", s)
	}

	pat := &Pattern{str: s}
	rest, wildcard := strings.CutSuffix(s, "*")
	if wildcard && !strings.HasSuffix(rest, "/") {
		return nil, errors.Newf("pattern %q may only end with a \"/*\" wildcard", s)
	}

	for rest != "" {
		idx := strings.IndexByte(rest, ':')
		if idx < 0 {
			pat.tokens = append(pat.tokens, token{kind: tokenLiteral, value: rest})
			break
		}

		if idx > 0 {
			pat.tokens = append(pat.tokens, token{kind: tokenLiteral, value: rest[:idx]})
		}

		name := rest[idx+1:]
		end := strings.IndexFunc(name, func(r rune) bool { return !isNameRune(r) })
		if end < 0 {
			end = len(name)
		}

		if end == 0 {
			return nil, errors.Newf("pattern %q has a parameter without a name", s)
		}

		if slices.Contains(pat.Params(), name[:end]) {
			return nil, errors.Newf("pattern %q repeats parameter %q", s, name[:end])
		}

		pat.tokens = append(pat.tokens, token{kind: tokenParam, value: name[:end]})
		rest = name[end:]
	}

	for _, tok := range pat.tokens {
		if tok.kind == tokenLiteral && strings.Contains(tok.value, "*") {
			return nil, errors.Newf("pattern %q may only end with a \"/*\" wildcard", s)
		}
	}

	if wildcard {
		pat.tokens = append(pat.tokens, token{kind: tokenWildcard})
	}

	return pat, nil
}

// String returns the pattern as it was parsed.
func (p *Pattern) String() string { return p.str }

// Params returns the parameter names in the order they appear.
func (p *Pattern) Params() []string {
	var names []string
	for _, tok := range p.tokens {
		if tok.kind == tokenParam {
			names = append(names, tok.value)
		}
	}

	return names
}

// Build substitutes vals for the parameters of p, in order. A trailing wildcard consumes one
// extra value that is inserted as-is.
func Build(p *Pattern, vals ...string) (string, error) {
	var (
		bld strings.Builder
		idx int
	)

	for _, tok := range p.tokens {
		switch tok.kind {
		case tokenLiteral:
			bld.WriteString(tok.value)
		case tokenParam, tokenWildcard:
			if idx >= len(vals) {
				return "", errors.Newf("not enough values to build %q: got %d", p.str, len(vals))
			}

			if tok.kind == tokenParam {
				bld.WriteString(url.PathEscape(vals[idx]))
			} else {
				bld.WriteString(strings.TrimPrefix(vals[idx], "/"))
			}
			idx++
		}
	}

	if idx < len(vals) {
		return "", errors.Newf("too many values to build %q: got %d, want %d", p.str, len(vals), idx)
	}

	return bld.String(), nil
}

func isNameRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
