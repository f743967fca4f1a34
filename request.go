package cyprus

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/charmap"
)

// HTTPVersion describes the protocol version of a request.
type HTTPVersion struct {
	Full  string
	Major int
	Minor int
}

// Request is the per-request view handed to every function of a chain. Headers, cookies and the body
// are computed on first access and cached for the rest of the request.
type Request struct {
	raw    *http.Request
	params Params

	headers func() map[string]string
	cookies func() map[string]string
	rawBody func() ([]byte, error)
	body    func() (any, error)
}

func newRequest(raw *http.Request, params Params) *Request {
	req := &Request{raw: raw, params: params}
	req.headers = sync.OnceValue(req.readHeaders)
	req.cookies = sync.OnceValue(req.readCookies)
	req.rawBody = sync.OnceValues(req.readRawBody)
	req.body = sync.OnceValues(req.decodeBody)

	return req
}

// Method returns the request method as sent by the client.
func (r *Request) Method() string { return r.raw.Method }

// URL returns the request URI, including the query string.
func (r *Request) URL() string { return r.raw.URL.RequestURI() }

// Path returns the decoded request path.
func (r *Request) Path() string { return r.raw.URL.Path }

// RemoteAddress returns the network address of the client.
func (r *Request) RemoteAddress() string { return r.raw.RemoteAddr }

// RemoteIP returns the host part of [Request.RemoteAddress].
func (r *Request) RemoteIP() string {
	host, _, err := net.SplitHostPort(r.raw.RemoteAddr)
	if err != nil {
		return r.raw.RemoteAddr
	}

	return host
}

// HTTPVersion returns the protocol version the request was sent with.
func (r *Request) HTTPVersion() HTTPVersion {
	return HTTPVersion{Full: r.raw.Proto, Major: r.raw.ProtoMajor, Minor: r.raw.ProtoMinor}
}

// Params returns the parameters of every matched route, merged in match order.
func (r *Request) Params() Params { return r.params }

// Param returns a single path parameter, or "" if no matched route defined it.
func (r *Request) Param(name string) string { return r.params[name] }

// Context returns the request's context.
func (r *Request) Context() context.Context { return r.raw.Context() }

// SetContext replaces the request's context for the functions further down the chain.
func (r *Request) SetContext(ctx context.Context) {
	r.raw = r.raw.WithContext(ctx)
}

// Headers returns the request headers keyed by their lowercased name. Repeated headers are joined
// with ", ".
func (r *Request) Headers() map[string]string { return r.headers() }

// Cookies returns the cookies sent with the request, or nil when no Cookie header is present.
func (r *Request) Cookies() map[string]string { return r.cookies() }

// RawBody returns the request payload. The transport body is read at most once.
func (r *Request) RawBody() ([]byte, error) { return r.rawBody() }

// Body returns the payload decoded one character per byte. When the content-type is exactly
// "application/json" the decoded text is parsed and the structured value is returned instead.
// A malformed JSON body yields an error marked with [ErrBodyDecode].
func (r *Request) Body() (any, error) { return r.body() }

// BodyPath looks up a gjson path in a JSON body.
func (r *Request) BodyPath(path string) (gjson.Result, error) {
	text, err := r.bodyText()
	if err != nil {
		return gjson.Result{}, err
	}

	if !gjson.Valid(text) {
		return gjson.Result{}, errors.Mark(errors.New("body is not valid JSON"), ErrBodyDecode)
	}

	return gjson.Get(text, path), nil
}

func (r *Request) readHeaders() map[string]string {
	headers := make(map[string]string, len(r.raw.Header)+1)
	for key, vals := range r.raw.Header {
		headers[strings.ToLower(key)] = strings.Join(vals, ", ")
	}

	if _, ok := headers["host"]; !ok && r.raw.Host != "" {
		headers["host"] = r.raw.Host
	}

	return headers
}

func (r *Request) readCookies() map[string]string {
	header := strings.Join(r.raw.Header.Values("Cookie"), "; ")
	if header == "" {
		return nil
	}

	cookies := map[string]string{}
	for _, segment := range strings.Split(header, ";") {
		if strings.TrimSpace(segment) == "" {
			continue
		}

		key, value, _ := strings.Cut(segment, "=")
		cookies[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return cookies
}

func (r *Request) readRawBody() ([]byte, error) {
	if r.raw.Body == nil {
		return []byte{}, nil
	}

	data, err := io.ReadAll(r.raw.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}

	return data, nil
}

func (r *Request) bodyText() (string, error) {
	data, err := r.RawBody()
	if err != nil {
		return "", err
	}

	text, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrap(err, "decode request body")
	}

	return string(text), nil
}

func (r *Request) decodeBody() (any, error) {
	text, err := r.bodyText()
	if err != nil {
		return nil, err
	}

	if r.Headers()["content-type"] != string(MimeJSON) {
		return text, nil
	}

	if !gjson.Valid(text) {
		return nil, errors.Mark(errors.Newf("invalid JSON body of %d bytes", len(text)), ErrBodyDecode)
	}

	return gjson.Parse(text).Value(), nil
}
