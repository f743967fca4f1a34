package cyprus

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Response accumulates a status code and headers until one of the terminal send methods transmits
// them, together with the payload, to the client.
type Response struct {
	w        http.ResponseWriter
	branding bool

	status  int
	headers [][2]string
	sent    bool
}

func newResponse(w http.ResponseWriter, branding bool) *Response {
	return &Response{w: w, branding: branding}
}

// SetHeader appends a header. Earlier values for the same key are kept.
func (r *Response) SetHeader(key, value string) *Response {
	r.headers = append(r.headers, [2]string{key, value})
	return r
}

// Status sets the status code, replacing any earlier value.
func (r *Response) Status(code int) *Response {
	r.status = code
	return r
}

// Mime is a shortcut for SetHeader("Content-Type", m).
func (r *Response) Mime(m Mime) *Response {
	return r.SetHeader("Content-Type", string(m))
}

// StatusCode returns the status set so far, 0 if none was set.
func (r *Response) StatusCode() int { return r.status }

// Sent reports whether a terminal send already happened.
func (r *Response) Sent() bool { return r.sent }

// Send completes the response with data as the body.
func (r *Response) Send(data []byte) error {
	return r.complete(bytes.NewReader(data))
}

// SendString completes the response with s as the body.
func (r *Response) SendString(s string) error {
	return r.complete(strings.NewReader(s))
}

// SendStream completes the response by copying body to the client.
func (r *Response) SendStream(body io.Reader) error {
	return r.complete(body)
}

// SendFile completes the response with the contents of the file at path. When the file cannot be
// read nothing is sent and the error is returned.
func (r *Response) SendFile(path string) error {
	if r.sent {
		return errors.WithStack(ErrAlreadySent)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read file %q", path)
	}

	return r.complete(bytes.NewReader(data))
}

func (r *Response) complete(body io.Reader) error {
	if r.sent {
		return errors.WithStack(ErrAlreadySent)
	}

	r.sent = true

	hdr := r.w.Header()
	for _, kv := range r.headers {
		hdr.Add(kv[0], kv[1])
	}

	if r.branding {
		hdr.Set(BrandingHeader, BrandingValue)
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}

	r.w.WriteHeader(status)

	_, err := io.Copy(r.w, body)
	return errors.Wrap(err, "write response body")
}

// reset drops the accumulated status and headers so the failure boundary starts from a clean slate.
func (r *Response) reset() {
	r.status = 0
	r.headers = nil
}
