package cyprus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReader struct {
	io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.Reader.Read(p)
}

func newTestRequest(method, target, body string, hdr map[string]string) (*Request, *countingReader) {
	body1 := &countingReader{Reader: strings.NewReader(body)}
	raw := httptest.NewRequest(method, target, body1)
	for k, v := range hdr {
		raw.Header.Add(k, v)
	}

	return newRequest(raw, Params{}), body1
}

func TestRequestHeaders(t *testing.T) {
	req, _ := newTestRequest(http.MethodGet, "http://example.com/x", "", map[string]string{
		"X-Trace": "abc",
	})
	req.raw.Header.Add("Accept", "text/html")
	req.raw.Header.Add("Accept", "application/json")

	hdrs := req.Headers()
	assert.Equal(t, "abc", hdrs["x-trace"])
	assert.Equal(t, "text/html, application/json", hdrs["accept"])
	assert.Equal(t, "example.com", hdrs["host"])

	req.raw.Header.Set("X-Trace", "changed")
	assert.Equal(t, "abc", req.Headers()["x-trace"])
}

func TestRequestCookies(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		req, _ := newTestRequest(http.MethodGet, "/", "", nil)
		assert.Nil(t, req.Cookies())
	})

	t.Run("parsed and trimmed", func(t *testing.T) {
		req, _ := newTestRequest(http.MethodGet, "/", "", map[string]string{
			"Cookie": " session = abc ; theme=dark;; flag",
		})

		assert.Equal(t, map[string]string{
			"session": "abc",
			"theme":   "dark",
			"flag":    "",
		}, req.Cookies())
	})

	t.Run("cached after first access", func(t *testing.T) {
		req, _ := newTestRequest(http.MethodGet, "/", "", map[string]string{"Cookie": "session=abc"})
		first := req.Cookies()

		req.raw.Header.Set("Cookie", "session=changed")
		assert.Equal(t, "abc", req.Cookies()["session"])
		assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(req.Cookies()).Pointer())
	})

	t.Run("value keeps later equal signs", func(t *testing.T) {
		req, _ := newTestRequest(http.MethodGet, "/", "", map[string]string{"Cookie": "token=a=b"})
		assert.Equal(t, "a=b", req.Cookies()["token"])
	})
}

func TestRequestBody(t *testing.T) {
	t.Run("json is parsed", func(t *testing.T) {
		req, _ := newTestRequest(http.MethodPost, "/", `{"a":1,"b":["x"]}`, map[string]string{
			"Content-Type": "application/json",
		})

		body, err := req.Body()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": float64(1), "b": []any{"x"}}, body)

		res, err := req.BodyPath("b.0")
		require.NoError(t, err)
		assert.Equal(t, "x", res.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		req, _ := newTestRequest(http.MethodPost, "/", `{"a":`, map[string]string{
			"Content-Type": "application/json",
		})

		_, err := req.Body()
		require.True(t, errors.Is(err, ErrBodyDecode))

		_, err = req.BodyPath("a")
		require.True(t, errors.Is(err, ErrBodyDecode))
	})

	t.Run("other content types are text", func(t *testing.T) {
		req, _ := newTestRequest(http.MethodPost, "/", `{"a":1}`, map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		})

		body, err := req.Body()
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, body)
	})

	t.Run("latin1 decoding", func(t *testing.T) {
		req, _ := newTestRequest(http.MethodPost, "/", "caf\xe9", nil)

		body, err := req.Body()
		require.NoError(t, err)
		assert.Equal(t, "café", body)
	})

	t.Run("no body", func(t *testing.T) {
		raw := httptest.NewRequest(http.MethodGet, "/", nil)
		raw.Body = nil

		data, err := newRequest(raw, nil).RawBody()
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}

func TestRequestLazyBody(t *testing.T) {
	req, src := newTestRequest(http.MethodPost, "/", "hello", nil)
	assert.Zero(t, src.reads)

	data1, err := req.RawBody()
	require.NoError(t, err)
	reads := src.reads

	data2, err := req.RawBody()
	require.NoError(t, err)
	body, err := req.Body()
	require.NoError(t, err)

	assert.Equal(t, "hello", string(data1))
	assert.Equal(t, data1, data2)
	assert.Equal(t, "hello", body)
	assert.Equal(t, reads, src.reads)
}

func TestRequestLazyBodyFirst(t *testing.T) {
	req, src := newTestRequest(http.MethodPost, "/", `{"a":1}`, map[string]string{
		"Content-Type": "application/json",
	})

	body1, err := req.Body()
	require.NoError(t, err)
	reads := src.reads
	assert.NotZero(t, reads)

	body2, err := req.Body()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, body1)
	assert.Equal(t, reflect.ValueOf(body1).Pointer(), reflect.ValueOf(body2).Pointer())

	data, err := req.RawBody()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
	assert.Equal(t, reads, src.reads)
}

func TestRequestAccessors(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/users/42?expand=1", nil)
	raw.RemoteAddr = "10.0.0.1:5555"
	req := newRequest(raw, Params{"id": "42"})

	assert.Equal(t, http.MethodGet, req.Method())
	assert.Equal(t, "/users/42?expand=1", req.URL())
	assert.Equal(t, "/users/42", req.Path())
	assert.Equal(t, "10.0.0.1:5555", req.RemoteAddress())
	assert.Equal(t, "10.0.0.1", req.RemoteIP())
	assert.Equal(t, HTTPVersion{Full: "HTTP/1.1", Major: 1, Minor: 1}, req.HTTPVersion())
	assert.Equal(t, "42", req.Param("id"))
	assert.Empty(t, req.Param("missing"))
}
