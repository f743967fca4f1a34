package httppattern_test

import (
	"testing"

	"github.com/advdv/cyprus/internal/httppattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	for _, tt := range []struct {
		pattern    string
		wantParams []string
		wantErr    string
	}{
		{pattern: "/", wantParams: nil},
		{pattern: "/users/:id", wantParams: []string{"id"}},
		{pattern: "/users/:id/posts/:post_id", wantParams: []string{"id", "post_id"}},
		{pattern: "/files/:name.:ext", wantParams: []string{"name", "ext"}},
		{pattern: "/assets/*", wantParams: nil},
		{pattern: "", wantErr: "empty pattern"},
		{pattern: "users", wantErr: "must start with '/'"},
		{pattern: "/users/:", wantErr: "without a name"},
		{pattern: "/a*b", wantErr: "wildcard"},
		{pattern: "/a/*/b", wantErr: "wildcard"},
		{pattern: "/:id/x/:id", wantErr: "repeats parameter"},
	} {
		t.Run(tt.pattern, func(t *testing.T) {
			pat, err := httppattern.ParsePattern(tt.pattern)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.pattern, pat.String())
			assert.Equal(t, tt.wantParams, pat.Params())
		})
	}
}

func TestBuild(t *testing.T) {
	for _, tt := range []struct {
		pattern string
		vals    []string
		want    string
		wantErr string
	}{
		{pattern: "/", want: "/"},
		{pattern: "/users/:id", vals: []string{"42"}, want: "/users/42"},
		{pattern: "/users/:id", vals: []string{"a b"}, want: "/users/a%20b"},
		{pattern: "/files/:name.:ext", vals: []string{"report", "pdf"}, want: "/files/report.pdf"},
		{pattern: "/assets/*", vals: []string{"css/app.css"}, want: "/assets/css/app.css"},
		{pattern: "/users/:id", wantErr: "not enough values"},
		{pattern: "/users", vals: []string{"1"}, wantErr: "too many values"},
	} {
		t.Run(tt.pattern, func(t *testing.T) {
			pat, err := httppattern.ParsePattern(tt.pattern)
			require.NoError(t, err)

			got, err := httppattern.Build(pat, tt.vals...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
