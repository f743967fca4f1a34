package cyprus_test

import (
	"testing"

	"github.com/advdv/cyprus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverser(t *testing.T) {
	rev := cyprus.NewReverser()

	t.Run("should allow naming patterns", func(t *testing.T) {
		s := rev.Named("homepage", "/")
		assert.Equal(t, "/", s)

		s, err := rev.NamedPattern("blog_post", "/blog/:id/")
		require.NoError(t, err)
		assert.Equal(t, "/blog/:id/", s)

		_, err = rev.NamedPattern("assets", "/assets/*")
		require.NoError(t, err)
	})

	t.Run("should reverse named patterns", func(t *testing.T) {
		res, err := rev.Reverse("homepage")
		require.NoError(t, err)
		assert.Equal(t, "/", res)

		res, err = rev.Reverse("blog_post", "hello world")
		require.NoError(t, err)
		assert.Equal(t, "/blog/hello%20world/", res)

		res, err = rev.Reverse("assets", "css/site.css")
		require.NoError(t, err)
		assert.Equal(t, "/assets/css/site.css", res)
	})

	t.Run("should error if pattern already exists", func(t *testing.T) {
		_, err := rev.NamedPattern("homepage", "/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("should panic for Named error", func(t *testing.T) {
		assert.PanicsWithValue(t, "cyprus: failed to parse pattern: empty pattern", func() {
			rev.Named("bogus", "")
		})
	})

	t.Run("should error if reversing unknown name", func(t *testing.T) {
		_, err := rev.Reverse("bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no pattern named: \"bogus\"")
	})

	t.Run("should error if url building fails", func(t *testing.T) {
		_, err := rev.Reverse("blog_post")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enough values")
	})
}

func TestAppReverse(t *testing.T) {
	app := cyprus.New()
	app.Get(app.Named("user", "/users/:id"), func(_ *cyprus.Request, res *cyprus.Response, _ cyprus.Next) error {
		return res.SendString("ok")
	})

	path, err := app.Reverse("user", "42")
	require.NoError(t, err)
	assert.Equal(t, "/users/42", path)
}
