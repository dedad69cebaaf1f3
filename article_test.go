package gazette_test

import (
	"testing"

	"github.com/fwojciec/gazette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts article with URL only", func(t *testing.T) {
		t.Parallel()

		a := &gazette.Article{URL: "https://example.com/a"}
		require.NoError(t, a.Validate())
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"", "   "} {
			a := &gazette.Article{URL: u, Title: "Titre"}
			err := a.Validate()
			require.Error(t, err)
			assert.Equal(t, gazette.EINVALID, gazette.ErrorCode(err))
		}
	})

	t.Run("rejects nil article", func(t *testing.T) {
		t.Parallel()

		var a *gazette.Article
		assert.Equal(t, gazette.EINVALID, gazette.ErrorCode(a.Validate()))
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		t.Parallel()

		for _, d := range []string{"2025-08-28", "2025082", "2025O828"} {
			a := &gazette.Article{URL: "https://example.com/a", Date: d}
			assert.Equal(t, gazette.EINVALID, gazette.ErrorCode(a.Validate()), d)
		}
	})

	t.Run("accepts eight digit date", func(t *testing.T) {
		t.Parallel()

		a := &gazette.Article{URL: "https://example.com/a", Date: "20250828"}
		assert.NoError(t, a.Validate())
	})
}

func TestArticle_Normalize(t *testing.T) {
	t.Parallel()

	a := &gazette.Article{URL: "https://example.com/a"}
	a.Normalize()

	assert.NotNil(t, a.Sommaire)
	assert.Empty(t, a.Sommaire)
	assert.NotNil(t, a.Images)
	assert.Empty(t, a.Images)
}
