package fragset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/fragset"
)

func TestFragmentID(t *testing.T) {
	t.Parallel()

	t.Run("is stable for identical HTML", func(t *testing.T) {
		t.Parallel()

		html := `<div class="recipe"><h1>Pancakes</h1></div>`

		assert.Equal(t, fragset.FragmentID(html), fragset.FragmentID(html))
	})

	t.Run("differs for HTML differing by one byte", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, fragset.FragmentID("<div>a</div>"), fragset.FragmentID("<div>b</div>"))
	})

	t.Run("is eight lowercase hex characters", func(t *testing.T) {
		t.Parallel()

		id := fragset.FragmentID("<div>anything</div>")

		assert.Regexp(t, `^[0-9a-f]{8}$`, id)
	})

	t.Run("matches the fragment method", func(t *testing.T) {
		t.Parallel()

		frag := &fragset.Fragment{HTML: "<div>x</div>", Type: "product"}

		assert.Equal(t, fragset.FragmentID(frag.HTML), frag.ID())
	})
}

func TestFragmentValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete fragment", func(t *testing.T) {
		t.Parallel()

		frag := &fragset.Fragment{HTML: "<div>x</div>", Type: "product", SourceURL: "https://example.com"}

		assert.NoError(t, frag.Validate())
	})

	t.Run("requires HTML", func(t *testing.T) {
		t.Parallel()

		err := (&fragset.Fragment{Type: "product"}).Validate()

		require.Error(t, err)
		assert.Equal(t, fragset.EINVALID, fragset.ErrorCode(err))
	})

	t.Run("requires a type", func(t *testing.T) {
		t.Parallel()

		err := (&fragset.Fragment{HTML: "<div>x</div>"}).Validate()

		require.Error(t, err)
		assert.Equal(t, fragset.EINVALID, fragset.ErrorCode(err))
	})
}
