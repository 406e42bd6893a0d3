package uritemplate_test

import (
	"sync"
	"testing"

	"github.com/karvel/templnet/pkg/uritemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheParse(t *testing.T) {
	t.Parallel()

	t.Run("Same string returns the same template", func(t *testing.T) {
		t.Parallel()

		cache := uritemplate.NewCache()

		first, err := cache.Parse("/widgets/{id}")
		require.NoError(t, err)

		second, err := cache.Parse("/widgets/{id}")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("Distinct strings get distinct templates", func(t *testing.T) {
		t.Parallel()

		cache := uritemplate.NewCache()

		first, err := cache.Parse("/widgets/{id}")
		require.NoError(t, err)

		second, err := cache.Parse("/gadgets/{id}")
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("Parse errors are not cached", func(t *testing.T) {
		t.Parallel()

		cache := uritemplate.NewCache()

		_, err := cache.Parse("/widgets/{id")
		require.Error(t, err)
		assert.ErrorIs(t, err, uritemplate.ErrTemplateSyntax)
		assert.Equal(t, 0, cache.Len())

		_, err = cache.Parse("/widgets/{id")
		require.Error(t, err)
	})

	t.Run("Concurrent parses agree on one template", func(t *testing.T) {
		t.Parallel()

		cache := uritemplate.NewCache()

		const goroutines = 32
		results := make([]*uritemplate.Template, goroutines)

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				tpl, err := cache.Parse("/v1/users/{id}")
				assert.NoError(t, err)
				results[i] = tpl
			}()
		}
		wg.Wait()

		require.Equal(t, 1, cache.Len())
		for _, tpl := range results {
			assert.Same(t, results[0], tpl)
		}
	})
}
