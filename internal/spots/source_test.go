package spots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceSource(t *testing.T) {
	src := SliceSource{{Round: 0, Channel: 1, Intensity: 2}}
	got, err := src.Spots(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSourceRegistry(t *testing.T) {
	RegisterSource("test-static", func(params map[string]any) (Source, error) {
		return SliceSource{}, nil
	})

	t.Run("lookup by name", func(t *testing.T) {
		src, err := NewSource("test-static", nil)
		require.NoError(t, err)
		assert.NotNil(t, src)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := NewSource("no-such-detector", nil)
		assert.Error(t, err)
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		assert.Panics(t, func() {
			RegisterSource("test-static", func(map[string]any) (Source, error) { return nil, nil })
		})
	})

	assert.Contains(t, SourceNames(), "test-static")
}
