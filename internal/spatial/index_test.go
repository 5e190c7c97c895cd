package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexWithin(t *testing.T) {
	points := []Point{
		{0, 0, 0},
		{1, 0, 0},
		{0, 2.5, 0},
		{10, 10, 0},
		{1, 1, 0},
	}
	idx := NewIndex(points, 3.0)

	t.Run("finds neighbours across cell boundaries", func(t *testing.T) {
		got := idx.Within(0, 3.0)
		assert.Equal(t, []int32{1, 2, 4}, got)
	})

	t.Run("excludes the query point itself", func(t *testing.T) {
		got := idx.Within(3, 3.0)
		assert.Empty(t, got)
	})

	t.Run("radius is inclusive", func(t *testing.T) {
		idx2 := NewIndex([]Point{{0, 0, 0}, {2, 0, 0}}, 2.0)
		got := idx2.Within(0, 2.0)
		assert.Equal(t, []int32{1}, got)
	})

	t.Run("query at arbitrary position", func(t *testing.T) {
		got := idx.WithinOf(Point{0.5, 0.5, 0}, 1.0, -1)
		assert.Equal(t, []int32{0, 1, 4}, got)
	})
}

func TestIndexNegativeCoordinates(t *testing.T) {
	points := []Point{{-1.5, -1.5, 0}, {-1.0, -1.0, 0}, {5, 5, 0}}
	idx := NewIndex(points, 2.0)

	got := idx.Within(0, 2.0)
	assert.Equal(t, []int32{1}, got)
}

func TestIndex3D(t *testing.T) {
	points := []Point{{0, 0, 0}, {0, 0, 1.5}, {0, 0, 4}}
	idx := NewIndex(points, 2.0)

	got := idx.Within(0, 2.0)
	require.Equal(t, []int32{1}, got)
}

func TestIndexRejectsOversizedRadius(t *testing.T) {
	idx := NewIndex([]Point{{0, 0, 0}}, 1.0)
	assert.Panics(t, func() { idx.Within(0, 2.0) })
}
