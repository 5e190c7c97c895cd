// Package spatial provides a uniform-grid index for fixed-radius neighbour
// queries over small point sets. Cell size should approximately match the
// query radius so a query only has to scan the 3x3x3 cell neighbourhood.
package spatial

import "math"

// Point is a position in 2 or 3 dimensions. Planar data sets Z to 0.
type Point [3]float64

type cellKey struct {
	x, y, z int64
}

// Index maps grid cells to the indices of the points they contain.
type Index struct {
	cellSize float64
	points   []Point
	grid     map[cellKey][]int32
}

// NewIndex builds an index over points with the given cell size.
// cellSize must be > 0.
func NewIndex(points []Point, cellSize float64) *Index {
	idx := &Index{
		cellSize: cellSize,
		points:   points,
		grid:     make(map[cellKey][]int32, len(points)),
	}
	for i, p := range points {
		k := idx.keyFor(p)
		idx.grid[k] = append(idx.grid[k], int32(i))
	}
	return idx
}

func (idx *Index) keyFor(p Point) cellKey {
	return cellKey{
		x: int64(math.Floor(p[0] / idx.cellSize)),
		y: int64(math.Floor(p[1] / idx.cellSize)),
		z: int64(math.Floor(p[2] / idx.cellSize)),
	}
}

// Within returns the indices of all points within radius of points[i],
// excluding i itself. Results are in ascending index order, which keeps
// downstream graph construction independent of map iteration order.
func (idx *Index) Within(i int32, radius float64) []int32 {
	return idx.WithinOf(idx.points[i], radius, i)
}

// WithinOf returns the indices of all points within radius of p, excluding
// the point at index skip (pass a negative skip to keep everything).
func (idx *Index) WithinOf(p Point, radius float64, skip int32) []int32 {
	if radius > idx.cellSize {
		// The 3x3x3 scan below assumes radius <= cellSize.
		panic("spatial: query radius exceeds index cell size")
	}
	base := idx.keyFor(p)
	r2 := radius * radius

	var out []int32
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				k := cellKey{base.x + dx, base.y + dy, base.z + dz}
				for _, j := range idx.grid[k] {
					if j == skip {
						continue
					}
					q := idx.points[j]
					ddx := q[0] - p[0]
					ddy := q[1] - p[1]
					ddz := q[2] - p[2]
					if ddx*ddx+ddy*ddy+ddz*ddz <= r2 {
						out = append(out, j)
					}
				}
			}
		}
	}

	// Cells are visited in key order, not index order; normalise.
	insertionSortInt32(out)
	return out
}

// insertionSortInt32 sorts tiny neighbour lists without allocation.
func insertionSortInt32(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
