package neighbor

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Point is the minimal 2D coordinate this package needs. Callers (cmd
// layer, tests) project their own point types down to this shape, keeping
// neighbor decoupled from lattice's ghost/canonical bookkeeping — exactly
// the separation spec.md §1 draws between the core and its spatial-index
// collaborator.
type Point struct{ X, Y float64 }

// DefaultCutoffMultiplier is the findthosepoints.py convention: cutoff =
// (nearest-neighbor distance of point 0) * 1.1. spec.md §9 flags that a
// sibling source (basis_vectors.py) uses hard-coded distances instead;
// this package always takes the multiplier explicitly so callers must
// choose and can log the resolved value (see cmd/latticegen).
const DefaultCutoffMultiplier = 1.1

// bucketSize controls the spatial hash grid cell edge length, expressed as
// a multiple of the cutoff distance. A cell edge equal to the cutoff means
// any pair within range is found by scanning the 3x3 block of cells around
// a point's own cell — the standard bucket-grid radius-query trick, the
// same "check only the neighboring cells" idiom gridgraph.go applies to
// integer grids, generalized here to continuous coordinates. This is a
// bucket-grid index, not a k-d tree: no k-d tree library appears anywhere
// in the retrieval pack, so none is fabricated (see DESIGN.md).
const bucketSize = 1.0

// NearestNeighborDistance returns the distance from points[0] to its
// closest other point, matching the Python `point_kdtree.query(..., k=[2])`
// call in original_source/findthosepoints.py.
func NearestNeighborDistance(points []Point) (float64, error) {
	if len(points) < 2 {
		return 0, ErrTooFewPoints
	}
	best := math.Inf(1)
	for i := 1; i < len(points); i++ {
		d := dist(points[0], points[i])
		if d < best {
			best = d
		}
	}
	return best, nil
}

// BuildRadius derives a Relation: all unordered pairs (i,j), i<j, whose
// Euclidean distance is <= cutoff, where cutoff = NearestNeighborDistance *
// cutoffMultiplier.
//
// Complexity: O(n) expected with the bucket grid (assuming roughly uniform
// point density), O(n^2) worst case for pathological clustering.
func BuildRadius(points []Point, cutoffMultiplier float64) (*Relation, error) {
	nn, err := NearestNeighborDistance(points)
	if err != nil {
		return nil, err
	}
	cutoff := nn * cutoffMultiplier
	log.Debug().Float64("nearest_neighbor_distance", nn).
		Float64("cutoff_multiplier", cutoffMultiplier).
		Float64("cutoff_distance", cutoff).
		Msg("neighbor: resolved cutoff distance")

	cellEdge := cutoff * bucketSize
	if cellEdge <= 0 {
		cellEdge = 1
	}
	type cellKey struct{ cx, cy int }
	buckets := make(map[cellKey][]int, len(points))
	cellOf := func(p Point) cellKey {
		return cellKey{int(math.Floor(p.X / cellEdge)), int(math.Floor(p.Y / cellEdge))}
	}
	for i, p := range points {
		k := cellOf(p)
		buckets[k] = append(buckets[k], i)
	}

	seen := make(map[[2]int]bool)
	var pairs [][2]int
	cutoffSq := cutoff * cutoff
	for i, p := range points {
		c := cellOf(p)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range buckets[cellKey{c.cx + dx, c.cy + dy}] {
					if j <= i {
						continue
					}
					if sqDist(p, points[j]) <= cutoffSq {
						key := [2]int{i, j}
						if !seen[key] {
							seen[key] = true
							pairs = append(pairs, key)
						}
					}
				}
			}
		}
	}

	return &Relation{N: len(points), Pairs: pairs, CutoffDistance: cutoff}, nil
}

func dist(a, b Point) float64 {
	return math.Sqrt(sqDist(a, b))
}

func sqDist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
