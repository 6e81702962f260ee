// Package search implements exact brute-force k-nearest-neighbor ranking
// over a snapshot of store entries.
//
// Ranking is by ascending Euclidean distance. Ties preserve the candidate
// (insertion) order, so results are deterministic for a fixed store state.
package search

import (
	"cmp"
	"math"
	"slices"

	"github.com/FaizChishtie/vemcache/store"
	"github.com/FaizChishtie/vemcache/vector"
)

// Neighbor is a ranked search result.
type Neighbor struct {
	ID       string
	Vector   vector.Vector
	Distance float64
}

// KNearest ranks candidates by ascending Euclidean distance to query and
// returns the first k, so the result length is min(k, usable candidates).
//
// Candidates whose dimension differs from the query are skipped rather than
// failing the whole search; one malformed stored vector must not break KNN
// for the rest of the store. The query's own id, when present among the
// candidates, is ranked like any other entry and comes first at distance 0.
// k = 0 and an empty candidate set both yield an empty result.
func KNearest(query vector.Vector, k int, candidates []store.Entry) []Neighbor {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	neighbors := make([]Neighbor, 0, len(candidates))
	for _, c := range candidates {
		dist, err := query.EuclideanDistance(c.Vector)
		if err != nil || math.IsNaN(dist) {
			continue
		}
		neighbors = append(neighbors, Neighbor{ID: c.ID, Vector: c.Vector, Distance: dist})
	}

	// Stable sort keeps candidate order for exactly equal distances.
	slices.SortStableFunc(neighbors, func(a, b Neighbor) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}
