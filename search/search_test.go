package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FaizChishtie/vemcache/store"
	"github.com/FaizChishtie/vemcache/vector"
)

func entries(pairs ...store.Entry) []store.Entry { return pairs }

func TestKNearestRanking(t *testing.T) {
	candidates := entries(
		store.Entry{ID: "far", Vector: vector.Vector{10, 10, 10}},
		store.Entry{ID: "near", Vector: vector.Vector{1, 1, 1}},
		store.Entry{ID: "mid", Vector: vector.Vector{5, 5, 5}},
	)

	got := KNearest(vector.Vector{0, 0, 0}, 2, candidates)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
	assert.LessOrEqual(t, got[0].Distance, got[1].Distance)
}

func TestKNearestSelfRanksFirst(t *testing.T) {
	query := vector.Vector{0.5, 0.7, 0.2}
	candidates := entries(
		store.Entry{ID: "a", Vector: query.Clone()},
		store.Entry{ID: "b", Vector: vector.Vector{0.1, 0.9, 0.4}},
	)

	got := KNearest(query, 2, candidates)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, 0.0, got[0].Distance)
	assert.Equal(t, "b", got[1].ID)
}

func TestKNearestKLargerThanStore(t *testing.T) {
	candidates := entries(
		store.Entry{ID: "a", Vector: vector.Vector{1}},
		store.Entry{ID: "b", Vector: vector.Vector{2}},
	)

	got := KNearest(vector.Vector{0}, 10, candidates)
	assert.Len(t, got, 2)
}

func TestKNearestZeroK(t *testing.T) {
	candidates := entries(store.Entry{ID: "a", Vector: vector.Vector{1}})
	assert.Empty(t, KNearest(vector.Vector{0}, 0, candidates))
}

func TestKNearestEmptyStore(t *testing.T) {
	assert.Empty(t, KNearest(vector.Vector{0}, 3, nil))
}

func TestKNearestSkipsDimensionMismatch(t *testing.T) {
	candidates := entries(
		store.Entry{ID: "bad", Vector: vector.Vector{1, 2}},
		store.Entry{ID: "good", Vector: vector.Vector{1, 2, 3}},
	)

	got := KNearest(vector.Vector{0, 0, 0}, 5, candidates)
	require.Len(t, got, 1)
	assert.Equal(t, "good", got[0].ID)
}

func TestKNearestStableTieBreak(t *testing.T) {
	// All candidates sit at the same distance from the origin; ranking must
	// preserve candidate order.
	candidates := entries(
		store.Entry{ID: "first", Vector: vector.Vector{1, 0}},
		store.Entry{ID: "second", Vector: vector.Vector{0, 1}},
		store.Entry{ID: "third", Vector: vector.Vector{-1, 0}},
	)

	got := KNearest(vector.Vector{0, 0}, 3, candidates)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
	assert.Equal(t, "third", got[2].ID)
}

func TestKNearestRankingCorrectness(t *testing.T) {
	candidates := entries(
		store.Entry{ID: "a", Vector: vector.Vector{3, 0}},
		store.Entry{ID: "b", Vector: vector.Vector{1, 0}},
		store.Entry{ID: "c", Vector: vector.Vector{2, 0}},
		store.Entry{ID: "d", Vector: vector.Vector{4, 0}},
	)

	got := KNearest(vector.Vector{0, 0}, 2, candidates)
	require.Len(t, got, 2)

	// Every excluded candidate must be at least as far as every included one.
	for _, n := range got {
		assert.LessOrEqual(t, n.Distance, 3.0)
	}
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
	}
}
