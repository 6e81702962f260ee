package vemcache

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FaizChishtie/vemcache/codec"
	"github.com/FaizChishtie/vemcache/snapshot"
	"github.com/FaizChishtie/vemcache/vector"
)

func TestInsertAndGet(t *testing.T) {
	db := New()
	ctx := context.Background()

	id, err := db.Insert(ctx, vector.Vector{1, 2, 3})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, ok := db.Get(id)
	require.True(t, ok)
	assert.True(t, got.Equal(vector.Vector{1, 2, 3}, 0))
}

func TestInsertEmpty(t *testing.T) {
	db := New()

	_, err := db.Insert(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyVector)

	err = db.NamedInsert(context.Background(), "a", vector.Vector{})
	require.ErrorIs(t, err, ErrEmptyVector)
}

func TestRemoveThenGet(t *testing.T) {
	db := New()
	ctx := context.Background()

	require.NoError(t, db.NamedInsert(ctx, "a", vector.Vector{1}))
	assert.True(t, db.Remove(ctx, "a"))

	_, ok := db.Get("a")
	assert.False(t, ok)

	// Idempotent.
	assert.False(t, db.Remove(ctx, "a"))
}

func TestKNN(t *testing.T) {
	db := New()
	ctx := context.Background()

	require.NoError(t, db.NamedInsert(ctx, "a", vector.Vector{0.5, 0.7, 0.2}))
	require.NoError(t, db.NamedInsert(ctx, "b", vector.Vector{0.1, 0.9, 0.4}))

	neighbors, err := db.KNN(ctx, "a", 2)
	require.NoError(t, err)
	require.Len(t, neighbors, 2)
	assert.Equal(t, "a", neighbors[0].ID)
	assert.Equal(t, 0.0, neighbors[0].Distance)
	assert.Equal(t, "b", neighbors[1].ID)

	_, err = db.KNN(ctx, "missing", 2)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.KNN(ctx, "a", -1)
	require.ErrorIs(t, err, ErrInvalidK)
}

func TestArithmetic(t *testing.T) {
	db := New()
	ctx := context.Background()

	require.NoError(t, db.NamedInsert(ctx, "a", vector.Vector{1, 2, 3}))
	require.NoError(t, db.NamedInsert(ctx, "b", vector.Vector{4, 5, 6}))

	sum, err := db.VAdd("a", "b")
	require.NoError(t, err)
	assert.True(t, sum.Equal(vector.Vector{5, 7, 9}, 1e-9))

	diff, err := db.VSub("a", "b")
	require.NoError(t, err)
	assert.True(t, diff.Equal(vector.Vector{-3, -3, -3}, 1e-9))

	scaled, err := db.VScale("a", 2)
	require.NoError(t, err)
	assert.True(t, scaled.Equal(vector.Vector{2, 4, 6}, 1e-9))

	// The stored operands are unaffected.
	a, _ := db.Get("a")
	assert.True(t, a.Equal(vector.Vector{1, 2, 3}, 0))

	sim, err := db.VCosine("a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.9746, sim, 0.0005)
}

func TestArithmeticErrors(t *testing.T) {
	db := New()
	ctx := context.Background()

	require.NoError(t, db.NamedInsert(ctx, "a", vector.Vector{1, 2}))
	require.NoError(t, db.NamedInsert(ctx, "b", vector.Vector{1, 2, 3}))
	require.NoError(t, db.NamedInsert(ctx, "zero", vector.Vector{0, 0}))

	_, err := db.VAdd("a", "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.VAdd("a", "b")
	var dm *vector.ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)

	_, err = db.VSub("a", "b")
	require.ErrorAs(t, err, &dm)

	_, err = db.VCosine("a", "b")
	require.ErrorAs(t, err, &dm)

	_, err = db.VCosine("a", "zero")
	require.ErrorIs(t, err, vector.ErrZeroNorm)

	_, err = db.VScale("missing", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDumpAndRestore(t *testing.T) {
	storage := snapshot.NewLocalSink(t.TempDir())
	db := New(WithSnapshotStorage(storage))
	ctx := context.Background()

	require.NoError(t, db.NamedInsert(ctx, "a", vector.Vector{0.5, 0.7, 0.2}))
	require.NoError(t, db.Dump(ctx, "dump.json"))

	restored := New(WithSnapshotStorage(storage))
	require.NoError(t, restored.Restore(ctx, "dump.json"))

	got, ok := restored.Get("a")
	require.True(t, ok)
	assert.True(t, got.Equal(vector.Vector{0.5, 0.7, 0.2}, 0))
}

func TestDumpWithoutStorage(t *testing.T) {
	db := New()
	require.ErrorIs(t, db.Dump(context.Background(), "dump.json"), ErrNoSnapshotStorage)
	require.ErrorIs(t, db.Restore(context.Background(), "dump.json"), ErrNoSnapshotStorage)
}

func TestDumpAndRestoreGoJSONCodec(t *testing.T) {
	storage := snapshot.NewLocalSink(t.TempDir())
	db := New(WithSnapshotStorage(storage), WithCodec(codec.GoJSON{}))
	ctx := context.Background()

	require.NoError(t, db.NamedInsert(ctx, "a", vector.Vector{0.5, 0.7, 0.2}))
	require.NoError(t, db.Dump(ctx, "dump.json"))

	// Both built-in codecs write the same JSON wire format, so a dump taken
	// with go-json restores through the default codec too.
	restored := New(WithSnapshotStorage(storage))
	require.NoError(t, restored.Restore(ctx, "dump.json"))

	got, ok := restored.Get("a")
	require.True(t, ok)
	assert.True(t, got.Equal(vector.Vector{0.5, 0.7, 0.2}, 0))
}

func TestOperationLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	db := New(WithLogger(logger))
	ctx := context.Background()

	require.NoError(t, db.NamedInsert(ctx, "a", vector.Vector{1, 2}))
	db.Remove(ctx, "a")

	out := buf.String()
	assert.Contains(t, out, "insert completed")
	assert.Contains(t, out, "remove completed")
}

func TestWithLogLevel(t *testing.T) {
	db := New(WithLogLevel(slog.LevelError))

	id, err := db.Insert(context.Background(), vector.Vector{1})
	require.NoError(t, err)

	_, ok := db.Get(id)
	assert.True(t, ok)
}
