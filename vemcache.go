// Package vemcache provides an in-memory vector cache: vectors keyed by
// string identifier, exact k-nearest-neighbor search, element-wise vector
// arithmetic and JSON snapshots.
//
// DB is the single shared handle. It is safe for concurrent use from many
// goroutines; the line-protocol front end in package protocol and the TCP
// transport in package server both operate on one DB.
//
//	db := vemcache.New(vemcache.WithSnapshotStorage(snapshot.NewLocalSink(".")))
//	id, _ := db.Insert(vector.Vector{1, 2, 3})
//	neighbors, _ := db.KNN(id, 5)
package vemcache

import (
	"context"

	"github.com/FaizChishtie/vemcache/codec"
	"github.com/FaizChishtie/vemcache/search"
	"github.com/FaizChishtie/vemcache/snapshot"
	"github.com/FaizChishtie/vemcache/store"
	"github.com/FaizChishtie/vemcache/vector"
)

// DB combines the vector store, the search engine and snapshot I/O behind
// one explicitly constructed handle.
type DB struct {
	store   *store.Store
	writer  *snapshot.Writer
	storage snapshot.Storage
	codec   codec.Codec
	logger  *Logger
}

// New creates an empty database.
func New(optFns ...Option) *DB {
	o := applyOptions(optFns)

	db := &DB{
		store:   store.New(),
		storage: o.storage,
		codec:   o.codec,
		logger:  o.logger,
	}
	if o.storage != nil {
		db.writer = snapshot.NewWriter(o.storage, o.codec)
	}
	return db
}

// Insert stores components under a freshly generated id and returns it.
func (db *DB) Insert(ctx context.Context, components vector.Vector) (string, error) {
	if components.Dimension() == 0 {
		return "", ErrEmptyVector
	}
	id := db.store.Insert(components)
	db.logger.LogInsert(ctx, id, components.Dimension())
	return id, nil
}

// NamedInsert stores components under the caller-supplied id, replacing any
// prior vector stored there.
func (db *DB) NamedInsert(ctx context.Context, id string, components vector.Vector) error {
	if components.Dimension() == 0 {
		return ErrEmptyVector
	}
	db.store.NamedInsert(id, components)
	db.logger.LogInsert(ctx, id, components.Dimension())
	return nil
}

// Get returns a copy of the vector stored under id.
func (db *DB) Get(id string) (vector.Vector, bool) {
	return db.store.Get(id)
}

// Remove deletes id and reports whether it existed. Removing an absent id is
// not an error.
func (db *DB) Remove(ctx context.Context, id string) bool {
	existed := db.store.Remove(id)
	db.logger.LogRemove(ctx, id, existed)
	return existed
}

// Len returns the number of stored vectors.
func (db *DB) Len() int {
	return db.store.Len()
}

// Entries returns a point-in-time snapshot of the store in insertion order.
func (db *DB) Entries() []store.Entry {
	return db.store.Entries()
}

// KNN returns up to k nearest neighbors of the vector stored under id,
// ranked by ascending Euclidean distance. The query vector itself is part of
// the candidate set and ranks first at distance zero.
func (db *DB) KNN(ctx context.Context, id string, k int) ([]search.Neighbor, error) {
	if k < 0 {
		return nil, ErrInvalidK
	}
	query, ok := db.store.Get(id)
	if !ok {
		db.logger.LogSearch(ctx, k, 0, ErrNotFound)
		return nil, ErrNotFound
	}
	neighbors := search.KNearest(query, k, db.store.Entries())
	db.logger.LogSearch(ctx, k, len(neighbors), nil)
	return neighbors, nil
}

// VAdd returns the element-wise sum of the vectors stored under id1 and id2.
// The operands are left untouched.
func (db *DB) VAdd(id1, id2 string) (vector.Vector, error) {
	v1, v2, err := db.pair(id1, id2)
	if err != nil {
		return nil, err
	}
	out, err := v1.Add(v2)
	return out, translateError(err)
}

// VSub returns the element-wise difference of the vectors stored under id1
// and id2.
func (db *DB) VSub(id1, id2 string) (vector.Vector, error) {
	v1, v2, err := db.pair(id1, id2)
	if err != nil {
		return nil, err
	}
	out, err := v1.Sub(v2)
	return out, translateError(err)
}

// VScale returns the vector stored under id scaled by scalar.
func (db *DB) VScale(id string, scalar float64) (vector.Vector, error) {
	v, ok := db.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.Scale(scalar), nil
}

// VCosine returns the cosine similarity of the vectors stored under id1 and
// id2.
func (db *DB) VCosine(id1, id2 string) (float64, error) {
	v1, v2, err := db.pair(id1, id2)
	if err != nil {
		return 0, err
	}
	sim, err := v1.CosineSimilarity(v2)
	return sim, translateError(err)
}

// pair performs two independent lookups. A remove racing in between makes
// the command fail with ErrNotFound rather than succeed on stale data.
func (db *DB) pair(id1, id2 string) (vector.Vector, vector.Vector, error) {
	v1, ok := db.store.Get(id1)
	if !ok {
		return nil, nil, ErrNotFound
	}
	v2, ok := db.store.Get(id2)
	if !ok {
		return nil, nil, ErrNotFound
	}
	return v1, v2, nil
}

// Dump writes a point-in-time snapshot of the store under filename.
func (db *DB) Dump(ctx context.Context, filename string) error {
	if db.writer == nil {
		return ErrNoSnapshotStorage
	}
	entries := db.store.Entries()
	err := db.writer.Dump(ctx, filename, entries)
	db.logger.LogDump(ctx, filename, len(entries), err)
	return err
}

// Restore loads a previously dumped snapshot into the store, overwriting
// colliding keys.
func (db *DB) Restore(ctx context.Context, filename string) error {
	if db.storage == nil {
		return ErrNoSnapshotStorage
	}
	err := snapshot.Restore(ctx, db.storage, filename, db.codec, db.store)
	db.logger.LogRestore(ctx, filename, db.store.Len(), err)
	return err
}
