// Package store provides the concurrent in-memory collection of vectors
// keyed by string identifier. The store is the only shared mutable state in
// the system and is safe for use from many connection handlers at once.
package store

import (
	"cmp"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/FaizChishtie/vemcache/vector"
)

// Entry is an (id, vector) pair as observed in a snapshot.
type Entry struct {
	ID     string
	Vector vector.Vector
}

type record struct {
	vec vector.Vector
	seq uint64 // insertion order, stable across overwrites
}

// Store maps string identifiers to vectors.
//
// Point reads and writes are individually atomic. Entries returns a
// consistent point-in-time snapshot in insertion order, so scans that race
// with writers are deterministic for a fixed store state. Stored vectors are
// copied on the way in and on the way out; callers never hold an alias into
// the store's memory.
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	nextSeq uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		records: make(map[string]record),
	}
}

// Insert stores v under a freshly generated identifier and returns it.
// On the astronomically unlikely UUID collision, a new id is generated.
func (s *Store) Insert(v vector.Vector) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, exists := s.records[id]; !exists {
			break
		}
		id = uuid.NewString()
	}
	s.put(id, v)
	return id
}

// NamedInsert stores v under the caller-supplied id. A repeated insert with
// the same id replaces the prior vector, matching cache semantics.
func (s *Store) NamedInsert(id string, v vector.Vector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(id, v)
}

// put assumes s.mu is held for writing.
func (s *Store) put(id string, v vector.Vector) {
	seq := s.nextSeq
	if prev, exists := s.records[id]; exists {
		seq = prev.seq
	} else {
		s.nextSeq++
	}
	s.records[id] = record{vec: v.Clone(), seq: seq}
}

// Get returns a copy of the vector stored under id, or false if absent.
func (s *Store) Get(id string) (vector.Vector, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return rec.vec.Clone(), true
}

// Remove deletes the vector stored under id and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.records[id]
	delete(s.records, id)
	return existed
}

// Len returns the number of stored vectors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Entries returns a point-in-time snapshot of the store's contents in
// insertion order. The returned entries are deep copies; mutating them does
// not affect the store.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type ordered struct {
		Entry
		seq uint64
	}
	out := make([]ordered, 0, len(s.records))
	for id, rec := range s.records {
		out = append(out, ordered{Entry: Entry{ID: id, Vector: rec.vec.Clone()}, seq: rec.seq})
	}
	// Map iteration order is random; restore insertion order.
	slices.SortFunc(out, func(a, b ordered) int {
		return cmp.Compare(a.seq, b.seq)
	})

	entries := make([]Entry, len(out))
	for i, o := range out {
		entries[i] = o.Entry
	}
	return entries
}
