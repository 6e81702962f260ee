package vemcache

import (
	"errors"
	"fmt"

	"github.com/FaizChishtie/vemcache/vector"
)

var (
	// ErrNotFound is returned when a referenced key is not in the store.
	ErrNotFound = errors.New("key not found")

	// ErrEmptyVector is returned when an insert carries no components.
	ErrEmptyVector = errors.New("vector must have at least one component")

	// ErrInvalidK is returned when k is negative.
	ErrInvalidK = errors.New("k must be non-negative")

	// ErrNoSnapshotStorage is returned when dump/restore is requested but no
	// snapshot storage was configured.
	ErrNoSnapshotStorage = errors.New("no snapshot storage configured")
)

// translateError normalizes errors crossing the facade boundary so callers
// can match with errors.Is/errors.As regardless of which layer failed.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *vector.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return dm
	}
	if errors.Is(err, vector.ErrZeroNorm) {
		return fmt.Errorf("%w: cosine similarity undefined", vector.ErrZeroNorm)
	}

	return err
}
