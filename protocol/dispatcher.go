package protocol

import (
	"context"
	"errors"

	"github.com/FaizChishtie/vemcache"
	"github.com/FaizChishtie/vemcache/vector"
)

// Dispatcher executes parsed commands against a database handle.
//
// It is stateless across requests: every line is parsed and executed
// independently, and any failure is confined to that one command's Result.
type Dispatcher struct {
	db *vemcache.DB
}

// NewDispatcher creates a Dispatcher operating on db.
func NewDispatcher(db *vemcache.DB) *Dispatcher {
	return &Dispatcher{db: db}
}

// Handle processes one input line end to end and returns the response text.
func (d *Dispatcher) Handle(ctx context.Context, line string) string {
	return Format(d.Execute(ctx, Parse(line)))
}

// Execute runs one command. Errors from the store or the math layers are
// mapped to textual error Results; nothing escapes as a Go error.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command) Result {
	switch c := cmd.(type) {
	case Ping:
		return Pong{}

	case Insert:
		id, err := d.db.Insert(ctx, c.Components)
		if err != nil {
			return d.toError(err)
		}
		return InsertedID{ID: id}

	case NamedInsert:
		if err := d.db.NamedInsert(ctx, c.Key, c.Components); err != nil {
			return d.toError(err)
		}
		return Ack{}

	case Get:
		v, ok := d.db.Get(c.Key)
		if !ok {
			return Null{}
		}
		return VectorResult{Vector: v}

	case Remove:
		// Idempotent acknowledgement regardless of prior existence.
		d.db.Remove(ctx, c.Key)
		return Ack{}

	case KNN:
		neighbors, err := d.db.KNN(ctx, c.Key, c.K)
		if err != nil {
			return d.toError(err)
		}
		return Neighbors{Neighbors: neighbors}

	case VAdd:
		v, err := d.db.VAdd(c.Key1, c.Key2)
		if err != nil {
			return d.toError(err)
		}
		return VectorResult{Vector: v}

	case VSub:
		v, err := d.db.VSub(c.Key1, c.Key2)
		if err != nil {
			return d.toError(err)
		}
		return VectorResult{Vector: v}

	case VScale:
		v, err := d.db.VScale(c.Key, c.Scalar)
		if err != nil {
			return d.toError(err)
		}
		return VectorResult{Vector: v}

	case VCosine:
		sim, err := d.db.VCosine(c.Key1, c.Key2)
		if err != nil {
			return d.toError(err)
		}
		return Similarity{Score: sim}

	case Dump:
		if err := d.db.Dump(ctx, c.Filename); err != nil {
			return Error{Kind: KindPersistence, Reason: "dump failed: " + err.Error()}
		}
		return Ack{}

	case Invalid:
		return Error{Kind: KindParse, Reason: c.Reason}

	default:
		return Error{Kind: KindInternal, Reason: "internal error"}
	}
}

// toError maps engine errors to protocol error kinds. Internal diagnostics
// never reach the client verbatim.
func (d *Dispatcher) toError(err error) Error {
	var dm *vector.ErrDimensionMismatch
	switch {
	case errors.Is(err, vemcache.ErrNotFound):
		return Error{Kind: KindUnknownKey, Reason: "key not found"}
	case errors.As(err, &dm):
		return Error{Kind: KindDimensionMismatch, Reason: dm.Error()}
	case errors.Is(err, vector.ErrZeroNorm):
		return Error{Kind: KindDegenerateVector, Reason: "zero-norm vector: cosine similarity undefined"}
	case errors.Is(err, vemcache.ErrEmptyVector):
		return Error{Kind: KindParse, Reason: vemcache.ErrEmptyVector.Error()}
	case errors.Is(err, vemcache.ErrInvalidK):
		return Error{Kind: KindParse, Reason: vemcache.ErrInvalidK.Error()}
	default:
		return Error{Kind: KindInternal, Reason: "internal error"}
	}
}
