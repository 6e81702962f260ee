package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FaizChishtie/vemcache/search"
	"github.com/FaizChishtie/vemcache/vector"
)

// Result is the typed outcome of executing a Command. Like Command, the set
// of implementations is closed; execution always produces exactly one,
// never a raw error.
type Result interface {
	isResult()
}

// Pong answers a Ping.
type Pong struct{}

// Ack is the bare OK acknowledgement.
type Ack struct{}

// InsertedID carries the generated id of an anonymous insert.
type InsertedID struct {
	ID string
}

// VectorResult carries a single vector payload (get, vadd, vsub, vscale).
type VectorResult struct {
	Vector vector.Vector
}

// Null answers a get for an absent key.
type Null struct{}

// Neighbors carries a ranked KNN result.
type Neighbors struct {
	Neighbors []search.Neighbor
}

// Similarity carries a cosine similarity score.
type Similarity struct {
	Score float64
}

// ErrorKind classifies command failures.
type ErrorKind int

const (
	// KindParse is malformed input: wrong arity or a non-numeric value
	// where a number was expected.
	KindParse ErrorKind = iota
	// KindUnknownKey is a referenced id that is not in the store.
	KindUnknownKey
	// KindDimensionMismatch is two combined vectors of different lengths.
	KindDimensionMismatch
	// KindDegenerateVector is a zero-norm operand to cosine similarity.
	KindDegenerateVector
	// KindPersistence is a dump target that could not be written.
	KindPersistence
	// KindInternal is any failure not covered above. The reason shown to
	// the client is generic; details go to the log only.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindUnknownKey:
		return "unknown key"
	case KindDimensionMismatch:
		return "dimension mismatch"
	case KindDegenerateVector:
		return "degenerate vector"
	case KindPersistence:
		return "persistence error"
	default:
		return "internal error"
	}
}

// Error is a failed command with a human-readable reason.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (Pong) isResult()         {}
func (Ack) isResult()          {}
func (InsertedID) isResult()   {}
func (VectorResult) isResult() {}
func (Null) isResult()         {}
func (Neighbors) isResult()    {}
func (Similarity) isResult()   {}
func (Error) isResult()        {}

// Format renders a Result as its wire text, without a trailing newline.
// A Neighbors result renders one "id: ..., vector: [...]" line per
// neighbor; an empty neighbor set renders as an empty line.
func Format(res Result) string {
	switch r := res.(type) {
	case Pong:
		return "pong"
	case Ack:
		return "OK"
	case InsertedID:
		return r.ID
	case VectorResult:
		return FormatVector(r.Vector)
	case Null:
		return "null"
	case Neighbors:
		lines := make([]string, len(r.Neighbors))
		for i, n := range r.Neighbors {
			lines[i] = fmt.Sprintf("id: %s, vector: %s", n.ID, FormatVector(n.Vector))
		}
		return strings.Join(lines, "\n")
	case Similarity:
		return strconv.FormatFloat(r.Score, 'f', 4, 64)
	case Error:
		return "ERR " + r.Reason
	default:
		return "ERR internal error"
	}
}

// FormatVector renders a vector as a bracketed comma-separated component
// list: [1.0, 1.4, 0.4].
func FormatVector(v vector.Vector) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatComponent(c))
	}
	sb.WriteByte(']')
	return sb.String()
}

// formatComponent pins the textual float encoding: fixed 4-decimal
// rounding, trailing zeros trimmed, always at least one fractional digit.
// 1 renders as "1.0", 1.4000000000000001 as "1.4".
func formatComponent(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
