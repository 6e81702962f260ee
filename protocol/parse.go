package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/FaizChishtie/vemcache/vector"
)

// Parse tokenizes one input line and maps it to a Command. Malformed input
// yields Invalid with a descriptive reason, never an error or a panic.
//
// Command names are case-sensitive and lowercase. Numeric arguments are
// parsed strictly: a token that is not a finite float fails the whole
// command instead of being silently dropped.
func Parse(line string) Command {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Invalid{Reason: "empty command"}
	}

	name, args := tokens[0], tokens[1:]

	switch name {
	case "ping":
		if len(args) != 0 {
			return arityError(name)
		}
		return Ping{}

	case "insert":
		if len(args) < 1 {
			return arityError(name)
		}
		components, err := parseComponents(args)
		if err != nil {
			return Invalid{Reason: err.Error()}
		}
		return Insert{Components: components}

	case "named_insert":
		if len(args) < 2 {
			return arityError(name)
		}
		components, err := parseComponents(args[1:])
		if err != nil {
			return Invalid{Reason: err.Error()}
		}
		return NamedInsert{Key: args[0], Components: components}

	case "get":
		if len(args) != 1 {
			return arityError(name)
		}
		return Get{Key: args[0]}

	case "remove":
		if len(args) != 1 {
			return arityError(name)
		}
		return Remove{Key: args[0]}

	case "knn":
		if len(args) != 2 {
			return arityError(name)
		}
		k, err := strconv.Atoi(args[1])
		if err != nil || k < 0 {
			return Invalid{Reason: fmt.Sprintf("expected non-negative integer for k, got %q", args[1])}
		}
		return KNN{Key: args[0], K: k}

	case "vadd":
		if len(args) != 2 {
			return arityError(name)
		}
		return VAdd{Key1: args[0], Key2: args[1]}

	case "vsub":
		if len(args) != 2 {
			return arityError(name)
		}
		return VSub{Key1: args[0], Key2: args[1]}

	case "vscale":
		if len(args) != 2 {
			return arityError(name)
		}
		scalar, err := strconv.ParseFloat(args[1], 64)
		if err != nil || !isFinite(scalar) {
			return Invalid{Reason: fmt.Sprintf("expected floating point value for scalar, got %q", args[1])}
		}
		return VScale{Key: args[0], Scalar: scalar}

	case "vcosine":
		if len(args) != 2 {
			return arityError(name)
		}
		return VCosine{Key1: args[0], Key2: args[1]}

	case "dump":
		if len(args) != 1 {
			return arityError(name)
		}
		return Dump{Filename: args[0]}

	default:
		return Invalid{Reason: fmt.Sprintf("unknown command %q", name)}
	}
}

func parseComponents(tokens []string) (vector.Vector, error) {
	components := make(vector.Vector, len(tokens))
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		// NaN and infinities parse but have no textual encoding in
		// responses, so they are rejected at the door.
		if err != nil || !isFinite(f) {
			return nil, fmt.Errorf("expected floating point value, got %q", tok)
		}
		components[i] = f
	}
	return components, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func arityError(name string) Invalid {
	return Invalid{Reason: fmt.Sprintf("wrong number of arguments for %q", name)}
}
