// Package protocol turns text lines into store operations and results back
// into response text.
//
// One line in, one response out. The command set is a closed variant type:
// Parse yields exactly one of the Command implementations below, and the
// dispatcher switches exhaustively over them, so adding a command is a
// compile-time exercise rather than a string-comparison chain.
package protocol

import (
	"github.com/FaizChishtie/vemcache/vector"
)

// Command is one parsed protocol command. The set of implementations is
// closed; Parse never returns anything else.
type Command interface {
	isCommand()
}

// Ping checks the connection; the server answers "pong".
type Ping struct{}

// Insert stores a vector under a freshly generated id and answers the id.
type Insert struct {
	Components vector.Vector
}

// NamedInsert stores a vector under the caller-supplied key, replacing any
// prior vector there.
type NamedInsert struct {
	Key        string
	Components vector.Vector
}

// Get retrieves the vector stored under Key.
type Get struct {
	Key string
}

// Remove deletes the vector stored under Key. Removing an absent key still
// answers OK.
type Remove struct {
	Key string
}

// KNN finds the K nearest neighbors of the vector stored under Key.
type KNN struct {
	Key string
	K   int
}

// VAdd answers the element-wise sum of the vectors under Key1 and Key2.
type VAdd struct {
	Key1, Key2 string
}

// VSub answers the element-wise difference of the vectors under Key1 and
// Key2.
type VSub struct {
	Key1, Key2 string
}

// VScale answers the vector under Key multiplied by Scalar.
type VScale struct {
	Key    string
	Scalar float64
}

// VCosine answers the cosine similarity of the vectors under Key1 and Key2.
type VCosine struct {
	Key1, Key2 string
}

// Dump snapshots the store to the named file.
type Dump struct {
	Filename string
}

// Invalid carries the reason a line could not be parsed.
type Invalid struct {
	Reason string
}

func (Ping) isCommand()        {}
func (Insert) isCommand()      {}
func (NamedInsert) isCommand() {}
func (Get) isCommand()        {}
func (Remove) isCommand()     {}
func (KNN) isCommand()        {}
func (VAdd) isCommand()       {}
func (VSub) isCommand()       {}
func (VScale) isCommand()     {}
func (VCosine) isCommand()    {}
func (Dump) isCommand()       {}
func (Invalid) isCommand()    {}
