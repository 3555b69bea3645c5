// Package tree defines the read-only view of a keyed hierarchy consumed by
// the navigator, independent of the on-disk format that produced it.
package tree

import (
	"errors"
	"time"
)

// ErrNoRoot reports that a provider could not produce its root node.
var ErrNoRoot = errors.New("tree has no root node")

// Node is a key in the tree. ID is stable and unique for the life of the
// provider (for hives, the absolute file offset of the key cell).
type Node struct {
	ID          int64
	Name        string
	Descendants int
	ValueCount  int
	LastWrite   time.Time
}

// Kind classifies a value payload.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindString
	KindMultiString
	KindBinary
	KindError
)

// Value is a typed datum attached to a node. Only the field matching Kind is
// meaningful; Type carries the raw registry data type for display.
type Value struct {
	Name    string
	Type    uint32
	Kind    Kind
	Int     uint64
	String  string
	Strings []string
	Data    []byte
	Err     error
}

// Provider supplies tree structure to the navigator. Calls are synchronous and
// must not be made concurrently.
type Provider interface {
	Root() (Node, error)
	Children(n Node) ([]Node, error)
	Values(n Node) ([]Value, error)
	Parent(n Node) (Node, bool)
}
