package nibtb

import "github.com/segmentio/ksuid"

// NodeKind tags the three possible shapes of an infection tree node, the
// tagged-variant design called for when cyclic cow/farm/sett/badger
// references are flattened into integer handles (see DESIGN.md).
type NodeKind uint8

const (
	// RootNode is the single synthetic node every infection tree is
	// rooted at.
	RootNode NodeKind = iota
	// CowNode wraps a cow handle.
	CowNode
	// BadgerNode wraps a badger handle.
	BadgerNode
)

// NodeRef identifies a node in the infection tree: the root, or a cow
// or badger by its scenario-local integer handle.
type NodeRef struct {
	Kind NodeKind
	ID   int
}

// Root is the well-known reference to the tree's synthetic root.
var Root = NodeRef{Kind: RootNode}

// CowRef builds a NodeRef for a cow handle.
func CowRef(id int) NodeRef { return NodeRef{Kind: CowNode, ID: id} }

// BadgerRef builds a NodeRef for a badger handle.
func BadgerRef(id int) NodeRef { return NodeRef{Kind: BadgerNode, ID: id} }

// RunID is a sortable, collision-resistant identifier stamped on a
// scenario's result file so aggregated output can be traced back to
// the run that produced it, mirroring how the teacher tags each
// GenotypeNode with a ksuid.KSUID instead of a plain counter.
type RunID = ksuid.KSUID

// NewRunID mints a fresh run identifier.
func NewRunID() RunID { return ksuid.New() }
