package mpt

// EmptyNode represents an absent child. It occupies a full node slot
// with no data and commits to the empty byte string.
type EmptyNode struct{}

var _ Node = EmptyNode{}

// Type implements Node interface.
func (e EmptyNode) Type() NodeType { return EmptyT }

// Hash implements Node interface.
func (e EmptyNode) Hash() []byte { return nil }

func (e EmptyNode) encode() []byte { return nil }
