package mpt

// HashNode stands in for a subtree that was not expanded. It carries
// the subtree's commitment and an auxiliary counter used only by the
// proof interpreter bookkeeping; the counter is not a structural
// property of the hashed content and is carried through unchanged.
type HashNode struct {
	hash []byte
	aux  int
}

var _ Node = (*HashNode)(nil)

// NewHashNode returns a hash node with the specified commitment and
// auxiliary counter.
func NewHashNode(hash []byte, aux int) *HashNode {
	return &HashNode{hash: hash, aux: aux}
}

// Type implements Node interface.
func (h *HashNode) Type() NodeType { return HashT }

// Hash implements Node interface. The stored commitment is returned
// unchanged, it is never re-hashed.
func (h *HashNode) Hash() []byte {
	return h.hash
}

// Aux returns the auxiliary counter.
func (h *HashNode) Aux() int { return h.aux }

func (h *HashNode) encode() []byte {
	panic("hash node has no canonical encoding")
}
