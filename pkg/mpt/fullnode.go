package mpt

// childCount is the number of children in a full node, one per nibble
// value.
const childCount = 16

// FullNode represents the trie's full (branch) node with exactly 16
// slots indexed by the next key nibble. Vacant slots hold an
// EmptyNode, never nil.
type FullNode struct {
	BaseNode
	Children [childCount]Node
}

var _ Node = (*FullNode)(nil)

// NewFullNode returns a full node with all 16 slots empty.
func NewFullNode() *FullNode {
	f := new(FullNode)
	for i := range f.Children {
		f.Children[i] = EmptyNode{}
	}
	return f
}

// Type implements Node interface.
func (f *FullNode) Type() NodeType { return FullT }

// Hash implements Node interface.
func (f *FullNode) Hash() []byte {
	return f.getHash(f)
}

// Bytes returns the canonical 16-element record encoding.
func (f *FullNode) Bytes() []byte {
	return f.getBytes(f)
}

// SetChild puts n into the i-th slot.
func (f *FullNode) SetChild(i int, n Node) {
	f.Children[i] = n
	f.invalidateCache()
}

func (f *FullNode) encode() []byte {
	items := make([][]byte, childCount)
	for i, c := range f.Children {
		items[i] = c.Hash()
	}
	return encodeList(items)
}
