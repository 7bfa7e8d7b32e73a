package mpt

import (
	"github.com/hexary/multiproof/pkg/nibbles"
)

// LeafNode represents the trie's leaf node. Its key is always relative
// to the node's position in the tree: the nibbles remaining between
// this point and the stored value.
type LeafNode struct {
	BaseNode
	key   nibbles.Key
	value []byte
}

var _ Node = (*LeafNode)(nil)

// NewLeafNode returns a leaf node with the specified relative key and
// value.
func NewLeafNode(key nibbles.Key, value []byte) *LeafNode {
	return &LeafNode{key: key, value: value}
}

// Type implements Node interface.
func (n *LeafNode) Type() NodeType { return LeafT }

// Hash implements Node interface.
func (n *LeafNode) Hash() []byte {
	return n.getHash(n)
}

// Bytes returns the canonical (key, value) record encoding.
func (n *LeafNode) Bytes() []byte {
	return n.getBytes(n)
}

// Key returns the leaf's relative key.
func (n *LeafNode) Key() nibbles.Key { return n.key }

// Value returns the leaf's value.
func (n *LeafNode) Value() []byte { return n.value }

func (n *LeafNode) encode() []byte {
	return encodePair(n.key.Bytes(), n.value)
}
