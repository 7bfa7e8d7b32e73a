package mpt

import (
	"github.com/hexary/multiproof/pkg/nibbles"
)

// ExtensionNode represents the trie's extension node: a single child
// reached via a shared key fragment. The fragment is never empty, a
// zero-length extension degrades to its child directly.
type ExtensionNode struct {
	BaseNode
	key  nibbles.Key
	next Node
}

var _ Node = (*ExtensionNode)(nil)

// NewExtensionNode returns an extension node with the specified key
// fragment and child.
func NewExtensionNode(key nibbles.Key, next Node) *ExtensionNode {
	return &ExtensionNode{key: key, next: next}
}

// Type implements Node interface.
func (e *ExtensionNode) Type() NodeType { return ExtensionT }

// Hash implements Node interface.
func (e *ExtensionNode) Hash() []byte {
	return e.getHash(e)
}

// Bytes returns the canonical (fragment, child commitment) record
// encoding.
func (e *ExtensionNode) Bytes() []byte {
	return e.getBytes(e)
}

// Key returns the extension's key fragment.
func (e *ExtensionNode) Key() nibbles.Key { return e.key }

// Next returns the extension's child.
func (e *ExtensionNode) Next() Node { return e.next }

func (e *ExtensionNode) encode() []byte {
	return encodeList([][]byte{e.key.Bytes(), e.next.Hash()})
}
