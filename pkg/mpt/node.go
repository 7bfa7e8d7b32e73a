/*
Package mpt implements a 16-ary Merkle Patricia trie and a compact
multi-key proof protocol over it. A multiproof carries the minimum
set of hashes, leaf records and rebuild instructions needed for a
remote party to reconstruct the touched portion of the tree, check it
against a known root commitment and re-hash it after updating the
proven leaves.
*/
package mpt

// NodeType represents a node type.
type NodeType byte

// Node types definitions.
const (
	FullT NodeType = iota
	ExtensionT
	HashT
	LeafT
	EmptyT
)

// Node represents the common interface of all trie nodes.
//
// Hash returns the node commitment: the canonical encoding itself when
// it fits in 32 bytes, the Keccak-256 digest of the encoding otherwise.
// An empty node commits to the empty byte string.
type Node interface {
	Type() NodeType
	Hash() []byte

	// encode returns the canonical record encoding used as the hash
	// preimage. It is uncached; Hash and Bytes go through BaseNode.
	encode() []byte
}
