package mpt

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hexary/multiproof/pkg/nibbles"
)

// Trie is a hexary Merkle Patricia trie held fully in memory.
//
// A Trie is a single-writer value: callers needing concurrent access
// must serialize mutations externally and hand readers an immutable
// snapshot.
type Trie struct {
	root Node
}

// NewTrie returns a new trie rooting in the given node. A nil root
// starts an empty trie: a full node with 16 empty slots.
func NewTrie(root Node) *Trie {
	if root == nil {
		root = NewFullNode()
	}
	return &Trie{root: root}
}

// Root returns the current root node of t.
func (t *Trie) Root() Node {
	return t.root
}

// RootHash returns the commitment of the current root node.
func (t *Trie) RootHash() []byte {
	return t.root.Hash()
}

// Put inserts a key-value pair into t. Key elements are branch
// selectors, one nibble per byte.
func (t *Trie) Put(key, value []byte) error {
	r, err := Insert(t.root, nibbles.FromBytes(key), value)
	if err != nil {
		return err
	}
	t.root = r
	return nil
}

// Get returns the value stored under key in t.
func (t *Trie) Get(key []byte) ([]byte, error) {
	return getFromNode(t.root, nibbles.FromBytes(key))
}

// Prove compiles a multiproof for the given key set against t. See
// Prove for details.
func (t *Trie) Prove(keyvals []KeyValue) (*Multiproof, error) {
	return Prove(t.root, keyvals)
}

// Insert inserts a key-value pair into the (sub-)tree rooting in root
// and returns the new root reflecting the change. The path from the
// root to the new leaf is rebuilt copy-on-write, untouched subtrees
// are shared with the input tree; on error the input tree is left
// fully intact.
func Insert(root Node, key nibbles.Key, value []byte) (Node, error) {
	if !key.Valid() {
		return nil, errors.New("key is not a valid nibble sequence")
	}
	return insertNode(root, key, value)
}

func insertNode(curr Node, key nibbles.Key, value []byte) (Node, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	switch n := curr.(type) {
	case *LeafNode:
		return insertIntoLeaf(n, key, value)
	case *ExtensionNode:
		return insertIntoExtension(n, key, value)
	case *FullNode:
		return insertIntoFull(n, key, value)
	default:
		return nil, fmt.Errorf("%w: cannot insert into %T", ErrUnsupportedNode, curr)
	}
}

// insertIntoLeaf splits a leaf into a full node holding both the old
// and the new value, wrapped in an extension when the keys share a
// prefix.
func insertIntoLeaf(curr *LeafNode, key nibbles.Key, value []byte) (Node, error) {
	d := curr.key.CommonPrefixLen(key)
	if d == len(key) {
		// An exhausted insert key is already present, whether it
		// matches the whole leaf key or stops inside it.
		return nil, ErrDuplicateKey
	}
	if d == len(curr.key) {
		return nil, fmt.Errorf("%w: an existing leaf key is a prefix of the inserted key", ErrUnsupportedNode)
	}

	// The differentiating nibble is consumed by the branch index, so
	// both leaf keys are trimmed past it.
	f := NewFullNode()
	f.Children[curr.key[d]] = NewLeafNode(curr.key.DropPrefix(d+1), curr.value)
	f.Children[key[d]] = NewLeafNode(key.DropPrefix(d+1), value)
	if d == 0 {
		return f, nil
	}
	return NewExtensionNode(key[:d], f), nil
}

// insertIntoExtension descends through the extension when its whole
// fragment is shared and splits the fragment otherwise.
func insertIntoExtension(curr *ExtensionNode, key nibbles.Key, value []byte) (Node, error) {
	d := curr.key.CommonPrefixLen(key)
	if d == len(curr.key) {
		child, err := insertNode(curr.next, key.DropPrefix(d), value)
		if err != nil {
			return nil, err
		}
		return NewExtensionNode(curr.key, child), nil
	}
	if d == len(key) {
		return nil, fmt.Errorf("%w: key is a prefix of an extension fragment", ErrUnsupportedNode)
	}

	f := NewFullNode()
	if len(curr.key)-d == 1 {
		// A single fragment nibble remains and the branch index
		// consumes it, the old child is placed directly.
		f.Children[curr.key[d]] = curr.next
	} else {
		f.Children[curr.key[d]] = NewExtensionNode(curr.key.DropPrefix(d+1), curr.next)
	}
	f.Children[key[d]] = NewLeafNode(key.DropPrefix(d+1), value)
	if d == 0 {
		return f, nil
	}
	return NewExtensionNode(key[:d], f), nil
}

// insertIntoFull dispatches on the first key nibble. The node is
// shallow-cloned so that holders of the input tree never observe the
// slot update.
func insertIntoFull(curr *FullNode, key nibbles.Key, value []byte) (Node, error) {
	idx := key[0]
	var child Node
	if _, vacant := curr.Children[idx].(EmptyNode); vacant {
		child = NewLeafNode(key.DropPrefix(1), value)
	} else {
		var err error
		child, err = insertNode(curr.Children[idx], key.DropPrefix(1), value)
		if err != nil {
			return nil, err
		}
	}

	res := *curr
	res.Children[idx] = child
	res.invalidateCache()
	return &res, nil
}

func getFromNode(curr Node, key nibbles.Key) ([]byte, error) {
	switch n := curr.(type) {
	case *LeafNode:
		if n.key.Equal(key) {
			return bytes.Clone(n.value), nil
		}
	case *ExtensionNode:
		if key.CommonPrefixLen(n.key) == len(n.key) {
			return getFromNode(n.next, key.DropPrefix(len(n.key)))
		}
	case *FullNode:
		if len(key) > 0 && key[0] < childCount {
			return getFromNode(n.Children[key[0]], key.DropPrefix(1))
		}
	}
	return nil, ErrNotFound
}
