package mpt

import "errors"

// Insertion-time errors.
var (
	// ErrEmptyKey is returned when a zero-length key is inserted.
	ErrEmptyKey = errors.New("empty key")
	// ErrDuplicateKey is returned when the inserted key already
	// terminates at a leaf.
	ErrDuplicateKey = errors.New("key already present")
	// ErrUnsupportedNode is returned when insertion reaches a node the
	// algorithm cannot descend into, or when a key cannot be
	// represented in the trie shape.
	ErrUnsupportedNode = errors.New("unsupported node")
	// ErrNotFound is returned when a requested trie item is missing.
	ErrNotFound = errors.New("item not found")
)

// Proof-compilation errors.
var (
	// ErrKeyMismatch is returned when the requested key set does not
	// match the leaf it resolves to.
	ErrKeyMismatch = errors.New("leaf key mismatch")
	// ErrKeyNotInTree is returned when a requested key leaves the
	// tree's actual shape.
	ErrKeyNotInTree = errors.New("key not in tree")
	// ErrEmptyTree is returned when keys are requested against an
	// empty subtree.
	ErrEmptyTree = errors.New("empty tree")
	// ErrInternal signals an invariant violation that should be
	// unreachable on a well-formed source tree.
	ErrInternal = errors.New("internal invariant violation")
)

// Proof-interpretation errors.
var (
	// ErrProofTruncated is returned when the hash or keyval stream
	// ends before the instruction stream does.
	ErrProofTruncated = errors.New("proof is truncated")
	// ErrMalformedProof is returned when the proof streams do not
	// match the expected grammar.
	ErrMalformedProof = errors.New("malformed proof")
	// ErrStackUnderflow is returned when an instruction needs more
	// stack entries than are available.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrSlotOutOfRange is returned when a slot operand is not a
	// nibble.
	ErrSlotOutOfRange = errors.New("slot out of range")
	// ErrTypeMismatch is returned when an instruction's stack operand
	// has the wrong node type.
	ErrTypeMismatch = errors.New("node type mismatch")
	// ErrRootMismatch is returned when a rebuilt proof does not hash
	// to the expected root commitment.
	ErrRootMismatch = errors.New("root hash mismatch")
)
