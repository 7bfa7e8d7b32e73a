package mpt

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/hexary/multiproof/pkg/nibbles"
)

// Opcode is a multiproof stack-machine instruction tag.
type Opcode byte

// Opcode definitions.
const (
	// OpBranch pops a node and pushes a fresh full node holding it at
	// the slot operand.
	OpBranch Opcode = iota
	// OpHasher pushes a hash node consuming one entry from the hash
	// stream; the operand is interpreter bookkeeping carried into the
	// node.
	OpHasher
	// OpLeaf pushes a leaf consuming one entry from the keyval
	// stream, trimming its key to the operand suffix length.
	OpLeaf
	// OpExtension pops a node and wraps it in an extension carrying
	// the instruction's path.
	OpExtension
	// OpAdd pops a node and sets it into the slot operand of the full
	// node left on top of the stack.
	OpAdd
)

// String implements fmt.Stringer.
func (op Opcode) String() string {
	switch op {
	case OpBranch:
		return "BRANCH"
	case OpHasher:
		return "HASHER"
	case OpLeaf:
		return "LEAF"
	case OpExtension:
		return "EXTENSION"
	case OpAdd:
		return "ADD"
	default:
		return fmt.Sprintf("Opcode(%d)", byte(op))
	}
}

// Instruction is one multiproof stack-machine step. Arg carries the
// slot index, leaf key suffix length or hasher counter; Path is set
// for OpExtension only.
type Instruction struct {
	Op   Opcode
	Arg  uint
	Path nibbles.Key
}

// String implements fmt.Stringer.
func (i Instruction) String() string {
	if i.Op == OpExtension {
		return fmt.Sprintf("%v(%v)", i.Op, i.Path)
	}
	return fmt.Sprintf("%v(%d)", i.Op, i.Arg)
}

// KeyValue is a (full key, value) pair handed to the multiproof
// compiler.
type KeyValue struct {
	Key   nibbles.Key
	Value []byte
}

// Multiproof is a compact proof covering several keys at once. The
// three streams are order-dependent: instructions must be replayed
// verbatim, hashes and keyvals are consumed left to right as HASHER
// and LEAF instructions are encountered.
type Multiproof struct {
	Hashes       [][]byte
	Instructions []Instruction
	KeyVals      [][]byte
}

// Bytes returns the stable wire encoding of p.
func (p *Multiproof) Bytes() ([]byte, error) {
	return rlp.EncodeToBytes(p)
}

// DecodeMultiproof decodes a multiproof from its wire encoding.
func DecodeMultiproof(data []byte) (*Multiproof, error) {
	p := new(Multiproof)
	if err := rlp.DecodeBytes(data, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProof, err)
	}
	return p, nil
}

// Prove compiles a multiproof for the given key set against the tree
// rooting in root. Each pair carries the full key to be proven and the
// new value the verifying side should install at it; the emitted
// keyval records hold the new values, so the rebuilt tree hashes to
// the post-update root. Proving the old root requires passing the
// currently stored values.
//
// The compiled streams are deterministic: full node slots are visited
// in increasing order and the instruction order mirrors the tree
// shape, so proving the same key set twice yields identical proofs.
func Prove(root Node, keyvals []KeyValue) (*Multiproof, error) {
	p := new(Multiproof)
	if err := proveNode(root, keyvals, p); err != nil {
		return nil, err
	}
	return p, nil
}

func proveNode(curr Node, keyvals []KeyValue, p *Multiproof) error {
	// A subtree with no requested keys is carried as its commitment
	// alone.
	if len(keyvals) == 0 {
		p.Instructions = append(p.Instructions, Instruction{Op: OpHasher})
		p.Hashes = append(p.Hashes, curr.Hash())
		return nil
	}

	switch n := curr.(type) {
	case *FullNode:
		return proveFullNode(n, keyvals, p)
	case *LeafNode:
		return proveLeaf(n, keyvals, p)
	case *ExtensionNode:
		return proveExtension(n, keyvals, p)
	case EmptyNode:
		return fmt.Errorf("%w: no leaf to prove under the requested keys", ErrEmptyTree)
	case *HashNode:
		return fmt.Errorf("%w: hash node reached during proof compilation", ErrInternal)
	default:
		return fmt.Errorf("%w: unknown node type %T", ErrInternal, curr)
	}
}

// proveFullNode partitions the requested keys by their leading nibble
// and walks the 16 slots in increasing order. The first slot that
// contributes anything emits BRANCH to create the full node frame,
// every later contributor folds in with ADD.
func proveFullNode(curr *FullNode, keyvals []KeyValue, p *Multiproof) error {
	var buckets [childCount][]KeyValue
	for _, kv := range keyvals {
		if len(kv.Key) == 0 {
			return fmt.Errorf("%w: key terminates at a full node", ErrKeyNotInTree)
		}
		idx := kv.Key[0]
		if idx >= childCount {
			return fmt.Errorf("%w: branch selector %#x is not a nibble", ErrKeyNotInTree, idx)
		}
		buckets[idx] = append(buckets[idx], KeyValue{Key: kv.Key.DropPrefix(1), Value: kv.Value})
	}

	first := true
	for slot := 0; slot < childCount; slot++ {
		if len(buckets[slot]) == 0 {
			if _, vacant := curr.Children[slot].(EmptyNode); vacant {
				continue
			}
			p.Instructions = append(p.Instructions, Instruction{Op: OpHasher})
			p.Hashes = append(p.Hashes, curr.Children[slot].Hash())
		} else if err := proveNode(curr.Children[slot], buckets[slot], p); err != nil {
			return err
		}
		if first {
			p.Instructions = append(p.Instructions, Instruction{Op: OpBranch, Arg: uint(slot)})
			first = false
		} else {
			p.Instructions = append(p.Instructions, Instruction{Op: OpAdd, Arg: uint(slot)})
		}
	}
	return nil
}

func proveLeaf(curr *LeafNode, keyvals []KeyValue, p *Multiproof) error {
	if len(keyvals) != 1 {
		return fmt.Errorf("%w: expected exactly 1 key at a leaf, got %d", ErrKeyMismatch, len(keyvals))
	}
	kv := keyvals[0]
	if !curr.key.Equal(kv.Key) {
		return fmt.Errorf("%w: requested %v, leaf holds %v", ErrKeyMismatch, kv.Key, curr.key)
	}
	p.Instructions = append(p.Instructions, Instruction{Op: OpLeaf, Arg: uint(len(kv.Key))})
	p.KeyVals = append(p.KeyVals, encodePair(kv.Key.Bytes(), kv.Value))
	return nil
}

// proveExtension requires every requested key to share the fragment,
// recurses with the fragment trimmed off and wraps the spliced child
// stream in an EXTENSION instruction. The fragment always travels in
// the proof, so the verifying side needs no prior knowledge of the
// tree shape.
func proveExtension(curr *ExtensionNode, keyvals []KeyValue, p *Multiproof) error {
	sub := make([]KeyValue, 0, len(keyvals))
	for _, kv := range keyvals {
		if kv.Key.CommonPrefixLen(curr.key) != len(curr.key) {
			return fmt.Errorf("%w: key %v does not follow the extension %v", ErrKeyNotInTree, kv.Key, curr.key)
		}
		sub = append(sub, KeyValue{Key: kv.Key.DropPrefix(len(curr.key)), Value: kv.Value})
	}
	if err := proveNode(curr.next, sub, p); err != nil {
		return err
	}
	p.Instructions = append(p.Instructions, Instruction{Op: OpExtension, Path: curr.key})
	return nil
}
