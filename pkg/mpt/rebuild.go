package mpt

import (
	"bytes"
	"fmt"

	"github.com/hexary/multiproof/pkg/nibbles"
)

// Rebuild replays the instruction stream over an initially empty stack
// and returns the reconstructed partial tree. Hashes and keyvals are
// consumed strictly left to right as HASHER and LEAF instructions are
// encountered; after the last instruction exactly one node must remain
// on the stack.
func (p *Multiproof) Rebuild() (Node, error) {
	var (
		stack   []Node
		hashes  = p.Hashes
		keyvals = p.KeyVals
	)

	pop := func() (Node, bool) {
		if len(stack) == 0 {
			return nil, false
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, true
	}

	for _, instr := range p.Instructions {
		switch instr.Op {
		case OpHasher:
			if len(hashes) == 0 {
				return nil, fmt.Errorf("%w: HASHER requires one more hash", ErrProofTruncated)
			}
			stack = append(stack, NewHashNode(hashes[0], int(instr.Arg)))
			hashes = hashes[1:]

		case OpLeaf:
			if len(keyvals) == 0 {
				return nil, fmt.Errorf("%w: LEAF requires one more keyval record", ErrProofTruncated)
			}
			key, value, err := decodePair(keyvals[0])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedProof, err)
			}
			keyvals = keyvals[1:]
			k := nibbles.FromBytes(key)
			if int(instr.Arg) > len(k) {
				return nil, fmt.Errorf("%w: LEAF suffix %d exceeds key length %d", ErrMalformedProof, instr.Arg, len(k))
			}
			stack = append(stack, NewLeafNode(k.TakeSuffix(int(instr.Arg)), value))

		case OpBranch:
			n, ok := pop()
			if !ok {
				return nil, fmt.Errorf("%w: BRANCH requires a node on the stack", ErrStackUnderflow)
			}
			if instr.Arg >= childCount {
				return nil, fmt.Errorf("%w: BRANCH slot %d", ErrSlotOutOfRange, instr.Arg)
			}
			f := NewFullNode()
			f.Children[instr.Arg] = n
			stack = append(stack, f)

		case OpExtension:
			n, ok := pop()
			if !ok {
				return nil, fmt.Errorf("%w: EXTENSION requires a node on the stack", ErrStackUnderflow)
			}
			if len(instr.Path) == 0 {
				return nil, fmt.Errorf("%w: EXTENSION with an empty fragment", ErrMalformedProof)
			}
			stack = append(stack, NewExtensionNode(instr.Path, n))

		case OpAdd:
			if len(stack) < 2 {
				return nil, fmt.Errorf("%w: ADD requires two nodes on the stack", ErrStackUnderflow)
			}
			n, _ := pop()
			if instr.Arg >= childCount {
				return nil, fmt.Errorf("%w: ADD slot %d", ErrSlotOutOfRange, instr.Arg)
			}
			switch top := stack[len(stack)-1].(type) {
			case *FullNode:
				top.SetChild(int(instr.Arg), n)
			case *HashNode:
				return nil, fmt.Errorf("%w: ADD into a hash node", ErrTypeMismatch)
			default:
				return nil, fmt.Errorf("%w: ADD into %T, want a full node", ErrTypeMismatch, top)
			}

		default:
			return nil, fmt.Errorf("%w: unknown opcode %d", ErrMalformedProof, byte(instr.Op))
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d nodes left on the stack", ErrMalformedProof, len(stack))
	}
	return stack[0], nil
}

// VerifyMultiproof rebuilds p and checks the result against a known
// root commitment. The returned partial tree carries the proof's leaf
// values; untouched subtrees are present as hash nodes with the
// correct commitments.
func VerifyMultiproof(rootHash []byte, p *Multiproof) (Node, error) {
	root, err := p.Rebuild()
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(root.Hash(), rootHash) {
		return nil, fmt.Errorf("%w: rebuilt %x, want %x", ErrRootMismatch, root.Hash(), rootHash)
	}
	return root, nil
}
