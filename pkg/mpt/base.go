package mpt

// inlineCommitmentSize is the canonical-encoding length up to which a
// node encoding is its own commitment instead of being hashed.
const inlineCommitmentSize = 32

// BaseNode implements basic things every node needs like caching the
// canonical encoding and the commitment. It's a basic node building
// block intended to be included into all node types.
type BaseNode struct {
	hash       []byte
	bytes      []byte
	hashValid  bool
	bytesValid bool
}

// getBytes returns the cached canonical encoding of n.
func (b *BaseNode) getBytes(n Node) []byte {
	if !b.bytesValid {
		b.bytes = n.encode()
		b.bytesValid = true
	}
	return b.bytes
}

// getHash returns the cached commitment of n. Encodings of up to
// inlineCommitmentSize bytes are self-describing and returned verbatim.
func (b *BaseNode) getHash(n Node) []byte {
	if !b.hashValid {
		enc := b.getBytes(n)
		if len(enc) > inlineCommitmentSize {
			b.hash = keccak256(enc)
		} else {
			b.hash = enc
		}
		b.hashValid = true
	}
	return b.hash
}

// invalidateCache sets all cache fields to invalid state.
func (b *BaseNode) invalidateCache() {
	b.bytesValid = false
	b.hashValid = false
}
