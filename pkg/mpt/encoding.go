package mpt

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/sha3"
)

// keccak256 computes the Keccak-256 digest of data.
func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// appendString appends the RLP string encoding of s to buf.
func appendString(buf, s []byte) []byte {
	enc, err := rlp.EncodeToBytes(s)
	if err != nil {
		panic(err) // byte strings always encode
	}
	return append(buf, enc...)
}

// compactLen returns the byte length of the compact form of a nibble
// key: a parity nibble packed with the first key nibble for odd keys,
// a parity byte followed by one byte per nibble for even keys.
func compactLen(key []byte) int {
	if len(key)%2 == 1 {
		return (len(key) + 1) / 2
	}
	return len(key) + 1
}

// encodePair encodes a two-element (key, value) record, the canonical
// form of a leaf. The elements are RLP strings; the list header claims
// a payload of compactLen(key) bytes rather than the actual payload
// size, which keeps the byte layout identical to interoperating
// encoders.
func encodePair(key, value []byte) []byte {
	var ek, ev []byte
	ek = appendString(ek, key)
	ev = appendString(ev, value)

	var head []byte
	if n := compactLen(key); n <= 55 {
		head = []byte{0xC0 + byte(n)}
	} else {
		head = []byte{0xF8, byte(n)}
	}

	out := make([]byte, 0, len(head)+len(ek)+len(ev))
	out = append(out, head...)
	out = append(out, ek...)
	return append(out, ev...)
}

// decodePair decodes a two-element (key, value) record. It accepts any
// list tag and requires exactly two string elements consuming the
// whole input.
func decodePair(b []byte) (key, value []byte, err error) {
	if len(b) == 0 || b[0] < 0xC0 {
		return nil, nil, errors.New("not a record")
	}
	content := b[1:]
	if b[0] > 0xF7 {
		// Skip the length bytes of a long-form list tag.
		n := int(b[0] - 0xF7)
		if len(content) < n {
			return nil, nil, errors.New("record tag is truncated")
		}
		content = content[n:]
	}
	key, rest, err := rlp.SplitString(content)
	if err != nil {
		return nil, nil, fmt.Errorf("record key: %w", err)
	}
	value, rest, err = rlp.SplitString(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("record value: %w", err)
	}
	if len(rest) != 0 {
		return nil, nil, errors.New("trailing bytes after record")
	}
	return key, value, nil
}

// encodeList encodes a record of byte strings as a canonical RLP list,
// the form used for extension and full node preimages.
func encodeList(items [][]byte) []byte {
	enc, err := rlp.EncodeToBytes(items)
	if err != nil {
		panic(err) // lists of byte strings always encode
	}
	return enc
}
