/*
Package nibbles implements the nibble-sequence keys used to address
values in the hexary trie. A key is an ordered sequence of branch
selectors, each in range [0,16), one selector per tree level.
*/
package nibbles

import (
	"bytes"
	"fmt"
)

// Key is an ordered sequence of nibbles. Keys are treated as immutable
// by all consumers; slicing methods may return views aliasing the
// receiver.
type Key []byte

// FromBytes returns a key with one element per input byte. The
// byte-to-nibble convention is the caller's: elements are not range
// checked here, use Valid before feeding the key to the trie.
func FromBytes(b []byte) Key {
	k := make(Key, len(b))
	copy(k, b)
	return k
}

// FromHexString parses a string of hex digits into a key, one nibble
// per digit.
func FromHexString(s string) (Key, error) {
	k := make(Key, len(s))
	for i, c := range []byte(s) {
		switch {
		case '0' <= c && c <= '9':
			k[i] = c - '0'
		case 'a' <= c && c <= 'f':
			k[i] = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			k[i] = c - 'A' + 10
		default:
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return k, nil
}

// Bytes returns the raw nibble elements, one per byte.
func (k Key) Bytes() []byte {
	return []byte(k)
}

// CommonPrefixLen returns the length of the longest leading
// subsequence shared by k and other.
func (k Key) CommonPrefixLen(other Key) int {
	limit := len(k)
	if len(other) < limit {
		limit = len(other)
	}
	for i := 0; i < limit; i++ {
		if k[i] != other[i] {
			return i
		}
	}
	return limit
}

// DropPrefix returns the subsequence of k starting at offset n.
func (k Key) DropPrefix(n int) Key {
	if n <= 0 {
		return k
	}
	if n >= len(k) {
		return Key{}
	}
	return k[n:]
}

// TakeSuffix returns the last n elements of k.
func (k Key) TakeSuffix(n int) Key {
	if n <= 0 {
		return Key{}
	}
	if n >= len(k) {
		return k
	}
	return k[len(k)-n:]
}

// Equal reports whether both keys hold the same nibble sequence.
func (k Key) Equal(other Key) bool {
	return bytes.Equal(k, other)
}

// Valid reports whether every element of k is a nibble.
func (k Key) Valid() bool {
	for _, c := range k {
		if c >= 16 {
			return false
		}
	}
	return true
}

// String returns the key as a string of hex digits.
func (k Key) String() string {
	const digits = "0123456789abcdef"
	buf := make([]byte, len(k))
	for i, c := range k {
		buf[i] = digits[c&0x0f]
	}
	return string(buf)
}
