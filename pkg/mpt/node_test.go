package mpt

import (
	"bytes"
	"testing"

	"github.com/hexary/multiproof/pkg/nibbles"
	"github.com/stretchr/testify/require"
)

func TestLeafHashInlined(t *testing.T) {
	// Small encodings are their own commitment, no digest applied.
	l := NewLeafNode(nibbles.Key{1, 2, 3}, []byte{4, 5, 6})
	require.Equal(t, []byte{194, 131, 1, 2, 3, 131, 4, 5, 6}, l.Hash())
}

func TestLeafHashInlinedShortElements(t *testing.T) {
	// Empty and single-nibble keys have a one-byte compact form, so
	// the record tag drops to 0xC1.
	l := NewLeafNode(nibbles.Key{}, []byte{4, 5, 6})
	require.Equal(t, []byte{0xC1, 0x80, 0x83, 4, 5, 6}, l.Hash())

	l = NewLeafNode(nibbles.Key{9}, []byte{10, 11, 12})
	require.Equal(t, []byte{0xC1, 0x09, 0x83, 10, 11, 12}, l.Hash())
}

func TestLeafRecordTag(t *testing.T) {
	// The record tag claims a payload of compactLen(key) bytes: odd
	// keys pack two nibbles per byte after the parity nibble, even
	// keys spend a whole byte per nibble after the parity byte.
	cases := []struct {
		name string
		key  nibbles.Key
		tag  byte
	}{
		{"empty key", nibbles.Key{}, 0xC1},
		{"single nibble", nibbles.Key{9}, 0xC1},
		{"odd key", nibbles.Key{1, 2, 3}, 0xC2},
		{"odd suffix", nibbles.FromBytes(bytes.Repeat([]byte{1}, 31)), 0xD0},
		{"even key", nibbles.FromBytes(make([]byte, 32)), 0xE1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLeafNode(tc.key, []byte{4, 5, 6})
			require.Equal(t, tc.tag, l.Bytes()[0])
		})
	}
}

func TestLeafHashLargeKey(t *testing.T) {
	// 32-nibble keys push the record over the inlining limit, so the
	// commitment is the Keccak-256 digest of the encoding.
	key := nibbles.FromBytes(make([]byte, 32))

	l := NewLeafNode(key, []byte{4, 5, 6})
	require.Equal(t, []byte{
		131, 176, 193, 69, 224, 210, 235, 150, 232, 34, 23, 122, 33, 191, 215, 245,
		166, 14, 84, 130, 80, 200, 156, 109, 242, 82, 179, 107, 99, 126, 138, 48,
	}, l.Hash())

	l = NewLeafNode(key, bytes.Repeat([]byte{1}, 32))
	require.Equal(t, []byte{
		46, 13, 98, 250, 109, 96, 126, 167, 238, 29, 122, 212, 177, 83, 107, 74,
		122, 19, 242, 93, 2, 118, 56, 156, 108, 100, 76, 183, 135, 237, 157, 192,
	}, l.Hash())
}

func TestLeafHashBoundary(t *testing.T) {
	// Key of 3 nibbles + value of n bytes encodes to 6+n bytes.
	t.Run("32 bytes is inlined", func(t *testing.T) {
		l := NewLeafNode(nibbles.Key{1, 2, 3}, make([]byte, 26))
		require.Len(t, l.Bytes(), 32)
		require.Equal(t, l.Bytes(), l.Hash())
	})
	t.Run("33 bytes is hashed", func(t *testing.T) {
		l := NewLeafNode(nibbles.Key{1, 2, 3}, make([]byte, 27))
		require.Len(t, l.Bytes(), 33)
		require.Len(t, l.Hash(), 32)
		require.NotEqual(t, l.Bytes()[:32], l.Hash())
	})
}

func TestLeafHashLargeValue(t *testing.T) {
	l := NewLeafNode(nibbles.FromBytes(make([]byte, 32)), make([]byte, 32))
	require.Len(t, l.Hash(), 32)
	require.NotEqual(t, l.Bytes()[:32], l.Hash())
}

func TestEmptyNodeHash(t *testing.T) {
	require.Empty(t, EmptyNode{}.Hash())
}

func TestHashNodePassthrough(t *testing.T) {
	digest := []byte{0xde, 0xad, 0xbe, 0xef}
	h := NewHashNode(digest, 3)
	require.Equal(t, digest, h.Hash())
	require.Equal(t, 3, h.Aux())
}

func TestFullNodeHash(t *testing.T) {
	f := NewFullNode()
	f.SetChild(0, NewLeafNode(nibbles.Key{}, []byte{4, 5, 6}))
	f.SetChild(2, NewLeafNode(nibbles.Key{9}, []byte{10, 11, 12}))

	expected := []byte{
		220, 134, 193, 128, 131, 4, 5, 6, 128, 134, 193, 9, 131, 10, 11, 12,
		128, 128, 128, 128, 128, 128, 128, 128, 128, 128, 128, 128, 128,
	}
	require.Equal(t, expected, f.Hash())
}

func TestExtensionHashInlined(t *testing.T) {
	// The child commitment is embedded verbatim as a string element.
	l := NewLeafNode(nibbles.Key{1, 2, 3}, []byte{4, 5, 6})
	e := NewExtensionNode(nibbles.Key{0xd, 0xe}, l)

	child := l.Hash()
	expected := append([]byte{byte(0xC0 + 3 + 1 + len(child)), 0x82, 0xd, 0xe, byte(0x80 + len(child))}, child...)
	require.Equal(t, expected, e.Hash())
}

func TestHashWithPlaceholders(t *testing.T) {
	// Hashing is defined on partially expanded trees: a hash node
	// child contributes its stored commitment unchanged.
	l := NewLeafNode(nibbles.Key{9}, []byte{10, 11, 12})

	full := NewFullNode()
	full.SetChild(2, l)
	want := full.Hash()

	partial := NewFullNode()
	partial.SetChild(2, NewHashNode(l.Hash(), 0))
	require.Equal(t, want, partial.Hash())
}

func TestFullNodeCacheInvalidation(t *testing.T) {
	f := NewFullNode()
	empty := f.Hash()

	f.SetChild(4, NewLeafNode(nibbles.Key{1}, []byte{2}))
	require.NotEqual(t, empty, f.Hash())

	f.SetChild(4, EmptyNode{})
	require.Equal(t, empty, f.Hash())
}
