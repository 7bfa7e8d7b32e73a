package mpt

import (
	"math/rand"
	"testing"

	"github.com/hexary/multiproof/pkg/nibbles"
)

func randomKeys(n int) [][]byte {
	rnd := rand.New(rand.NewSource(1))
	keys := make([][]byte, n)
	for i := range keys {
		k := make([]byte, 32)
		for j := range k {
			k[j] = byte(rnd.Intn(16))
		}
		keys[i] = k
	}
	return keys
}

func BenchmarkPut(b *testing.B) {
	keys := randomKeys(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := NewTrie(nil)
		for _, k := range keys {
			if err := tr.Put(k, k); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkProve(b *testing.B) {
	keys := randomKeys(1000)
	tr := NewTrie(nil)
	for _, k := range keys {
		if err := tr.Put(k, k); err != nil {
			b.Fatal(err)
		}
	}
	keyvals := make([]KeyValue, 16)
	for i := range keyvals {
		keyvals[i] = KeyValue{Key: nibbles.FromBytes(keys[i]), Value: keys[i]}
	}
	tr.RootHash() // warm the node caches
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.Prove(keyvals); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRebuild(b *testing.B) {
	keys := randomKeys(1000)
	tr := NewTrie(nil)
	for _, k := range keys {
		if err := tr.Put(k, k); err != nil {
			b.Fatal(err)
		}
	}
	keyvals := make([]KeyValue, 16)
	for i := range keyvals {
		keyvals[i] = KeyValue{Key: nibbles.FromBytes(keys[i]), Value: keys[i]}
	}
	proof, err := tr.Prove(keyvals)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := proof.Rebuild(); err != nil {
			b.Fatal(err)
		}
	}
}
