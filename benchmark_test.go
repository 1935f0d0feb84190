package sumhash

import "testing"

var emptyBuf = make([]byte, 16384)

func benchmarkHashSize(b *testing.B, size int) {
	b.SetBytes(int64(size))
	sum := make([]byte, DigestSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := New()
		d.Write(emptyBuf[:size])
		d.Sum(sum[:0])
	}
}

func BenchmarkHash64Bytes(b *testing.B) {
	benchmarkHashSize(b, 64)
}

func BenchmarkHash1K(b *testing.B) {
	benchmarkHashSize(b, 1024)
}

func BenchmarkHash8K(b *testing.B) {
	benchmarkHashSize(b, 8192)
}
