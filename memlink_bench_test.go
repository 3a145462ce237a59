package memlink

import (
	"fmt"
	"testing"
)

func BenchmarkInsertZeroAllocs(b *testing.B) {
	m := New(make([]byte, 4096))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = m.Insert(128, 64)
	}
}

func BenchmarkEraseZeroAllocs(b *testing.B) {
	m := New(make([]byte, 4096))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = m.Erase(128, 64)
	}
}

func BenchmarkInsertUnchecked(b *testing.B) {
	m := New(make([]byte, 4096))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.InsertUnchecked(128, 64)
	}
}

func BenchmarkFillByte(b *testing.B) {
	m := New(make([]byte, 4096))
	pat := []byte{0x5A}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Fill(0, pat, 4096)
	}
}

func BenchmarkFillPattern(b *testing.B) {
	m := New(make([]byte, 4096))
	pat := []byte("0123456789abcdef")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Fill(0, pat, 256)
	}
}

func BenchmarkScratch(b *testing.B) {
	pat := []byte{1}
	fn := func(m *MemLink) error { return m.Fill(0, pat, m.Size()) }
	for _, size := range []int{16, scratchInline, 1024} {
		b.Run(fmt.Sprint(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = WithScratch(size, fn)
			}
		})
	}
}
