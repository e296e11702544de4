package lob

import (
	"testing"

	"github.com/quanta-dev/bookfabric/fabric"
	"github.com/quanta-dev/bookfabric/protocol"
)

func BenchmarkAddCancel(b *testing.B) {
	fifo, _ := fabric.New(fabric.DefaultDepth)
	e := NewEngine(fifo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := uint64(i + 1)
		e.AddOrder(id, Bid, uint32(10000+i%64), 10, 0)
		e.CancelOrder(id)
	}
}

func BenchmarkProcessAddStream(b *testing.B) {
	fifo, _ := fabric.New(1 << 20)
	e := NewEngine(fifo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fifo.WriteChunk(protocol.BuildAdd(uint64(i+1), uint32(10000+i%64), 10, 'B', 0))
		e.Process()
	}
}

func BenchmarkDepth(b *testing.B) {
	fifo, _ := fabric.New(fabric.DefaultDepth)
	e := NewEngine(fifo)
	for i := 0; i < 1024; i++ {
		e.AddOrder(uint64(i+1), Bid, uint32(10000+i), 10, 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Depth(10)
	}
}
