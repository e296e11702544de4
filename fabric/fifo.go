package fabric

import (
	"errors"

	"github.com/gammazero/deque"
)

// DefaultDepth is the default FIFO capacity in bytes.
// Models the BRAM allocated to an AXI-Stream FIFO between the front-end and the host.
const DefaultDepth = 4096

// ErrInvalidDepth is returned when a FIFO is created with a non-positive capacity.
var ErrInvalidDepth = errors.New("fabric: fifo depth must be at least one byte")

// Stats tracks flow-control accounting for a FIFO.
type Stats struct {
	BackpressureEvents uint64 `json:"backpressure_events"` // writes rejected because the FIFO was full
	BytesWritten       uint64 `json:"bytes_written"`       // total accepted bytes
	BytesDropped       uint64 `json:"bytes_dropped"`       // total bytes rejected due to backpressure
	BytesRead          uint64 `json:"bytes_read"`          // total consumed bytes
	MaxDepthReached    int    `json:"max_depth_reached"`   // high-water mark in bytes
}

// FIFO is a bounded byte-chunk queue with backpressure.
// One logical producer writes chunks, one engine drains them; the FIFO itself
// provides no locking (see the engine's shared-resource contract).
type FIFO struct {
	chunks   deque.Deque[[]byte]
	maxDepth int
	depth    int
	stats    Stats
}

// New creates a FIFO bounded at maxDepth bytes.
func New(maxDepth int) (*FIFO, error) {
	if maxDepth < 1 {
		return nil, ErrInvalidDepth
	}
	return &FIFO{maxDepth: maxDepth}, nil
}

// WriteChunk enqueues one chunk. A chunk is never partially accepted: if it does
// not fit in the remaining capacity the whole chunk is rejected, backpressure is
// recorded, and false is returned.
func (f *FIFO) WriteChunk(chunk []byte) bool {
	if f.depth+len(chunk) > f.maxDepth {
		f.stats.BackpressureEvents++
		f.stats.BytesDropped += uint64(len(chunk))
		return false
	}

	f.chunks.PushBack(chunk)
	f.depth += len(chunk)
	f.stats.BytesWritten += uint64(len(chunk))
	if f.depth > f.stats.MaxDepthReached {
		f.stats.MaxDepthReached = f.depth
	}
	return true
}

// ReadChunk dequeues the head chunk into out. Returns false when the FIFO is empty.
func (f *FIFO) ReadChunk(out *[]byte) bool {
	if f.chunks.Len() == 0 {
		return false
	}

	chunk := f.chunks.PopFront()
	f.depth -= len(chunk)
	f.stats.BytesRead += uint64(len(chunk))
	*out = chunk
	return true
}

// Empty reports whether the FIFO holds no chunks.
func (f *FIFO) Empty() bool {
	return f.chunks.Len() == 0
}

// Full reports whether the FIFO has reached its byte capacity.
func (f *FIFO) Full() bool {
	return f.depth >= f.maxDepth
}

// DepthBytes returns the current occupancy in bytes.
func (f *FIFO) DepthBytes() int {
	return f.depth
}

// AvailableBytes returns the remaining capacity in bytes.
func (f *FIFO) AvailableBytes() int {
	return f.maxDepth - f.depth
}

// Utilization returns occupancy as a fraction of capacity in [0, 1].
func (f *FIFO) Utilization() float64 {
	return float64(f.depth) / float64(f.maxDepth)
}

// Stats returns a copy of the flow-control counters.
func (f *FIFO) Stats() Stats {
	return f.stats
}

// ResetStats zeroes all flow-control counters.
func (f *FIFO) ResetStats() {
	f.stats = Stats{}
}
