package lob

import "time"

// BookSnapshot contains the full resting-order state of a single engine.
// It is an in-memory view; the engine persists nothing.
type BookSnapshot struct {
	EngineID string    `json:"engine_id"`
	TakenAt  time.Time `json:"taken_at"`
	Bids     []Order   `json:"bids"` // best price first, FIFO order within a level
	Asks     []Order   `json:"asks"`
}

// Snapshot serializes both sides in priority order: best price first, and
// first-in-first-priority within each level.
func (e *Engine) Snapshot() *BookSnapshot {
	return &BookSnapshot{
		EngineID: e.id,
		TakenAt:  time.Now(),
		Bids:     e.bids.snapshot(e.index.get),
		Asks:     e.asks.snapshot(e.index.get),
	}
}
