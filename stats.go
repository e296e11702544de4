package lob

// ErrorStats holds the engine's monotonic error counters. All error paths are
// non-fatal; Process never unwinds, callers observe failures here.
type ErrorStats struct {
	UnknownMessageTypes uint64 `json:"unknown_message_types"`
	BufferOverflows     uint64 `json:"buffer_overflows"`
	IncompleteMessages  uint64 `json:"incomplete_messages"`
	InvalidOperations   uint64 `json:"invalid_operations"`
}
