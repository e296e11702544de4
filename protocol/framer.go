package protocol

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrShortBuffer indicates the buffer starts with a recognized type byte but
	// does not yet hold the full frame. The caller should wait for more bytes.
	ErrShortBuffer = errors.New("protocol: incomplete message")

	// ErrUnknownType indicates the leading byte is not a recognized message type.
	// The caller must advance by exactly one byte and retry.
	ErrUnknownType = errors.New("protocol: unknown message type")
)

// Decode attempts to decode exactly one message from the front of buf.
// On success it returns the event and the number of bytes consumed.
// Decode holds no state; two decoders over the same buffer yield identical
// results. Field values are not range-checked here.
func Decode(buf []byte) (Event, int, error) {
	if len(buf) == 0 {
		return Event{}, 0, ErrShortBuffer
	}

	size := MessageSize(buf[0])
	if size == 0 {
		return Event{}, 0, ErrUnknownType
	}
	if len(buf) < size {
		return Event{}, 0, ErrShortBuffer
	}

	// Common layout: type(1) stock-locate(2) tracking(2) timestamp(6) order-id(8).
	// Stock locate, tracking number, stock symbol and match number are consumed
	// from the frame but carry no meaning for the book.
	ev := Event{Type: buf[0]}
	switch buf[0] {
	case TypeAdd:
		ev.Timestamp = uint48(buf[5:11])
		ev.OrderID = binary.LittleEndian.Uint64(buf[11:19])
		ev.Side = buf[19]
		ev.Quantity = binary.LittleEndian.Uint32(buf[20:24])
		ev.Price = binary.LittleEndian.Uint32(buf[32:36])
	case TypeCancel:
		ev.OrderID = binary.LittleEndian.Uint64(buf[11:19])
		ev.Quantity = binary.LittleEndian.Uint32(buf[19:23])
	case TypeExecute:
		ev.OrderID = binary.LittleEndian.Uint64(buf[11:19])
		ev.Quantity = binary.LittleEndian.Uint32(buf[19:23])
	case TypeReplace:
		ev.Timestamp = uint48(buf[5:11])
		ev.OrderID = binary.LittleEndian.Uint64(buf[11:19])
		ev.NewOrderID = binary.LittleEndian.Uint64(buf[19:27])
		ev.Quantity = binary.LittleEndian.Uint32(buf[27:31])
		ev.Price = binary.LittleEndian.Uint32(buf[31:35])
	}

	return ev, size, nil
}

// uint48 reads a 6-byte little-endian integer.
// The wire timestamp is 6 bytes, not 8.
func uint48(b []byte) uint64 {
	_ = b[5]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 |
		uint64(b[3])<<24 | uint64(b[4])<<32 | uint64(b[5])<<40
}
