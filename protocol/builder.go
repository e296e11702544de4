package protocol

import "encoding/binary"

// Frame builders for producers and test harnesses. The core only consumes
// frames; these exist so feeds can be scripted without hand-rolling offsets.
// Ignored fields (stock locate, tracking number, stock symbol, match number)
// are zero-filled.

// BuildAdd returns a complete 36-byte Add frame.
func BuildAdd(orderID uint64, price uint32, quantity uint32, side byte, timestamp uint64) []byte {
	msg := make([]byte, AddMsgSize)
	msg[0] = TypeAdd
	putUint48(msg[5:11], timestamp)
	binary.LittleEndian.PutUint64(msg[11:19], orderID)
	msg[19] = side
	binary.LittleEndian.PutUint32(msg[20:24], quantity)
	binary.LittleEndian.PutUint32(msg[32:36], price)
	return msg
}

// BuildCancel returns a complete 23-byte Cancel frame.
// cancelled is the wire cancelled-shares field; the book performs a full
// cancel regardless of its value.
func BuildCancel(orderID uint64, cancelled uint32) []byte {
	msg := make([]byte, CancelMsgSize)
	msg[0] = TypeCancel
	binary.LittleEndian.PutUint64(msg[11:19], orderID)
	binary.LittleEndian.PutUint32(msg[19:23], cancelled)
	return msg
}

// BuildExecute returns a complete 31-byte Execute frame.
func BuildExecute(orderID uint64, executed uint32) []byte {
	msg := make([]byte, ExecuteMsgSize)
	msg[0] = TypeExecute
	binary.LittleEndian.PutUint64(msg[11:19], orderID)
	binary.LittleEndian.PutUint32(msg[19:23], executed)
	return msg
}

// BuildReplace returns a complete 35-byte Replace frame.
func BuildReplace(orderID, newOrderID uint64, newPrice uint32, newQuantity uint32, timestamp uint64) []byte {
	msg := make([]byte, ReplaceMsgSize)
	msg[0] = TypeReplace
	putUint48(msg[5:11], timestamp)
	binary.LittleEndian.PutUint64(msg[11:19], orderID)
	binary.LittleEndian.PutUint64(msg[19:27], newOrderID)
	binary.LittleEndian.PutUint32(msg[27:31], newQuantity)
	binary.LittleEndian.PutUint32(msg[31:35], newPrice)
	return msg
}

func putUint48(b []byte, v uint64) {
	_ = b[5]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
}
