package lob

import (
	"errors"

	"github.com/rs/xid"

	"github.com/quanta-dev/bookfabric/fabric"
	"github.com/quanta-dev/bookfabric/protocol"
)

// maxReassemblyBytes caps the reassembly buffer. Exceeding it discards the
// entire buffer and records a buffer overflow.
const maxReassemblyBytes = 512

// Engine consumes the transport FIFO, reassembles and decodes wire messages,
// and maintains the dual book representation: an order-id index for O(1)
// identity lookups and per-side price levels for top-of-book and depth.
//
// The engine is single-threaded by contract: one logical producer writes the
// FIFO, one caller ticks Process, and queries are safe only while no mutator
// is active. It provides no locking of its own.
type Engine struct {
	id       string
	fifo     *fabric.FIFO
	buf      []byte
	index    *orderIndex
	bids     *bookSide
	asks     *bookSide
	callback EventCallback
	errStats ErrorStats

	// Set while an event callback frame is on the stack; mutators and Process
	// refuse to run re-entrantly.
	dispatching bool
}

// NewEngine creates an engine draining the given FIFO.
func NewEngine(fifo *fabric.FIFO) *Engine {
	return &Engine{
		id:    xid.New().String(),
		fifo:  fifo,
		buf:   make([]byte, 0, maxReassemblyBytes),
		index: newOrderIndex(),
		bids:  newBidSide(),
		asks:  newAskSide(),
	}
}

// ID returns the engine instance id used in log fields and snapshots.
func (e *Engine) ID() string {
	return e.id
}

// SetEventCallback registers the single event observer. The callback fires
// synchronously after each mutation commits and must not re-enter the engine.
func (e *Engine) SetEventCallback(cb EventCallback) {
	e.callback = cb
}

// Process performs one tick: drain every chunk currently in the FIFO into the
// reassembly buffer, then decode and apply messages from the front until the
// buffer is empty or holds only the prefix of an in-flight message.
// Process never fails; all error paths are counted and recovered.
func (e *Engine) Process() {
	if e.dispatching {
		logger.Error("process re-entered from event callback, refusing",
			"engine_id", e.id, "error", ErrReentrantCall)
		return
	}

	var chunk []byte
	for e.fifo.ReadChunk(&chunk) {
		e.buf = append(e.buf, chunk...)
	}

	if len(e.buf) > maxReassemblyBytes {
		logger.Error("reassembly buffer overflow, clearing",
			"engine_id", e.id, "buffered_bytes", len(e.buf), "cap_bytes", maxReassemblyBytes)
		e.buf = e.buf[:0]
		e.errStats.BufferOverflows++
		return
	}

	for len(e.buf) > 0 {
		ev, consumed, err := protocol.Decode(e.buf)
		if err != nil {
			if errors.Is(err, protocol.ErrUnknownType) {
				// Skip-one recovery: drop exactly one byte and retry.
				logger.Warn("skipping unknown message type byte",
					"engine_id", e.id, "byte", e.buf[0])
				e.buf = e.buf[1:]
				e.errStats.UnknownMessageTypes++
				continue
			}
			// Known type, not enough bytes yet; the suffix stays buffered
			// until the producer delivers the rest.
			e.errStats.IncompleteMessages++
			break
		}

		e.apply(ev)
		e.buf = e.buf[consumed:]
	}
}

// apply dispatches one decoded wire event to the book.
func (e *Engine) apply(ev protocol.Event) {
	switch ev.Type {
	case protocol.TypeAdd:
		e.AddOrder(ev.OrderID, sideFromWire(ev.Side), ev.Price, ev.Quantity, ev.Timestamp)
	case protocol.TypeCancel:
		// The wire frame carries a cancelled-shares field (ITCH defines a
		// partial cancel); this book deliberately treats every Cancel as a
		// full cancel and ignores the field.
		e.CancelOrder(ev.OrderID)
	case protocol.TypeExecute:
		e.ExecuteOrder(ev.OrderID, ev.Quantity)
	case protocol.TypeReplace:
		e.ReplaceOrder(ev.OrderID, ev.NewOrderID, ev.Price, ev.Quantity)
	}
}

// AddOrder introduces a new live order and appends it to the tail of its
// price level. A duplicate id or a zero quantity is refused with no state
// change.
func (e *Engine) AddOrder(id uint64, side Side, price uint32, qty uint32, timestamp uint64) bool {
	if !e.mutable() {
		return false
	}

	if qty == 0 {
		logger.Warn("rejecting zero-quantity add",
			"engine_id", e.id, "order_id", id, "error", ErrInvalidParam)
		e.errStats.InvalidOperations++
		return false
	}

	order := &Order{
		ID:        id,
		Side:      side,
		Price:     price,
		Quantity:  qty,
		Timestamp: timestamp,
	}

	if !e.index.insert(order) {
		logger.Warn("rejecting add with duplicate order id",
			"engine_id", e.id, "order_id", id, "error", ErrDuplicateOrder)
		e.errStats.InvalidOperations++
		return false
	}

	order.node = e.sideFor(side).addOrder(id, price, qty)

	e.emit(EventAdd, order, nil)
	return true
}

// CancelOrder removes the whole remaining quantity of a live order.
func (e *Engine) CancelOrder(id uint64) bool {
	if !e.mutable() {
		return false
	}

	order := e.index.get(id)
	if order == nil {
		logger.Warn("rejecting cancel for unknown order",
			"engine_id", e.id, "order_id", id, "error", ErrOrderNotFound)
		e.errStats.InvalidOperations++
		return false
	}

	e.sideFor(order.Side).removeOrder(order.node, order.Price)
	order.node = nil
	e.index.remove(id)

	e.emit(EventCancel, order, nil)
	return true
}

// ExecuteOrder reduces a live order by the executed quantity, removing it
// (and its level, if emptied) when the remainder hits zero. Over-execution is
// refused with no state change.
func (e *Engine) ExecuteOrder(id uint64, executed uint32) bool {
	if !e.mutable() {
		return false
	}

	order := e.index.get(id)
	if order == nil {
		logger.Warn("rejecting execute for unknown order",
			"engine_id", e.id, "order_id", id, "error", ErrOrderNotFound)
		e.errStats.InvalidOperations++
		return false
	}
	if executed > order.Quantity {
		logger.Warn("rejecting over-execution",
			"engine_id", e.id, "order_id", id,
			"remaining", order.Quantity, "executed", executed,
			"error", ErrOverExecute)
		e.errStats.InvalidOperations++
		return false
	}

	e.index.updateQuantity(id, order.Quantity-executed)
	e.sideFor(order.Side).reduceOrder(order.node, order.Price, executed)

	if order.Quantity == 0 {
		order.node = nil
		e.index.remove(id)
	}

	e.emit(EventExecute, order, nil)
	return true
}

// ReplaceOrder terminates the original order and introduces a successor with
// a new id, price and quantity on the same side, carrying the original
// timestamp. Queue priority is not preserved: the successor joins the tail of
// its new level. The new id is pre-checked; a collision with any live order
// (including the original itself) refuses the whole operation with no state
// change.
func (e *Engine) ReplaceOrder(id uint64, newID uint64, newPrice uint32, newQty uint32) bool {
	if !e.mutable() {
		return false
	}

	order := e.index.get(id)
	if order == nil {
		logger.Warn("rejecting replace for unknown order",
			"engine_id", e.id, "order_id", id, "error", ErrOrderNotFound)
		e.errStats.InvalidOperations++
		return false
	}
	if newID == id || e.index.get(newID) != nil {
		logger.Warn("rejecting replace with colliding order id",
			"engine_id", e.id, "order_id", id, "new_order_id", newID,
			"error", ErrDuplicateOrder)
		e.errStats.InvalidOperations++
		return false
	}
	if newQty == 0 {
		logger.Warn("rejecting zero-quantity replace",
			"engine_id", e.id, "order_id", id, "error", ErrInvalidParam)
		e.errStats.InvalidOperations++
		return false
	}

	prev := *order
	prev.node = nil

	e.sideFor(order.Side).removeOrder(order.node, order.Price)
	order.node = nil
	e.index.remove(id)

	successor := &Order{
		ID:        newID,
		Side:      prev.Side,
		Price:     newPrice,
		Quantity:  newQty,
		Timestamp: prev.Timestamp,
	}
	e.index.insert(successor)
	successor.node = e.sideFor(successor.Side).addOrder(newID, newPrice, newQty)

	e.emit(EventReplace, successor, &prev)
	return true
}

// FindOrder returns a snapshot of the live order for id.
func (e *Engine) FindOrder(id uint64) (Order, bool) {
	order := e.index.get(id)
	if order == nil {
		return Order{}, false
	}

	cpy := *order
	cpy.node = nil
	return cpy, true
}

// ActiveOrderCount returns the number of live orders.
func (e *Engine) ActiveOrderCount() int {
	return e.index.size()
}

// BestBid returns the highest bid level.
func (e *Engine) BestBid() (PriceQty, bool) {
	return e.bids.bestLevel()
}

// BestAsk returns the lowest ask level.
func (e *Engine) BestAsk() (PriceQty, bool) {
	return e.asks.bestLevel()
}

// Spread returns best ask minus best bid in ticks. It is absent when either
// side is empty or when the market is crossed or locked (best ask <= best
// bid); a crossed market is reported as "no spread", never a negative number.
func (e *Engine) Spread() (uint32, bool) {
	bid, ok := e.bids.bestLevel()
	if !ok {
		return 0, false
	}
	ask, ok := e.asks.bestLevel()
	if !ok {
		return 0, false
	}
	if ask.Price <= bid.Price {
		return 0, false
	}
	return ask.Price - bid.Price, true
}

// MarketDepth is a top-K view of both sides: bids descending by price, asks
// ascending.
type MarketDepth struct {
	Bids []PriceQty `json:"bids"`
	Asks []PriceQty `json:"asks"`
}

// Depth returns up to levels price levels per side.
func (e *Engine) Depth(levels int) MarketDepth {
	return MarketDepth{
		Bids: e.bids.topK(levels),
		Asks: e.asks.topK(levels),
	}
}

// ErrorStats returns a copy of the engine's error counters.
func (e *Engine) ErrorStats() ErrorStats {
	return e.errStats
}

// ResetErrorStats zeroes all error counters.
func (e *Engine) ResetErrorStats() {
	e.errStats = ErrorStats{}
}

func (e *Engine) sideFor(side Side) *bookSide {
	if side == Bid {
		return e.bids
	}
	return e.asks
}

// mutable refuses mutators invoked from inside an event callback frame.
func (e *Engine) mutable() bool {
	if e.dispatching {
		logger.Error("mutator re-entered from event callback, refusing",
			"engine_id", e.id, "error", ErrReentrantCall)
		e.errStats.InvalidOperations++
		return false
	}
	return true
}

// emit fires the registered callback with a detached snapshot, after the
// mutation has fully committed.
func (e *Engine) emit(typ byte, order *Order, prev *Order) {
	if e.callback == nil {
		return
	}

	snapshot := *order
	snapshot.node = nil

	e.dispatching = true
	e.callback(Event{Type: typ, Order: snapshot, Prev: prev})
	e.dispatching = false
}
