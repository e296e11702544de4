package lob

import (
	"github.com/igrmk/treemap/v2"
)

// AggregatedBook maintains a simplified view of the order book, tracking only
// price levels and their aggregated quantities. It is designed for downstream
// consumers that rebuild book state purely from the engine's event stream and
// must not re-enter the engine: wire its Apply method as the event callback.
type AggregatedBook struct {
	bid    *treemap.TreeMap[uint32, uint64]
	ask    *treemap.TreeMap[uint32, uint64]
	orders map[uint64]aggRef
}

// aggRef tracks what the aggregated view knows about one live order, so that
// execute deltas can be derived from post-mutation snapshots.
type aggRef struct {
	side  Side
	price uint32
	qty   uint32
}

// NewAggregatedBook creates a new AggregatedBook instance with empty sides.
func NewAggregatedBook() *AggregatedBook {
	return &AggregatedBook{
		bid:    treemap.New[uint32, uint64](),
		ask:    treemap.New[uint32, uint64](),
		orders: make(map[uint64]aggRef),
	}
}

// Apply folds one engine event into the aggregated view.
func (ab *AggregatedBook) Apply(ev Event) {
	switch ev.Type {
	case EventAdd:
		ab.add(ev.Order)
	case EventCancel:
		ab.remove(ev.Order.ID)
	case EventExecute:
		ref, ok := ab.orders[ev.Order.ID]
		if !ok {
			return
		}
		delta := ref.qty - ev.Order.Quantity
		ab.reduce(ref.side, ref.price, uint64(delta))
		if ev.Order.Quantity == 0 {
			delete(ab.orders, ev.Order.ID)
		} else {
			ref.qty = ev.Order.Quantity
			ab.orders[ev.Order.ID] = ref
		}
	case EventReplace:
		if ev.Prev != nil {
			ab.remove(ev.Prev.ID)
		}
		ab.add(ev.Order)
	}
}

// Depth returns the aggregated quantity at a price level for the given side,
// or zero if the level does not exist.
func (ab *AggregatedBook) Depth(side Side, price uint32) uint64 {
	qty, _ := ab.sideFor(side).Get(price)
	return qty
}

// TopK returns up to k levels per side: bids descending by price, asks
// ascending.
func (ab *AggregatedBook) TopK(k int) MarketDepth {
	depth := MarketDepth{
		Bids: make([]PriceQty, 0, k),
		Asks: make([]PriceQty, 0, k),
	}

	for it := ab.bid.Reverse(); it.Valid() && len(depth.Bids) < k; it.Next() {
		depth.Bids = append(depth.Bids, PriceQty{Price: it.Key(), Quantity: it.Value()})
	}
	for it := ab.ask.Iterator(); it.Valid() && len(depth.Asks) < k; it.Next() {
		depth.Asks = append(depth.Asks, PriceQty{Price: it.Key(), Quantity: it.Value()})
	}

	return depth
}

// Reset discards all tracked state, e.g. before replaying a fresh stream.
func (ab *AggregatedBook) Reset() {
	ab.bid.Clear()
	ab.ask.Clear()
	ab.orders = make(map[uint64]aggRef)
}

func (ab *AggregatedBook) add(order Order) {
	side := ab.sideFor(order.Side)
	qty, _ := side.Get(order.Price)
	side.Set(order.Price, qty+uint64(order.Quantity))
	ab.orders[order.ID] = aggRef{side: order.Side, price: order.Price, qty: order.Quantity}
}

func (ab *AggregatedBook) remove(id uint64) {
	ref, ok := ab.orders[id]
	if !ok {
		return
	}
	ab.reduce(ref.side, ref.price, uint64(ref.qty))
	delete(ab.orders, id)
}

func (ab *AggregatedBook) reduce(side Side, price uint32, delta uint64) {
	tm := ab.sideFor(side)
	qty, ok := tm.Get(price)
	if !ok {
		return
	}
	if qty <= delta {
		tm.Del(price)
		return
	}
	tm.Set(price, qty-delta)
}

func (ab *AggregatedBook) sideFor(side Side) *treemap.TreeMap[uint32, uint64] {
	if side == Bid {
		return ab.bid
	}
	return ab.ask
}
