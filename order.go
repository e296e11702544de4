package lob

import "github.com/shopspring/decimal"

// Side of the book an order rests on.
type Side int8

const (
	Bid Side = 1
	Ask Side = 2
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// sideFromWire maps the wire side byte. 'B' and 'b' are bids; every other
// value, including 'S'/'s', is treated as an ask.
func sideFromWire(b byte) Side {
	if b == 'B' || b == 'b' {
		return Bid
	}
	return Ask
}

// tickExponent is the implied decimal scaling of integer tick prices:
// 10000 ticks = 1.0000.
const tickExponent = -4

// Order is the identity record for one resting order.
// An order is live while it is present in the engine's index; execute-to-zero,
// cancel and replace all terminate it.
type Order struct {
	ID        uint64 `json:"id"`
	Side      Side   `json:"side"`
	Price     uint32 `json:"price"`     // integer ticks
	Quantity  uint32 `json:"quantity"`  // remaining shares
	Timestamp uint64 `json:"timestamp"` // ns since session midnight, informational only

	// Back-reference into the price-level FIFO. Owned by the book side; nil on
	// any snapshot handed outside the engine.
	node *levelNode
}

// PriceDecimal returns the tick price as a decimal, e.g. 10000 -> 1.0000.
func (o Order) PriceDecimal() decimal.Decimal {
	return decimal.New(int64(o.Price), tickExponent)
}
