package lob

import (
	"github.com/huandu/skiplist"
)

// levelNode is one entry in a price level's FIFO queue. Exactly one node
// exists per live order; the owning Order holds a back-reference to it.
type levelNode struct {
	orderID  uint64
	quantity uint32
	prev     *levelNode
	next     *levelNode
}

// priceLevel aggregates all resting orders at a single price.
// Invariant: totalQty == sum of node quantities over the FIFO, and the FIFO is
// never empty; an empty level is erased the instant its last node leaves.
type priceLevel struct {
	price    uint32
	totalQty uint64
	head     *levelNode
	tail     *levelNode
	count    int64
}

// PriceQty is one (price, aggregate quantity) pair of a depth view.
type PriceQty struct {
	Price    uint32 `json:"price"`
	Quantity uint64 `json:"quantity"`
}

// bookSide holds one side's price levels: a skiplist ordered best-price-first
// for iteration, plus a price map for O(1) exact-price hits.
type bookSide struct {
	side        Side
	totalOrders int64
	depths      int64
	levelList   *skiplist.SkipList
	priceList   map[uint32]*skiplist.Element
}

// newBidSide creates the bid side, sorted by price in descending order
// (highest price first).
func newBidSide() *bookSide {
	return &bookSide{
		side: Bid,
		levelList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			p1, _ := lhs.(uint32)
			p2, _ := rhs.(uint32)

			if p1 < p2 {
				return 1
			} else if p1 > p2 {
				return -1
			}

			return 0
		})),
		priceList: make(map[uint32]*skiplist.Element),
	}
}

// newAskSide creates the ask side, sorted by price in ascending order
// (lowest price first).
func newAskSide() *bookSide {
	return &bookSide{
		side: Ask,
		levelList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			p1, _ := lhs.(uint32)
			p2, _ := rhs.(uint32)

			if p1 > p2 {
				return 1
			} else if p1 < p2 {
				return -1
			}

			return 0
		})),
		priceList: make(map[uint32]*skiplist.Element),
	}
}

// addOrder appends a new node to the tail of the level FIFO at price,
// creating the level on demand. Returns the node for the order's back-reference.
func (s *bookSide) addOrder(orderID uint64, price uint32, qty uint32) *levelNode {
	node := &levelNode{orderID: orderID, quantity: qty}

	el, ok := s.priceList[price]
	if ok {
		level, _ := el.Value.(*priceLevel)

		node.prev = level.tail
		if level.tail != nil {
			level.tail.next = node
		}
		level.tail = node
		if level.head == nil {
			level.head = node
		}

		level.totalQty += uint64(qty)
		level.count++
	} else {
		level := &priceLevel{
			price:    price,
			totalQty: uint64(qty),
			head:     node,
			tail:     node,
			count:    1,
		}

		el := s.levelList.Set(price, level)
		s.priceList[price] = el
		s.depths++
	}

	s.totalOrders++
	return node
}

// removeOrder unlinks node from its level FIFO and erases the level if it
// becomes empty.
func (s *bookSide) removeOrder(node *levelNode, price uint32) {
	el, ok := s.priceList[price]
	if !ok || node == nil {
		return
	}
	level, _ := el.Value.(*priceLevel)

	s.unlink(level, node, el)
	level.totalQty -= uint64(node.quantity)
	s.totalOrders--

	node.prev = nil
	node.next = nil
}

// reduceOrder shrinks a node's quantity in place, preserving its queue
// priority, and removes it (erasing an emptied level) when it reaches zero.
func (s *bookSide) reduceOrder(node *levelNode, price uint32, delta uint32) {
	el, ok := s.priceList[price]
	if !ok || node == nil {
		return
	}
	level, _ := el.Value.(*priceLevel)

	level.totalQty -= uint64(delta)
	node.quantity -= delta

	if node.quantity == 0 {
		s.unlink(level, node, el)
		s.totalOrders--
	}
}

// unlink detaches node from the level's doubly-linked FIFO and drops the
// level entirely once its list is empty.
func (s *bookSide) unlink(level *priceLevel, node *levelNode, el *skiplist.Element) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		level.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		level.tail = node.prev
	}

	level.count--
	if level.count == 0 {
		s.levelList.RemoveElement(el)
		delete(s.priceList, level.price)
		s.depths--
	}
}

// bestLevel returns the best price level of this side: the highest bid or the
// lowest ask.
func (s *bookSide) bestLevel() (PriceQty, bool) {
	el := s.levelList.Front()
	if el == nil {
		return PriceQty{}, false
	}

	level, _ := el.Value.(*priceLevel)
	return PriceQty{Price: level.price, Quantity: level.totalQty}, true
}

// topK returns up to k levels in best-first order. Empty levels cannot appear;
// they are erased on removal.
func (s *bookSide) topK(k int) []PriceQty {
	result := make([]PriceQty, 0, k)

	el := s.levelList.Front()
	for i := 0; i < k && el != nil; i++ {
		level, _ := el.Value.(*priceLevel)
		result = append(result, PriceQty{Price: level.price, Quantity: level.totalQty})
		el = el.Next()
	}

	return result
}

func (s *bookSide) orderCount() int64 {
	return s.totalOrders
}

func (s *bookSide) depthCount() int64 {
	return s.depths
}

// snapshot walks the side best-price-first, resolving each node through
// lookup, and returns the resting orders in priority order.
func (s *bookSide) snapshot(lookup func(uint64) *Order) []Order {
	orders := make([]Order, 0, s.totalOrders)

	el := s.levelList.Front()
	for el != nil {
		level, _ := el.Value.(*priceLevel)

		node := level.head
		for node != nil {
			if ord := lookup(node.orderID); ord != nil {
				cpy := *ord
				cpy.node = nil
				orders = append(orders, cpy)
			}
			node = node.next
		}

		el = el.Next()
	}

	return orders
}
