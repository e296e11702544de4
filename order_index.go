package lob

// orderIndex owns the order-id to Order mapping. Lookup is average O(1);
// iteration order is never observed.
type orderIndex struct {
	orders map[uint64]*Order
}

func newOrderIndex() *orderIndex {
	return &orderIndex{orders: make(map[uint64]*Order)}
}

// insert adds a new live order. Fails on a duplicate id.
func (idx *orderIndex) insert(order *Order) bool {
	if _, ok := idx.orders[order.ID]; ok {
		return false
	}
	idx.orders[order.ID] = order
	return true
}

// get returns the live order for id, or nil.
func (idx *orderIndex) get(id uint64) *Order {
	return idx.orders[id]
}

// updateQuantity sets the remaining quantity of a live order.
func (idx *orderIndex) updateQuantity(id uint64, qty uint32) bool {
	order, ok := idx.orders[id]
	if !ok {
		return false
	}
	order.Quantity = qty
	return true
}

// remove deletes the order for id.
func (idx *orderIndex) remove(id uint64) bool {
	if _, ok := idx.orders[id]; !ok {
		return false
	}
	delete(idx.orders, id)
	return true
}

func (idx *orderIndex) size() int {
	return len(idx.orders)
}
