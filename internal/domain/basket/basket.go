package basket

import (
	"sync"

	"github.com/google/uuid"
)

// Entry is a product identifier with its accumulated quantity.
type Entry struct {
	ProductID uuid.UUID
	Quantity  int
}

// Basket is a multiset of product identifiers. It is safe for concurrent use.
//
// Entries are only ever created or incremented: a quantity is always at least
// one and no operation removes an entry.
type Basket struct {
	mu    sync.Mutex
	order []uuid.UUID
	qty   map[uuid.UUID]int
}

// New returns an empty Basket.
func New() *Basket {
	return &Basket{qty: make(map[uuid.UUID]int)}
}

// Add records one more unit of id and returns the new quantity.
func (b *Basket) Add(id uuid.UUID) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.qty[id]
	if !ok {
		b.order = append(b.order, id)
	}
	n++
	b.qty[id] = n
	return n
}

// Entries returns a snapshot of the basket in first-insertion order.
func (b *Basket) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, len(b.order))
	for i, id := range b.order {
		out[i] = Entry{ProductID: id, Quantity: b.qty[id]}
	}
	return out
}

// Len returns the number of distinct products in the basket.
func (b *Basket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}
