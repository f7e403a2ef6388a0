package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// LineItem is one catalog product plus the requested quantity.
type LineItem struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	ImageURL    string              `json:"image_url,omitempty"`
	Category    string              `json:"category,omitempty"`
	Quantity    int                 `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
}

// Candidate is what a view hands to AddItem.
type Candidate struct {
	ID          string              `json:"id" binding:"required"`
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	ImageURL    string              `json:"image_url"`
	Category    string              `json:"category"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
}

// Snapshot is a consistent read of the cart taken under a single lock.
type Snapshot struct {
	Items          []LineItem      `json:"items"`
	TotalItemCount int             `json:"total_item_count"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Priced         bool            `json:"priced"`
	Version        uint64          `json:"version"`
}

// Store is the single owner of a session's line items. All views mutate the
// cart through it; the item slice is never handed out without copying.
type Store struct {
	mu    sync.RWMutex
	items []LineItem
	index map[string]int

	totalCount int
	totalPrice decimal.Decimal
	priced     bool
	version    uint64

	listenerMu sync.Mutex
	listeners  map[uint64]func(Snapshot)
	nextID     uint64
}

func NewStore() *Store {
	return &Store{
		index:     make(map[string]int),
		listeners: make(map[uint64]func(Snapshot)),
	}
}

// NewStoreFrom rebuilds a store from previously persisted items. Entries with
// a duplicate id are folded into the first occurrence and quantities below 1
// are dropped, so a damaged snapshot cannot break the invariants.
func NewStoreFrom(items []LineItem) *Store {
	s := NewStore()
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		if i, ok := s.index[it.ID]; ok {
			s.items[i].Quantity += it.Quantity
			continue
		}
		s.index[it.ID] = len(s.items)
		s.items = append(s.items, it)
	}
	s.recalc()
	return s
}

// AddItem increments the quantity of an existing line or appends a new one
// with quantity 1. Display fields of an existing line are left as they were
// first added.
func (s *Store) AddItem(c Candidate) {
	s.mu.Lock()
	if i, ok := s.index[c.ID]; ok {
		s.items[i].Quantity++
	} else {
		s.index[c.ID] = len(s.items)
		s.items = append(s.items, LineItem{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			ImageURL:    c.ImageURL,
			Category:    c.Category,
			Quantity:    1,
			UnitPrice:   c.UnitPrice,
		})
	}
	snap := s.commit()
	s.mu.Unlock()
	s.notify(snap)
}

// RemoveItem deletes the line with the given id. Unknown ids are ignored.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	if !s.removeLocked(id) {
		s.mu.Unlock()
		return
	}
	snap := s.commit()
	s.mu.Unlock()
	s.notify(snap)
}

// UpdateQuantity sets the quantity of a line. Anything below 1 removes it.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(id)
		return
	}
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok || s.items[i].Quantity == quantity {
		s.mu.Unlock()
		return
	}
	s.items[i].Quantity = quantity
	snap := s.commit()
	s.mu.Unlock()
	s.notify(snap)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.index = make(map[string]int)
	snap := s.commit()
	s.mu.Unlock()
	s.notify(snap)
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyItems()
}

func (s *Store) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalCount
}

// TotalPrice sums quantity * unit price over priced lines only.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPrice
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every mutation. The
// returned func removes the listener.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.listenerMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

func (s *Store) removeLocked(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	return true
}

// commit recomputes the aggregates and bumps the version. Caller holds mu.
func (s *Store) commit() Snapshot {
	s.recalc()
	s.version++
	return s.snapshotLocked()
}

func (s *Store) recalc() {
	count := 0
	total := decimal.Zero
	priced := false
	for _, it := range s.items {
		count += it.Quantity
		if it.UnitPrice.Valid {
			priced = true
			total = total.Add(it.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	s.totalCount = count
	s.totalPrice = total
	s.priced = priced
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:          s.copyItems(),
		TotalItemCount: s.totalCount,
		TotalPrice:     s.totalPrice,
		Priced:         s.priced,
		Version:        s.version,
	}
}

func (s *Store) copyItems() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) notify(snap Snapshot) {
	s.listenerMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
