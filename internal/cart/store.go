// Package cart holds the per-session shopping cart: an ordered collection of
// line items keyed by product id with merge-on-add and remove-at-zero
// semantics. Totals are always derived from the current items.
package cart

import (
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MaxQuantity bounds the quantity of a single line.
const MaxQuantity = 999

// Store is not safe for concurrent use. A store belongs to exactly one
// session; callers serialise access to it.
type Store struct {
	currency  currency.Unit
	items     []domain.CartItem
	listeners map[int]Listener
	nextID    int
}

func New(unit currency.Unit) *Store {
	return &Store{currency: unit}
}

// Restore rebuilds a store from previously saved items. Entries with a
// non-positive quantity or a price in another currency are dropped, duplicate
// ids are merged into the first occurrence and quantities are capped at
// MaxQuantity.
func Restore(unit currency.Unit, items []domain.CartItem) *Store {
	s := New(unit)
	for _, item := range items {
		if item.Quantity <= 0 || item.Price.Currency != unit {
			continue
		}
		if i := s.indexOf(item.ID); i >= 0 {
			s.items[i].Quantity = capQuantity(s.items[i].Quantity, item.Quantity)
			continue
		}
		item.Quantity = capQuantity(0, item.Quantity)
		s.items = append(s.items, item)
	}
	return s
}

// AddItem increments the quantity of an existing line or appends a new one
// with quantity 1. Name, price and image of an existing line are kept. A line
// already at MaxQuantity is left unchanged.
func (s *Store) AddItem(p domain.Product) domain.CartItem {
	if i := s.indexOf(p.ID); i >= 0 {
		if s.items[i].Quantity >= MaxQuantity {
			return s.items[i]
		}
		s.items[i].Quantity++
		item := s.items[i]
		s.emit(Event{Kind: ItemAdded, Item: item})
		return item
	}

	item := domain.CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Type:     p.Type,
		Image:    p.Image,
		Quantity: 1,
	}
	s.items = append(s.items, item)
	s.emit(Event{Kind: ItemAdded, Item: item})
	return item
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line and one above MaxQuantity is capped; an unknown id
// is ignored.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}
	quantity = min(quantity, MaxQuantity)

	i := s.indexOf(id)
	if i < 0 || s.items[i].Quantity == quantity {
		return
	}

	previous := s.items[i].Quantity
	s.items[i].Quantity = quantity
	s.emit(Event{Kind: QuantityChanged, Item: s.items[i], PreviousQuantity: previous})
}

func (s *Store) RemoveItem(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}

	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.emit(Event{Kind: ItemRemoved, Item: removed})
}

func (s *Store) Clear() {
	if len(s.items) == 0 {
		return
	}

	s.items = nil
	s.emit(Event{Kind: CartCleared})
}

func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) Subtotal() domain.Money {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal().Amount)
	}
	return domain.NewMoney(total, s.currency)
}

func (s *Store) Currency() currency.Unit {
	return s.currency
}

func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Item(id string) (domain.CartItem, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.CartItem{}, false
	}
	return s.items[i], true
}

func capQuantity(current, add int) int {
	if add >= MaxQuantity-current {
		return MaxQuantity
	}
	return current + add
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
