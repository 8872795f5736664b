package cart

import (
	"sort"

	"github.com/nikolayk812/streamstick/internal/domain"
)

type EventKind int

const (
	ItemAdded EventKind = iota + 1
	QuantityChanged
	ItemRemoved
	CartCleared
)

func (k EventKind) String() string {
	switch k {
	case ItemAdded:
		return "item_added"
	case QuantityChanged:
		return "quantity_changed"
	case ItemRemoved:
		return "item_removed"
	case CartCleared:
		return "cart_cleared"
	default:
		return "unknown"
	}
}

// Event describes a state change. Item is the line after the change, or the
// line that was dropped for ItemRemoved; it is zero for CartCleared.
type Event struct {
	Kind             EventKind
	Item             domain.CartItem
	PreviousQuantity int
}

type Listener func(Event)

// Subscribe registers l for every subsequent state change and returns a
// function that unregisters it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		delete(s.listeners, id)
	}
}

func (s *Store) emit(e Event) {
	if len(s.listeners) == 0 {
		return
	}

	// registration order
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if l, ok := s.listeners[id]; ok {
			l(e)
		}
	}
}
