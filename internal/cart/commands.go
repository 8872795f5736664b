package cart

import "github.com/nikolayk812/streamstick/internal/domain"

// Command is a cart mutation that can be queued or dispatched by UI code
// without touching the store directly.
type Command interface {
	apply(s *Store)
}

type AddItem struct {
	Product domain.Product
}

type UpdateQuantity struct {
	ID       string
	Quantity int
}

type RemoveItem struct {
	ID string
}

type ClearCart struct{}

func (c AddItem) apply(s *Store)        { s.AddItem(c.Product) }
func (c UpdateQuantity) apply(s *Store) { s.UpdateQuantity(c.ID, c.Quantity) }
func (c RemoveItem) apply(s *Store)     { s.RemoveItem(c.ID) }
func (ClearCart) apply(s *Store)        { s.Clear() }

func (s *Store) Dispatch(cmds ...Command) {
	for _, cmd := range cmds {
		cmd.apply(s)
	}
}
