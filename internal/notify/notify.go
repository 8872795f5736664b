// Package notify turns cart changes and external call outcomes into the
// transient messages shown to the shopper.
package notify

import (
	"fmt"

	"github.com/nikolayk812/streamstick/internal/cart"
)

type Variant string

const (
	VariantSuccess     Variant = "success"
	VariantInfo        Variant = "info"
	VariantDestructive Variant = "destructive"
)

type Action struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

type Notification struct {
	Variant     Variant `json:"variant"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Action      *Action `json:"action,omitempty"`
}

const CartTarget = "#cart"

var (
	CheckoutFailed = Notification{
		Variant:     VariantDestructive,
		Title:       "Checkout Error",
		Description: "Failed to initiate checkout. Please try again.",
	}
	EmailRequired = Notification{
		Variant:     VariantDestructive,
		Title:       "Email Required",
		Description: "Please enter your email address.",
	}
	InvalidEmail = Notification{
		Variant:     VariantDestructive,
		Title:       "Invalid Email",
		Description: "Please enter a valid email address.",
	}
	TrialActivated = Notification{
		Variant:     VariantSuccess,
		Title:       "Free Trial Activated!",
		Description: "Check your email for your login credentials.",
	}
	TrialFailed = Notification{
		Variant:     VariantDestructive,
		Title:       "Error",
		Description: "Failed to activate free trial. Please try again.",
	}
)

// FromEvent maps a cart event to the notification the shopper sees. Quantity
// changes are silent.
func FromEvent(e cart.Event) (Notification, bool) {
	switch e.Kind {
	case cart.ItemAdded:
		return Notification{
			Variant:     VariantSuccess,
			Title:       fmt.Sprintf("%s added to cart!", e.Item.Name),
			Description: e.Item.Price.Display(),
			Action:      &Action{Label: "View Cart", Target: CartTarget},
		}, true
	case cart.ItemRemoved:
		return Notification{
			Variant: VariantInfo,
			Title:   fmt.Sprintf("%s removed from cart", e.Item.Name),
		}, true
	case cart.CartCleared:
		return Notification{
			Variant: VariantInfo,
			Title:   "Cart cleared",
		}, true
	default:
		return Notification{}, false
	}
}

// Collector gathers the notifications produced while one request mutates a
// cart.
type Collector struct {
	notifications []Notification
}

func (c *Collector) Listen(e cart.Event) {
	if n, ok := FromEvent(e); ok {
		c.notifications = append(c.notifications, n)
	}
}

func (c *Collector) Notifications() []Notification {
	if c.notifications == nil {
		return []Notification{}
	}
	return c.notifications
}
