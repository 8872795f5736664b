// Package session scopes one cart to one visitor session. Carts live only
// as long as their session and are never carried over to a new one.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/streamstick/internal/cart"
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrNotFound = errors.New("session not found")

// Registry keeps cart snapshots per session id. Implementations expire a
// session after it has not been saved for the configured idle TTL.
type Registry interface {
	Load(ctx context.Context, id string) (Snapshot, error)
	Save(ctx context.Context, id string, snapshot Snapshot) error
	Delete(ctx context.Context, id string) error
}

type Snapshot struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Type     string          `json:"type"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
}

func NewID() string {
	return uuid.NewString()
}

func SnapshotOf(s *cart.Store, now time.Time) Snapshot {
	items := s.Items()

	snapshot := Snapshot{
		Items:     make([]Item, 0, len(items)),
		UpdatedAt: now.UTC(),
	}

	for _, item := range items {
		snapshot.Items = append(snapshot.Items, Item{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price.Amount,
			Currency: item.Price.Currency.String(),
			Type:     string(item.Type),
			Image:    item.Image,
			Quantity: item.Quantity,
		})
	}

	return snapshot
}

// Restore rebuilds the cart store held by the snapshot. Items priced in a
// currency other than unit are dropped.
func (s Snapshot) Restore(unit currency.Unit) (*cart.Store, error) {
	items := make([]domain.CartItem, 0, len(s.Items))

	for _, item := range s.Items {
		itemUnit, err := currency.ParseISO(item.Currency)
		if err != nil {
			return nil, fmt.Errorf("item[%s] currency[%s]: %w", item.ID, item.Currency, err)
		}

		productType, err := domain.ParseProductType(item.Type)
		if err != nil {
			return nil, fmt.Errorf("domain.ParseProductType: %w", err)
		}

		items = append(items, domain.CartItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    domain.NewMoney(item.Price, itemUnit),
			Type:     productType,
			Image:    item.Image,
			Quantity: item.Quantity,
		})
	}

	return cart.Restore(unit, items), nil
}
