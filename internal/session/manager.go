package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/streamstick/internal/cart"
	"golang.org/x/text/currency"
)

// Manager runs cart operations against the registry. Operations on the same
// session are serialised; different sessions proceed independently.
type Manager struct {
	registry Registry
	unit     currency.Unit
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(registry Registry, unit currency.Unit) *Manager {
	return &Manager{
		registry: registry,
		unit:     unit,
		now:      time.Now,
		locks:    make(map[string]*sessionLock),
	}
}

// Do loads the cart of session id, or starts an empty one, runs fn and saves
// the result. When fn fails nothing is saved.
func (m *Manager) Do(ctx context.Context, id string, fn func(*cart.Store) error) error {
	if id == "" {
		return errors.New("session id is empty")
	}

	unlock := m.lock(id)
	defer unlock()

	store, err := m.load(ctx, id)
	if err != nil {
		return fmt.Errorf("m.load: %w", err)
	}

	if err := fn(store); err != nil {
		return err
	}

	if err := m.registry.Save(ctx, id, SnapshotOf(store, m.now())); err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}

	return nil
}

func (m *Manager) load(ctx context.Context, id string) (*cart.Store, error) {
	snapshot, err := m.registry.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return cart.New(m.unit), nil
	}
	if err != nil {
		return nil, fmt.Errorf("registry.Load: %w", err)
	}

	store, err := snapshot.Restore(m.unit)
	if err != nil {
		return nil, fmt.Errorf("snapshot.Restore: %w", err)
	}

	return store, nil
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
