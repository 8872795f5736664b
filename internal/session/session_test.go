package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikolayk812/streamstick/internal/cart"
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

var (
	firestick4K = domain.Product{
		ID:    "firestick-4k",
		Name:  "Fire Stick 4K - Jailbroken & Ready",
		Price: domain.USD("150.00"),
		Type:  domain.ProductTypeHardwareBundle,
		Image: "firestick-4k.jpg",
	}
	iptv6Month = domain.Product{
		ID:    "iptv-6-month",
		Name:  "6 Month IPTV Subscription",
		Price: domain.USD("50.00"),
		Type:  domain.ProductTypeSubscription,
		Image: "iptv-subscription.jpg",
	}
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	store := cart.New(currency.USD)
	store.AddItem(firestick4K)
	store.AddItem(iptv6Month)
	store.AddItem(firestick4K)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	snapshot := SnapshotOf(store, now)

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, now, decoded.UpdatedAt)

	restored, err := decoded.Restore(currency.USD)
	require.NoError(t, err)

	assert.Equal(t, 2, restored.Len())
	assert.Equal(t, 3, restored.ItemCount())
	assert.Equal(t, "350.00", restored.Subtotal().Amount.StringFixed(2))

	item, ok := restored.Item(firestick4K.ID)
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, firestick4K.Name, item.Name)
	assert.Equal(t, currency.USD, item.Price.Currency)
	assert.Equal(t, domain.ProductTypeHardwareBundle, item.Type)
}

func TestSnapshot_RestoreDropsOtherCurrency(t *testing.T) {
	snapshot := Snapshot{Items: []Item{
		{ID: "iptv-6-month", Price: decimal.RequireFromString("50"), Currency: "USD", Type: "subscription", Quantity: 2},
		{ID: "firestick-4k", Price: decimal.RequireFromString("120"), Currency: "EUR", Type: "hardware-bundle", Quantity: 1},
	}}

	restored, err := snapshot.Restore(currency.EUR)
	require.NoError(t, err)

	assert.Equal(t, 1, restored.Len())
	_, ok := restored.Item("iptv-6-month")
	assert.False(t, ok)
	assert.Equal(t, currency.EUR, restored.Subtotal().Currency)
	assert.Equal(t, "120.00", restored.Subtotal().Amount.StringFixed(2))
}

func TestSnapshot_RestoreInvalid(t *testing.T) {
	tests := []struct {
		name      string
		item      Item
		wantError string
	}{
		{
			name:      "bad currency: error",
			item:      Item{ID: "x", Currency: "DOLLARS", Type: "subscription", Quantity: 1},
			wantError: "item[x] currency[DOLLARS]",
		},
		{
			name:      "bad type: error",
			item:      Item{ID: "x", Currency: "USD", Type: "gadget", Quantity: 1},
			wantError: "product type[gadget] is not valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Snapshot{Items: []Item{tt.item}}.Restore(currency.USD)
			require.ErrorContains(t, err, tt.wantError)
		})
	}
}

func TestMemoryRegistry_Expiry(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	r := newMemoryRegistry(30*time.Minute, time.Hour, clock.Now)
	defer r.Close()

	ctx := context.Background()
	snapshot := Snapshot{Items: []Item{{ID: "iptv-6-month", Quantity: 1}}}

	_, err := r.Load(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Save(ctx, "s1", snapshot))

	clock.Advance(29 * time.Minute)
	got, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)

	// saving restarts the idle window
	require.NoError(t, r.Save(ctx, "s1", snapshot))
	clock.Advance(29 * time.Minute)
	_, err = r.Load(ctx, "s1")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = r.Load(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, r.Len())
	r.evictExpired()
	assert.Equal(t, 0, r.Len())
}

func TestMemoryRegistry_Delete(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	defer r.Close()

	ctx := context.Background()
	require.NoError(t, r.Save(ctx, "s1", Snapshot{}))
	require.NoError(t, r.Delete(ctx, "s1"))
	require.NoError(t, r.Delete(ctx, "s1"))

	_, err := r.Load(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistry_CloseStopsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := newMemoryRegistry(time.Minute, time.Millisecond, time.Now)
	time.Sleep(5 * time.Millisecond)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func setupTestRedis(t *testing.T) (*RedisRegistry, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
	})

	return NewRedisRegistry(client, 30*time.Minute), mr
}

func TestRedisRegistry_SaveLoad(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	store := cart.New(currency.USD)
	store.AddItem(iptv6Month)
	snapshot := SnapshotOf(store, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, r.Save(ctx, "s1", snapshot))

	assert.True(t, mr.Exists("cart:session:s1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("cart:session:s1"))

	got, err := r.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "iptv-6-month", got.Items[0].ID)
	assert.True(t, got.Items[0].Price.Equal(iptv6Month.Price.Amount))
	assert.Equal(t, snapshot.UpdatedAt, got.UpdatedAt)
}

func TestRedisRegistry_Expiry(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "s1", Snapshot{}))
	mr.FastForward(31 * time.Minute)

	_, err := r.Load(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisRegistry_InvalidJSON(t *testing.T) {
	r, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("cart:session:s1", `{"items":`))

	_, err := r.Load(context.Background(), "s1")
	require.ErrorContains(t, err, "json.Unmarshal")
}

func TestRedisRegistry_Delete(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "s1", Snapshot{}))
	require.NoError(t, r.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("cart:session:s1"))

	require.NoError(t, r.Delete(ctx, "absent"))
}

func TestRedisRegistry_Unavailable(t *testing.T) {
	r, mr := setupTestRedis(t)
	mr.Close()

	_, err := r.Load(context.Background(), "s1")
	require.ErrorContains(t, err, "client.Get")
}

func TestManager_Do(t *testing.T) {
	registry := NewMemoryRegistry(time.Minute)
	defer registry.Close()

	m := NewManager(registry, currency.USD)
	ctx := context.Background()

	err := m.Do(ctx, "s1", func(s *cart.Store) error {
		s.AddItem(firestick4K)
		return nil
	})
	require.NoError(t, err)

	err = m.Do(ctx, "s1", func(s *cart.Store) error {
		assert.Equal(t, 1, s.ItemCount())
		s.AddItem(iptv6Month)
		return nil
	})
	require.NoError(t, err)

	// a different session starts with an empty cart
	err = m.Do(ctx, "s2", func(s *cart.Store) error {
		assert.Equal(t, 0, s.Len())
		return nil
	})
	require.NoError(t, err)

	snapshot, err := registry.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, snapshot.Items, 2)
}

func TestManager_Do_FailureIsNotSaved(t *testing.T) {
	registry := NewMemoryRegistry(time.Minute)
	defer registry.Close()

	m := NewManager(registry, currency.USD)
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := m.Do(ctx, "s1", func(s *cart.Store) error {
		s.AddItem(firestick4K)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = registry.Load(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Do_EmptyID(t *testing.T) {
	m := NewManager(&failingRegistry{}, currency.USD)

	err := m.Do(context.Background(), "", func(*cart.Store) error { return nil })
	require.EqualError(t, err, "session id is empty")
}

func TestManager_Do_RegistryErrors(t *testing.T) {
	m := NewManager(&failingRegistry{loadErr: errors.New("down")}, currency.USD)

	err := m.Do(context.Background(), "s1", func(*cart.Store) error { return nil })
	require.EqualError(t, err, "m.load: registry.Load: down")

	m = NewManager(&failingRegistry{loadErr: ErrNotFound, saveErr: errors.New("full")}, currency.USD)

	err = m.Do(context.Background(), "s1", func(*cart.Store) error { return nil })
	require.EqualError(t, err, "registry.Save: full")
}

func TestManager_Do_SerialisesSameSession(t *testing.T) {
	registry := NewMemoryRegistry(time.Minute)
	defer registry.Close()

	m := NewManager(registry, currency.USD)
	ctx := context.Background()

	const workers = 50

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Do(ctx, "shared", func(s *cart.Store) error {
				s.AddItem(iptv6Month)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	err := m.Do(ctx, "shared", func(s *cart.Store) error {
		assert.Equal(t, workers, s.ItemCount())
		assert.Equal(t, 1, s.Len())
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, m.locks)
}

type failingRegistry struct {
	loadErr error
	saveErr error
}

func (f *failingRegistry) Load(context.Context, string) (Snapshot, error) {
	return Snapshot{}, f.loadErr
}

func (f *failingRegistry) Save(context.Context, string, Snapshot) error {
	return f.saveErr
}

func (f *failingRegistry) Delete(context.Context, string) error {
	return nil
}
