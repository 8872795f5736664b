package session

import (
	"context"
	"sync"
	"time"
)

// CleanupInterval is how often expired sessions are evicted from memory.
const CleanupInterval = time.Minute

type memoryEntry struct {
	snapshot  Snapshot
	expiresAt time.Time
}

// MemoryRegistry keeps sessions in process memory. Close stops the
// background eviction loop.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return newMemoryRegistry(ttl, CleanupInterval, time.Now)
}

func newMemoryRegistry(ttl, cleanupInterval time.Duration, now func() time.Time) *MemoryRegistry {
	r := &MemoryRegistry{
		sessions:    make(map[string]memoryEntry),
		ttl:         ttl,
		now:         now,
		stopCleanup: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop(cleanupInterval)

	return r
}

func (r *MemoryRegistry) cleanupLoop(interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictExpired()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *MemoryRegistry) evictExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, entry := range r.sessions {
		if !now.Before(entry.expiresAt) {
			delete(r.sessions, id)
		}
	}
}

func (r *MemoryRegistry) Load(_ context.Context, id string) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.sessions[id]
	if !ok || !r.now().Before(entry.expiresAt) {
		return Snapshot{}, ErrNotFound
	}

	return entry.snapshot, nil
}

func (r *MemoryRegistry) Save(_ context.Context, id string, snapshot Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = memoryEntry{
		snapshot:  snapshot,
		expiresAt: r.now().Add(r.ttl),
	}
	return nil
}

func (r *MemoryRegistry) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

func (r *MemoryRegistry) Close() error {
	r.stopOnce.Do(func() {
		close(r.stopCleanup)
	})
	r.wg.Wait()
	return nil
}
