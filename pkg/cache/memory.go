package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback used when Redis is not configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates the store and starts a janitor that drops expired
// entries every cleanupInterval. Call Close to stop it.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
		stop: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		// re-check: a concurrent Set may have refreshed the key
		if cur, still := s.data[key]; still && !s.now().Before(cur.expiresAt) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.data[key] = memoryEntry{value: stored, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.purgeExpired()
		}
	}
}

func (s *MemoryStore) purgeExpired() {
	now := s.now()
	s.mu.Lock()
	for key, entry := range s.data {
		if !now.Before(entry.expiresAt) {
			delete(s.data, key)
		}
	}
	s.mu.Unlock()
}
