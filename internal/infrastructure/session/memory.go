package session

import (
	"context"
	"sync"
	"time"

	"github.com/where2buy/backend/internal/domain"
)

// entry is a stored location with its expiry
type entry struct {
	Location   domain.Location
	Expiration time.Time
}

// MemoryStore is a thread-safe in-memory location store with TTL support
type MemoryStore struct {
	data  map[string]entry
	ttl   time.Duration
	mutex sync.RWMutex
	done  chan struct{}
	once  sync.Once
}

// NewMemoryStore creates a store whose entries live for ttl after their last Set
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	store := &MemoryStore{
		data: make(map[string]entry),
		ttl:  ttl,
		done: make(chan struct{}),
	}

	go store.cleanupExpired(cleanupInterval(ttl))

	return store
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < 10*time.Minute {
		return ttl
	}
	return 10 * time.Minute
}

// Get retrieves the location stored for a session
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (domain.Location, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, exists := s.data[sessionID]
	if !exists || time.Now().After(item.Expiration) {
		return domain.Location{}, domain.ErrSessionNotFound
	}

	return item.Location, nil
}

// Set stores a location for a session and refreshes its TTL
func (s *MemoryStore) Set(ctx context.Context, sessionID string, location domain.Location) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[sessionID] = entry{
		Location:   location,
		Expiration: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes a session's location
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, sessionID)
	return nil
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

// cleanupExpired removes expired entries periodically until Close is called
func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.removeExpired(time.Now())
		}
	}
}

func (s *MemoryStore) removeExpired(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, item := range s.data {
		if now.After(item.Expiration) {
			delete(s.data, key)
		}
	}
}
