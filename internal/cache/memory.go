package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Conceptual-Machines/fretboard-api/internal/models"
)

const cleanupInterval = 10 * time.Minute

// MemoryStore keeps guides in process. When capacity is reached the oldest inserted
// key is evicted first.
type MemoryStore struct {
	mu       sync.Mutex
	cache    *gocache.Cache
	order    []string
	capacity int
	ttl      time.Duration
}

// NewMemoryStore creates an in-process store. capacity <= 0 means unbounded;
// ttl <= 0 means entries never expire.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}
	return &MemoryStore{
		cache:    gocache.New(expiration, cleanupInterval),
		capacity: capacity,
		ttl:      expiration,
	}
}

func (s *MemoryStore) Name() string {
	return BackendMemory
}

func (s *MemoryStore) Get(_ context.Context, key string) (*models.ScaleGuide, bool, error) {
	value, found := s.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	guide, ok := value.(*models.ScaleGuide)
	if !ok {
		return nil, false, nil
	}
	return guide, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, guide *models.ScaleGuide) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cache.Get(key); !exists {
		s.forget(key)
		s.order = append(s.order, key)
	}
	s.cache.Set(key, guide, s.ttl)

	if s.capacity > 0 && len(s.order) > s.capacity {
		s.pruneExpired()
	}
	for s.capacity > 0 && len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		s.cache.Delete(oldest)
	}
	return nil
}

// Len returns the number of live entries
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}

// pruneExpired drops keys go-cache has already expired so they do not count toward capacity
func (s *MemoryStore) pruneExpired() {
	live := s.order[:0]
	for _, k := range s.order {
		if _, found := s.cache.Get(k); found {
			live = append(live, k)
		}
	}
	s.order = live
}

// forget drops key from the insertion order, used when an expired entry is re-added
func (s *MemoryStore) forget(key string) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
