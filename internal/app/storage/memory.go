package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStorage implements ObjectStorage in memory, for tests and local runs
type MemoryStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	signed   map[string]time.Duration
	failPuts int
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string][]byte),
		signed:  make(map[string]time.Duration),
	}
}

func (s *MemoryStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPuts > 0 {
		s.failPuts--
		return fmt.Errorf("put rejected: %s", key)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return nil
}

func (s *MemoryStorage) SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("object not found: %s", key)
	}
	s.signed[key] = ttl
	return fmt.Sprintf("https://storage.local/%s?expires=%ds", key, int(ttl.Seconds())), nil
}

// FailPuts makes the next n Put calls fail, for fault-path tests
func (s *MemoryStorage) FailPuts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPuts = n
}

// Get returns a stored object, for test assertions
func (s *MemoryStorage) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

// Keys returns all stored keys, for test assertions
func (s *MemoryStorage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

// SignedTTL reports the TTL last used to sign a key, for test assertions
func (s *MemoryStorage) SignedTTL(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ttl, ok := s.signed[key]
	return ttl, ok
}
