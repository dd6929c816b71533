package persistence

import (
	"sync"
	"time"

	"github.com/jeanlucaslima/meditha/internal/ports"
)

// MemoryIdempotencyStore implementa IdempotencyStore com TTL por chave.
// Requisições repetidas dentro do TTL são barradas; depois disso a
// chave expira e a operação pode ser refeita.
type MemoryIdempotencyStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	keys map[string]time.Time
	now  func() time.Time
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		ttl:  ttl,
		keys: make(map[string]time.Time),
		now:  time.Now,
	}
}

var _ ports.IdempotencyStore = (*MemoryIdempotencyStore)(nil)

func (s *MemoryIdempotencyStore) Check(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.keys[key]
	if !ok {
		return true
	}
	if s.now().After(expiresAt) {
		delete(s.keys, key)
		return true
	}
	return false
}

func (s *MemoryIdempotencyStore) Mark(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = s.now().Add(s.ttl)
}

// Sweep remove chaves expiradas.
func (s *MemoryIdempotencyStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, expiresAt := range s.keys {
		if now.After(expiresAt) {
			delete(s.keys, key)
			removed++
		}
	}
	return removed
}
