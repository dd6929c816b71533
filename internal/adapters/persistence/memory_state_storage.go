package persistence

import (
	"sync"

	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

// MemoryStateStorage implementa quiz.Storage em memória. Cada sessão
// recebe a sua instância; no servidor o papel do storage é dar ao Store
// um destino de persistência, não durabilidade entre processos.
type MemoryStateStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStateStorage() *MemoryStateStorage {
	return &MemoryStateStorage{items: make(map[string]string)}
}

var _ quiz.Storage = (*MemoryStateStorage)(nil)

func (s *MemoryStateStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStateStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok
}

func (s *MemoryStateStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}
