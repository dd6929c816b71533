package persistence

import (
	"errors"
	"sync"

	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

// InMemorySessionRepository implementa SessionRepository usando memória RAM.
// Sessões do quiz são efêmeras: o que precisa sobreviver (lead, pagamento,
// eventos) vai para o SQLite pelos outros repositórios.
type InMemorySessionRepository struct {
	sessions sync.Map // Map[string]*quiz.Store
}

func NewInMemorySessionRepository() ports.SessionRepository {
	return &InMemorySessionRepository{}
}

func (r *InMemorySessionRepository) SaveSession(store *quiz.Store) error {
	r.sessions.Store(store.SessionID(), store)
	return nil
}

func (r *InMemorySessionRepository) FindSessionByID(id string) (*quiz.Store, error) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, nil // Não encontrado (sem erro)
	}

	store, ok := val.(*quiz.Store)
	if !ok {
		return nil, errors.New("erro de tipo no repositório de sessões")
	}
	return store, nil
}

func (r *InMemorySessionRepository) DeleteSession(id string) error {
	r.sessions.Delete(id)
	return nil
}
