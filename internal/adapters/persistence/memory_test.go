package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

func TestFixedWindowRateLimiter(t *testing.T) {
	current := time.Now()
	l := NewFixedWindowRateLimiter(2, 10*time.Minute)
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow("lead:a"))
	assert.True(t, l.Allow("lead:a"))
	assert.False(t, l.Allow("lead:a"), "terceira chamada dentro da janela deve ser barrada")

	// Chaves são independentes
	assert.True(t, l.Allow("lead:b"))

	// A janela vira e a contagem zera
	current = current.Add(11 * time.Minute)
	assert.True(t, l.Allow("lead:a"))
}

func TestFixedWindowRateLimiter_Sweep(t *testing.T) {
	current := time.Now()
	l := NewFixedWindowRateLimiter(5, time.Minute)
	l.now = func() time.Time { return current }

	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 0, l.Sweep())

	current = current.Add(2 * time.Minute)
	assert.Equal(t, 2, l.Sweep())
	assert.Empty(t, l.buckets)
}

func TestMemoryIdempotencyStore(t *testing.T) {
	current := time.Now()
	s := NewMemoryIdempotencyStore(time.Hour)
	s.now = func() time.Time { return current }

	assert.True(t, s.Check("checkout:sess-1"))
	s.Mark("checkout:sess-1")
	assert.False(t, s.Check("checkout:sess-1"))

	// Depois do TTL a chave expira
	current = current.Add(61 * time.Minute)
	assert.True(t, s.Check("checkout:sess-1"))
}

func TestMemoryIdempotencyStore_Sweep(t *testing.T) {
	current := time.Now()
	s := NewMemoryIdempotencyStore(time.Minute)
	s.now = func() time.Time { return current }

	s.Mark("a")
	s.Mark("b")
	assert.Equal(t, 0, s.Sweep())

	current = current.Add(2 * time.Minute)
	assert.Equal(t, 2, s.Sweep())
}

func TestMemoryStateStorage(t *testing.T) {
	s := NewMemoryStateStorage()

	_, ok := s.Get("k")
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v"))
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	s.Remove("k")
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestInMemorySessionRepository(t *testing.T) {
	repo := NewInMemorySessionRepository()

	store := quiz.NewStore(NewMemoryStateStorage())
	require.NoError(t, repo.SaveSession(store))

	found, err := repo.FindSessionByID(store.SessionID())
	require.NoError(t, err)
	assert.Same(t, store, found)

	// Não encontrado (sem erro)
	missing, err := repo.FindSessionByID("inexistente")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.DeleteSession(store.SessionID()))
	gone, err := repo.FindSessionByID(store.SessionID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}
