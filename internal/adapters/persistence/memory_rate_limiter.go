package persistence

import (
	"sync"
	"time"

	"github.com/jeanlucaslima/meditha/internal/ports"
)

// FixedWindowRateLimiter implementa RateLimiter com janela fixa por
// chave. Boa o suficiente para um processo único; a contagem zera
// quando a janela vira.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	buckets map[string]*windowBucket
	now     func() time.Time
}

type windowBucket struct {
	count   int
	resetAt time.Time
}

func NewFixedWindowRateLimiter(max int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		max:     max,
		window:  window,
		buckets: make(map[string]*windowBucket),
		now:     time.Now,
	}
}

var _ ports.RateLimiter = (*FixedWindowRateLimiter)(nil)

func (l *FixedWindowRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		l.buckets[key] = &windowBucket{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if b.count >= l.max {
		return false
	}
	b.count++
	return true
}

// Sweep remove janelas já vencidas. Chamado pelo scheduler para o mapa
// não crescer sem limite.
func (l *FixedWindowRateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}
