package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

// Sweeper é qualquer cache em memória que sabe se limpar.
type Sweeper interface {
	Sweep() int
}

// Scheduler agrupa as rotinas de manutenção: expira magic tokens e
// varre os caches em memória.
type Scheduler struct {
	cron     *cron.Cron
	tokens   ports.MagicTokenRepository
	sweepers []Sweeper
}

func New(tokens ports.MagicTokenRepository, sweepers ...Sweeper) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		tokens:   tokens,
		sweepers: sweepers,
	}
}

// Start registra e inicia as rotinas. As execuções rodam nas goroutines
// do cron; erros são apenas logados.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.cleanupTokens); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 15m", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("Rotinas de manutenção iniciadas")
	return nil
}

// Stop interrompe o agendador e espera as execuções em andamento.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) cleanupTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.tokens.DeleteExpired(ctx, time.Now())
	if err != nil {
		logger.Error("Falha ao remover magic tokens expirados", "erro", err)
		return
	}
	if removed > 0 {
		logger.Info("Magic tokens expirados removidos", "quantidade", removed)
	}
}

func (s *Scheduler) sweep() {
	total := 0
	for _, sw := range s.sweepers {
		total += sw.Sweep()
	}
	if total > 0 {
		logger.Info("Caches em memória varridos", "removidos", total)
	}
}
