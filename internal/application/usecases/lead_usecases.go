package usecases

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
	"github.com/jeanlucaslima/meditha/internal/domain/lead"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

var (
	ErrRequisicaoInvalida = errors.New("requisição inválida")
	ErrMuitasRequisicoes  = errors.New("muitas requisições; tente novamente em alguns minutos")
	ErrFalhaAoGravarLead  = errors.New("falha ao gravar o lead")
)

// Janela mínima entre o completedAt informado e o envio do payload.
// Envio mais rápido que isso é tratado como bot.
const minLeadElapsed = 30 * time.Second

// SubmitLeadUseCase coordena a captura de lead ao deixar o passo 6.
type SubmitLeadUseCase struct {
	leadRepo ports.LeadRepository
	events   ports.EventRepository
	limiter  ports.RateLimiter
	now      func() time.Time
}

func NewSubmitLeadUseCase(leadRepo ports.LeadRepository, events ports.EventRepository, limiter ports.RateLimiter) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		leadRepo: leadRepo,
		events:   events,
		limiter:  limiter,
		now:      time.Now,
	}
}

// SubmitLeadInput é o payload de captura enviado pelo funil.
type SubmitLeadInput struct {
	SessionID   string            `json:"sessionId"`
	Nome        string            `json:"nome"`
	Email       string            `json:"email"`
	Consent     bool              `json:"consent"`
	Answers     lead.Answers      `json:"answers"`
	Flags       quiz.Flags        `json:"flags"`
	StartedAt   int64             `json:"startedAt"`
	CompletedAt int64             `json:"completedAt"`
	Source      string            `json:"source,omitempty"`
	Variant     string            `json:"variant,omitempty"`
	UTMParams   map[string]string `json:"utmParams,omitempty"`

	// Campos de honeypot: preenchidos apenas por bots.
	Website string `json:"website,omitempty"`
	URL     string `json:"url,omitempty"`
	Link    string `json:"link,omitempty"`
}

// Execute valida e grava o lead. Falha de captura é recuperável: o
// funil não retrocede o cursor por causa dela.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) error {
	if uc.isHoneypot(input) {
		return ErrRequisicaoInvalida
	}

	if !uc.limiter.Allow("lead:" + input.SessionID) {
		return ErrMuitasRequisicoes
	}

	l, err := lead.New(input.SessionID, input.Nome, input.Email, input.Consent, input.StartedAt, input.CompletedAt)
	if err != nil {
		return err
	}
	l.Answers = input.Answers
	l.Flags = input.Flags
	l.Meta = lead.Meta{
		Variant:   input.Variant,
		Source:    input.Source,
		IssuedAt:  uc.now().UnixMilli(),
		UTMParams: input.UTMParams,
	}

	if err := uc.leadRepo.Save(ctx, l); err != nil {
		logger.Error("Falha ao gravar lead", "sessionId", l.SessionID, "erro", err)
		return ErrFalhaAoGravarLead
	}

	logger.Info("Lead gravado",
		"sessionId", l.SessionID,
		"email", lead.MaskEmail(l.Email),
		"variant", l.Meta.Variant,
		"source", l.Meta.Source,
	)

	// Telemetria sem PII; falha de registro não falha a captura.
	uc.track(ctx, l)

	return nil
}

func (uc *SubmitLeadUseCase) isHoneypot(input SubmitLeadInput) bool {
	if input.Website != "" || input.URL != "" || input.Link != "" {
		return true
	}
	elapsed := uc.now().UnixMilli() - input.CompletedAt
	return elapsed < minLeadElapsed.Milliseconds()
}

func (uc *SubmitLeadUseCase) track(ctx context.Context, l *lead.Lead) {
	e := funnel.NewEvent(l.SessionID, funnel.EventLeadSubmitted, 6, map[string]string{
		"variant":  l.Meta.Variant,
		"source":   l.Meta.Source,
		"impactos": strconv.Itoa(len(l.Answers.Impactos)),
	})
	if err := uc.events.Save(ctx, e); err != nil {
		logger.Error("Falha ao registrar evento de lead", "sessionId", l.SessionID, "erro", err)
	}
}
