package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

var (
	ErrSessaoInvalida      = errors.New("sessionId deve ser um UUID v4")
	ErrVarianteInvalida    = errors.New("variant é obrigatório")
	ErrRequisicaoDuplicada = errors.New("requisição duplicada")
	ErrLeadNaoEncontrado   = errors.New("sessão não encontrada ou inválida")
	ErrConsentNecessario   = errors.New("consentimento é necessário")
	ErrProvedorPagamento   = errors.New("erro no provedor de pagamento")
)

// CreateCheckoutUseCase coordena a criação da sessão de checkout no CTA final.
type CreateCheckoutUseCase struct {
	leadRepo    ports.LeadRepository
	checkout    ports.CheckoutProvider
	idempotency ports.IdempotencyStore
	events      ports.EventRepository
}

func NewCreateCheckoutUseCase(
	leadRepo ports.LeadRepository,
	checkout ports.CheckoutProvider,
	idempotency ports.IdempotencyStore,
	events ports.EventRepository,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		leadRepo:    leadRepo,
		checkout:    checkout,
		idempotency: idempotency,
		events:      events,
	}
}

type CreateCheckoutInput struct {
	SessionID string `json:"sessionId"`
	Variant   string `json:"variant"`
}

type CreateCheckoutOutput struct {
	URL string `json:"url"`
}

// Execute valida a sessão, garante idempotência e cria o checkout.
// Falha do provedor é recuperável: o chamador pode tentar de novo.
func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, input CreateCheckoutInput) (*CreateCheckoutOutput, error) {
	if !isUUIDv4(input.SessionID) {
		return nil, ErrSessaoInvalida
	}
	if input.Variant == "" {
		return nil, ErrVarianteInvalida
	}
	if _, ok := funnel.ParseVariant(input.Variant); !ok {
		return nil, ErrVarianteInvalida
	}

	idempotencyKey := "checkout:" + input.SessionID
	if !uc.idempotency.Check(idempotencyKey) {
		return nil, ErrRequisicaoDuplicada
	}

	l, err := uc.leadRepo.FindBySessionID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLeadNaoEncontrado
	}
	if !l.Consent {
		return nil, ErrConsentNecessario
	}

	session, err := uc.checkout.CreateSession(ctx, ports.CheckoutSessionInput{
		FunnelSessionID: input.SessionID,
		Variant:         input.Variant,
		CustomerEmail:   l.Email,
		CustomerNome:    l.Nome,
		IdempotencyKey:  "sid:" + input.SessionID,
	})
	if err != nil {
		logger.Error("Falha ao criar sessão de checkout", "sessionId", input.SessionID, "erro", err)
		return nil, ErrProvedorPagamento
	}

	uc.idempotency.Mark(idempotencyKey)

	// Log sem PII.
	logger.Info("Sessão de checkout criada",
		"sessionId", input.SessionID,
		"stripeSessionId", session.ID,
		"variant", input.Variant,
	)

	uc.trackOfferClick(ctx, input.SessionID, input.Variant)

	return &CreateCheckoutOutput{URL: session.URL}, nil
}

func (uc *CreateCheckoutUseCase) trackOfferClick(ctx context.Context, sessionID, variant string) {
	e := funnel.NewEvent(sessionID, funnel.EventOfferClick, 18, map[string]string{"variant": variant})
	if err := uc.events.Save(ctx, e); err != nil {
		logger.Error("Falha ao registrar clique na oferta", "sessionId", sessionID, "erro", err)
	}
}

func isUUIDv4(v string) bool {
	id, err := uuid.Parse(v)
	if err != nil {
		return false
	}
	return id.Version() == 4
}
