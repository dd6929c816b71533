package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
	"github.com/jeanlucaslima/meditha/internal/domain/lead"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

func seedLead(t *testing.T, repo *fakeLeadRepo, sessionID string) *lead.Lead {
	t.Helper()
	started := time.Now().Add(-10 * time.Minute).UnixMilli()
	l, err := lead.New(sessionID, "Maria", "maria@example.com", true, started, time.Now().Add(-time.Minute).UnixMilli())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), l))
	return l
}

func TestCreateCheckout_Sucesso(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	provider := &fakeCheckoutProvider{session: &ports.CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/c/pay/cs_123"}}
	events := &fakeEventRepo{}
	uc := NewCreateCheckoutUseCase(leadRepo, provider, newFakeIdempotency(), events)

	sessionID := uuid.NewString()
	seedLead(t, leadRepo, sessionID)

	out, err := uc.Execute(context.Background(), CreateCheckoutInput{SessionID: sessionID, Variant: "A"})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_123", out.URL)

	require.Len(t, provider.created, 1)
	in := provider.created[0]
	assert.Equal(t, sessionID, in.FunnelSessionID)
	assert.Equal(t, "maria@example.com", in.CustomerEmail)
	assert.Equal(t, "Maria", in.CustomerNome)
	assert.Equal(t, "sid:"+sessionID, in.IdempotencyKey)

	require.Len(t, events.saved, 1)
	assert.Equal(t, funnel.EventOfferClick, events.saved[0].Name)
	assert.Equal(t, 18, events.saved[0].Step)
}

func TestCreateCheckout_ValidaEntrada(t *testing.T) {
	uc := NewCreateCheckoutUseCase(newFakeLeadRepo(), &fakeCheckoutProvider{}, newFakeIdempotency(), &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), CreateCheckoutInput{SessionID: "nao-uuid", Variant: "A"})
	assert.ErrorIs(t, err, ErrSessaoInvalida)

	_, err = uc.Execute(context.Background(), CreateCheckoutInput{SessionID: uuid.NewString(), Variant: ""})
	assert.ErrorIs(t, err, ErrVarianteInvalida)

	_, err = uc.Execute(context.Background(), CreateCheckoutInput{SessionID: uuid.NewString(), Variant: "Z"})
	assert.ErrorIs(t, err, ErrVarianteInvalida)
}

func TestCreateCheckout_Duplicada(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	provider := &fakeCheckoutProvider{session: &ports.CheckoutSession{ID: "cs_123", URL: "https://x"}}
	uc := NewCreateCheckoutUseCase(leadRepo, provider, newFakeIdempotency(), &fakeEventRepo{})

	sessionID := uuid.NewString()
	seedLead(t, leadRepo, sessionID)
	input := CreateCheckoutInput{SessionID: sessionID, Variant: "B"}

	_, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, ErrRequisicaoDuplicada)
	assert.Len(t, provider.created, 1)
}

func TestCreateCheckout_SemLead(t *testing.T) {
	uc := NewCreateCheckoutUseCase(newFakeLeadRepo(), &fakeCheckoutProvider{}, newFakeIdempotency(), &fakeEventRepo{})

	_, err := uc.Execute(context.Background(), CreateCheckoutInput{SessionID: uuid.NewString(), Variant: "A"})
	assert.ErrorIs(t, err, ErrLeadNaoEncontrado)
}

func TestCreateCheckout_SemConsentimento(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	uc := NewCreateCheckoutUseCase(leadRepo, &fakeCheckoutProvider{}, newFakeIdempotency(), &fakeEventRepo{})

	sessionID := uuid.NewString()
	l := seedLead(t, leadRepo, sessionID)
	l.Consent = false

	_, err := uc.Execute(context.Background(), CreateCheckoutInput{SessionID: sessionID, Variant: "A"})
	assert.ErrorIs(t, err, ErrConsentNecessario)
}

func TestCreateCheckout_FalhaDoProvedor(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	provider := &fakeCheckoutProvider{createErr: assert.AnError}
	idempotency := newFakeIdempotency()
	uc := NewCreateCheckoutUseCase(leadRepo, provider, idempotency, &fakeEventRepo{})

	sessionID := uuid.NewString()
	seedLead(t, leadRepo, sessionID)
	input := CreateCheckoutInput{SessionID: sessionID, Variant: "A"}

	_, err := uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, ErrProvedorPagamento)

	// Falha do provedor não consome a chave: nova tentativa é permitida
	provider.createErr = nil
	provider.session = &ports.CheckoutSession{ID: "cs_retry", URL: "https://x"}
	_, err = uc.Execute(context.Background(), input)
	assert.NoError(t, err)
}
