package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlucaslima/meditha/internal/domain/access"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

type accessFixture struct {
	uc       *AccessUseCase
	users    *fakeUserRepo
	tokens   *fakeTokenRepo
	checkout *fakeCheckoutProvider
	sender   *fakeEmailSender
	limiter  *fakeRateLimiter
}

func newAccessFixture() *accessFixture {
	f := &accessFixture{
		users:    newFakeUserRepo(),
		tokens:   newFakeTokenRepo(),
		checkout: &fakeCheckoutProvider{},
		sender:   &fakeEmailSender{},
		limiter:  &fakeRateLimiter{allow: true},
	}
	f.uc = NewAccessUseCase(f.users, f.tokens, f.checkout, f.sender, &fakeTokenService{token: "jwt-"}, f.limiter, "https://dormirnatural.com")
	return f
}

func (f *accessFixture) seedBuyer(t *testing.T) *access.User {
	t.Helper()
	user, err := access.NewUser("maria@example.com", "Maria")
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), user))
	require.NoError(t, f.users.SaveEnrollment(context.Background(), access.NewEnrollment(user.ID, access.ProgramaDesafio7Dias, "sess-1", "pi_123")))
	return user
}

func TestResendAccess_PorEmail(t *testing.T) {
	f := newAccessFixture()
	f.seedBuyer(t)

	err := f.uc.ResendAccess(context.Background(), ResendAccessInput{Email: " Maria@Example.com "})
	require.NoError(t, err)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "maria@example.com", f.sender.sent[0].To)
	assert.Contains(t, f.sender.sent[0].HTML, "/acesso?token=")
	assert.Len(t, f.tokens.tokens, 1)
	assert.Equal(t, []string{"resend:maria@example.com"}, f.limiter.keys)
}

func TestResendAccess_PorCheckoutSession(t *testing.T) {
	f := newAccessFixture()
	f.seedBuyer(t)
	f.checkout.retrieved = &ports.CheckoutSession{ID: "cs_123", Paid: true, CustomerEmail: "maria@example.com"}

	err := f.uc.ResendAccess(context.Background(), ResendAccessInput{CheckoutSessionID: "cs_123"})
	require.NoError(t, err)
	assert.Len(t, f.sender.sent, 1)
}

func TestResendAccess_CheckoutNaoPago(t *testing.T) {
	f := newAccessFixture()
	f.checkout.retrieved = &ports.CheckoutSession{ID: "cs_123", Paid: false}

	err := f.uc.ResendAccess(context.Background(), ResendAccessInput{CheckoutSessionID: "cs_123"})
	assert.ErrorIs(t, err, ErrCheckoutNaoPago)
}

func TestResendAccess_EmailInvalido(t *testing.T) {
	f := newAccessFixture()

	err := f.uc.ResendAccess(context.Background(), ResendAccessInput{Email: "nao-é-email"})
	assert.ErrorIs(t, err, ErrEmailObrigatorio)
}

func TestResendAccess_SemCompra(t *testing.T) {
	f := newAccessFixture()

	err := f.uc.ResendAccess(context.Background(), ResendAccessInput{Email: "ninguem@example.com"})
	assert.ErrorIs(t, err, ErrAcessoNaoDisponivel)
}

func TestResendAccess_SemMatricula(t *testing.T) {
	f := newAccessFixture()
	user, err := access.NewUser("maria@example.com", "Maria")
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), user))

	err = f.uc.ResendAccess(context.Background(), ResendAccessInput{Email: "maria@example.com"})
	assert.ErrorIs(t, err, ErrAcessoNaoDisponivel)
}

func TestResendAccess_RateLimit(t *testing.T) {
	f := newAccessFixture()
	f.seedBuyer(t)
	f.limiter.allow = false

	err := f.uc.ResendAccess(context.Background(), ResendAccessInput{Email: "maria@example.com"})
	assert.ErrorIs(t, err, ErrMuitasRequisicoes)
	assert.Empty(t, f.sender.sent)
}

func TestConsumeMagicToken_Sucesso(t *testing.T) {
	f := newAccessFixture()
	user := f.seedBuyer(t)

	token, err := access.GenerateToken()
	require.NoError(t, err)
	require.NoError(t, f.tokens.Save(context.Background(), access.NewMagicToken(token, user.ID, user.Email, time.Now())))

	out, err := f.uc.ConsumeMagicToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "jwt-"+user.ID, out.Token)
	assert.Greater(t, out.ExpiresAt, time.Now().UnixMilli())
	assert.Equal(t, user.ID, out.User.ID)

	// Uso único: segunda troca falha
	_, err = f.uc.ConsumeMagicToken(context.Background(), token)
	assert.ErrorIs(t, err, access.ErrTokenJaUsado)
}

func TestConsumeMagicToken_Invalido(t *testing.T) {
	f := newAccessFixture()

	_, err := f.uc.ConsumeMagicToken(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenObrigatorio)

	_, err = f.uc.ConsumeMagicToken(context.Background(), "inexistente")
	assert.ErrorIs(t, err, access.ErrTokenNaoEncontrado)
}

func TestConsumeMagicToken_Expirado(t *testing.T) {
	f := newAccessFixture()
	user := f.seedBuyer(t)

	token, err := access.GenerateToken()
	require.NoError(t, err)
	issued := time.Now().Add(-access.MagicTokenTTL - time.Hour)
	require.NoError(t, f.tokens.Save(context.Background(), access.NewMagicToken(token, user.ID, user.Email, issued)))

	_, err = f.uc.ConsumeMagicToken(context.Background(), token)
	assert.ErrorIs(t, err, access.ErrTokenExpirado)
}

func TestMe(t *testing.T) {
	f := newAccessFixture()
	user := f.seedBuyer(t)

	got, err := f.uc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = f.uc.Me(context.Background(), "desconhecido")
	assert.ErrorIs(t, err, ErrAcessoNaoDisponivel)
}
