package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jeanlucaslima/meditha/internal/domain/access"
	"github.com/jeanlucaslima/meditha/internal/domain/lead"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

var (
	ErrAcessoNaoDisponivel = errors.New("nenhuma compra encontrada para este email")
	ErrCheckoutNaoPago     = errors.New("o checkout ainda não foi pago")
	ErrEmailObrigatorio    = errors.New("informe o email da compra")
	ErrTokenObrigatorio    = errors.New("o token é obrigatório")
)

// AccessUseCase cuida do reenvio do magic link e da troca do token
// pelo acesso à área de membros.
type AccessUseCase struct {
	users     ports.UserRepository
	tokens    ports.MagicTokenRepository
	checkout  ports.CheckoutProvider
	sender    ports.EmailSender
	auth      ports.TokenService
	limiter   ports.RateLimiter
	appOrigin string
	now       func() time.Time
}

func NewAccessUseCase(
	users ports.UserRepository,
	tokens ports.MagicTokenRepository,
	checkout ports.CheckoutProvider,
	sender ports.EmailSender,
	auth ports.TokenService,
	limiter ports.RateLimiter,
	appOrigin string,
) *AccessUseCase {
	return &AccessUseCase{
		users:     users,
		tokens:    tokens,
		checkout:  checkout,
		sender:    sender,
		auth:      auth,
		limiter:   limiter,
		appOrigin: appOrigin,
		now:       time.Now,
	}
}

// ResendAccessInput identifica a compra pelo checkout recém-concluído
// ou pelo email usado na compra.
type ResendAccessInput struct {
	CheckoutSessionID string `json:"checkoutSessionId,omitempty"`
	Email             string `json:"email,omitempty"`
}

// ResendAccess emite um novo magic link e reenvia o email de acesso.
func (uc *AccessUseCase) ResendAccess(ctx context.Context, input ResendAccessInput) error {
	email, err := uc.resolveEmail(ctx, input)
	if err != nil {
		return err
	}

	if !uc.limiter.Allow("resend:" + email) {
		return ErrMuitasRequisicoes
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Falha ao buscar usuário para reenvio", "email", lead.MaskEmail(email), "erro", err)
		return err
	}
	if user == nil {
		return ErrAcessoNaoDisponivel
	}

	enrolled, err := uc.users.HasEnrollment(ctx, user.ID, access.ProgramaDesafio7Dias)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrAcessoNaoDisponivel
	}

	url, err := IssueMagicLink(ctx, uc.tokens, user, uc.appOrigin, uc.now())
	if err != nil {
		logger.Error("Falha ao emitir magic link no reenvio", "userId", user.ID, "erro", err)
		return err
	}

	msg := BuildAccessEmail(user.Nome, user.Email, url)
	result, err := uc.sender.Send(ctx, msg)
	if err != nil {
		logger.Error("Falha ao reenviar email de acesso", "userId", user.ID, "erro", err)
		return err
	}
	if !result.Success {
		logger.Error("Reenvio de acesso rejeitado", "userId", user.ID, "erro", result.Error)
		return errors.New(result.Error)
	}

	logger.Info("Email de acesso reenviado", "userId", user.ID, "messageId", result.MessageID)
	return nil
}

// resolveEmail extrai o email da compra: do provedor quando o funil
// manda o id do checkout, ou direto do formulário de reenvio.
func (uc *AccessUseCase) resolveEmail(ctx context.Context, input ResendAccessInput) (string, error) {
	if id := strings.TrimSpace(input.CheckoutSessionID); strings.HasPrefix(id, "cs_") {
		session, err := uc.checkout.RetrieveSession(ctx, id)
		if err != nil {
			logger.Error("Falha ao consultar checkout no reenvio", "checkoutSessionId", id, "erro", err)
			return "", ErrProvedorPagamento
		}
		if !session.Paid {
			return "", ErrCheckoutNaoPago
		}
		return strings.ToLower(strings.TrimSpace(session.CustomerEmail)), nil
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !quiz.IsEmailValid(email) {
		return "", ErrEmailObrigatorio
	}
	return email, nil
}

// ConsumeMagicTokenOutput é a sessão de membro emitida na troca do token.
type ConsumeMagicTokenOutput struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expiresAt"`
	User      *access.User `json:"user"`
}

// ConsumeMagicToken valida o token de uso único, queima ele e emite a
// sessão JWT da área de membros.
func (uc *AccessUseCase) ConsumeMagicToken(ctx context.Context, token string) (*ConsumeMagicTokenOutput, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenObrigatorio
	}

	record, err := uc.tokens.FindByHash(ctx, access.HashToken(token))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, access.ErrTokenNaoEncontrado
	}
	if err := record.Validate(uc.now()); err != nil {
		return nil, err
	}

	if err := uc.tokens.MarkUsed(ctx, record.TokenHash); err != nil {
		logger.Error("Falha ao marcar token como usado", "userId", record.UserID, "erro", err)
		return nil, err
	}

	user, err := uc.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, access.ErrTokenNaoEncontrado
	}

	jwt, expiresAt, err := uc.auth.GenerateToken(user.ID)
	if err != nil {
		logger.Error("Falha ao gerar sessão de membro", "userId", user.ID, "erro", err)
		return nil, err
	}

	logger.Info("Magic link consumido", "userId", user.ID)
	return &ConsumeMagicTokenOutput{
		Token:     jwt,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Me devolve o usuário da sessão autenticada.
func (uc *AccessUseCase) Me(ctx context.Context, userID string) (*access.User, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAcessoNaoDisponivel
	}
	return user, nil
}
