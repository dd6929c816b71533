package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeanlucaslima/meditha/internal/domain/access"
	"github.com/jeanlucaslima/meditha/internal/domain/billing"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

var (
	ErrEventoInvalido   = errors.New("evento de webhook inválido")
	ErrCheckoutSemEmail = errors.New("checkout concluído sem email do comprador")
	ErrFalhaNoWebhook   = errors.New("falha ao processar o webhook")
)

// Tipos de evento do provedor que o fulfillment conhece.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
	EventPaymentFailed     = "payment_intent.payment_failed"
)

// FulfillmentUseCase processa webhooks de pagamento e libera o acesso
// ao programa depois de um checkout concluído.
type FulfillmentUseCase struct {
	webhooks  ports.WebhookEventRepository
	payments  ports.PaymentRepository
	users     ports.UserRepository
	tokens    ports.MagicTokenRepository
	leads     ports.LeadRepository
	sender    ports.EmailSender
	appOrigin string
	now       func() time.Time
}

func NewFulfillmentUseCase(
	webhooks ports.WebhookEventRepository,
	payments ports.PaymentRepository,
	users ports.UserRepository,
	tokens ports.MagicTokenRepository,
	leads ports.LeadRepository,
	sender ports.EmailSender,
	appOrigin string,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		webhooks:  webhooks,
		payments:  payments,
		users:     users,
		tokens:    tokens,
		leads:     leads,
		sender:    sender,
		appOrigin: appOrigin,
		now:       time.Now,
	}
}

// WebhookInput é o evento já verificado e decodificado pelo adapter.
// Session só está presente em eventos de checkout.
type WebhookInput struct {
	EventID string
	Type    string
	Payload string
	Session *ports.CheckoutSession
}

// ProcessWebhook grava o evento, despacha pelo tipo e registra o desfecho.
// Eventos repetidos (mesmo EventID) são ignorados sem reprocessar.
func (uc *FulfillmentUseCase) ProcessWebhook(ctx context.Context, input WebhookInput) error {
	if input.EventID == "" || input.Type == "" {
		return ErrEventoInvalido
	}

	seen, err := uc.webhooks.Exists(ctx, input.EventID)
	if err != nil {
		logger.Error("Falha ao consultar evento de webhook", "eventId", input.EventID, "erro", err)
		return ErrFalhaNoWebhook
	}
	if seen {
		logger.Info("Evento de webhook repetido ignorado", "eventId", input.EventID, "type", input.Type)
		return nil
	}

	record := &billing.WebhookEvent{
		ID:         input.EventID,
		Type:       input.Type,
		Payload:    input.Payload,
		ReceivedAt: uc.now(),
	}
	if err := uc.webhooks.Save(ctx, record); err != nil {
		logger.Error("Falha ao gravar evento de webhook", "eventId", input.EventID, "erro", err)
		return ErrFalhaNoWebhook
	}

	note := "ignorado: tipo sem tratamento"
	switch input.Type {
	case EventCheckoutCompleted:
		note, err = uc.handleCheckoutCompleted(ctx, input.Session)
		if err != nil {
			logger.Error("Falha no fulfillment do checkout", "eventId", input.EventID, "erro", err)
			return err
		}
	case EventCheckoutExpired, EventPaymentFailed:
		note = "registrado: " + input.Type
	}

	if err := uc.webhooks.MarkProcessed(ctx, input.EventID, note); err != nil {
		logger.Error("Falha ao marcar evento como processado", "eventId", input.EventID, "erro", err)
		return ErrFalhaNoWebhook
	}

	logger.Info("Webhook processado", "eventId", input.EventID, "type", input.Type, "note", note)
	return nil
}

// handleCheckoutCompleted grava o pagamento, garante usuário e matrícula
// e envia o magic link de acesso.
func (uc *FulfillmentUseCase) handleCheckoutCompleted(ctx context.Context, session *ports.CheckoutSession) (string, error) {
	if session == nil {
		return "", ErrEventoInvalido
	}
	email := strings.ToLower(strings.TrimSpace(session.CustomerEmail))
	if email == "" {
		return "", ErrCheckoutSemEmail
	}

	funnelSessionID := session.Metadata["sessionId"]
	nome := uc.resolveNome(ctx, funnelSessionID, email)

	payment := uc.paymentFromSession(session, funnelSessionID, email)
	if err := uc.payments.Save(ctx, payment); err != nil {
		return "", fmt.Errorf("gravar pagamento: %w", err)
	}

	user, err := uc.upsertUser(ctx, email, nome)
	if err != nil {
		return "", fmt.Errorf("garantir usuário: %w", err)
	}

	if err := uc.ensureEnrollment(ctx, user, funnelSessionID, payment.ID); err != nil {
		return "", fmt.Errorf("garantir matrícula: %w", err)
	}

	// Falha no email não desfaz o fulfillment: o comprador pode pedir
	// reenvio pelo endpoint de acesso.
	url, err := IssueMagicLink(ctx, uc.tokens, user, uc.appOrigin, uc.now())
	if err != nil {
		logger.Error("Falha ao emitir magic link", "userId", user.ID, "erro", err)
		return "processado; magic link não emitido", nil
	}
	if err := uc.sendAccessEmail(ctx, user, url); err != nil {
		return "processado; email de acesso não enviado", nil
	}

	return "processado", nil
}

func (uc *FulfillmentUseCase) paymentFromSession(session *ports.CheckoutSession, funnelSessionID, email string) *billing.Payment {
	id := session.PaymentIntentID
	if id == "" {
		id = session.ID
	}
	amount := session.AmountTotal
	if amount == 0 {
		amount = billing.DefaultAmount
	}
	return &billing.Payment{
		ID:              id,
		StripeSessionID: session.ID,
		FunnelSessionID: funnelSessionID,
		Status:          billing.StatusSucceeded,
		AmountCents:     amount,
		Currency:        billing.DefaultCurrency,
		Email:           email,
		CreatedAt:       uc.now(),
	}
}

// resolveNome busca o nome no lead da sessão; sem lead, usa a parte
// local do email como tratamento.
func (uc *FulfillmentUseCase) resolveNome(ctx context.Context, funnelSessionID, email string) string {
	if funnelSessionID != "" {
		l, err := uc.leads.FindBySessionID(ctx, funnelSessionID)
		if err == nil && l != nil && l.Nome != "" {
			return l.Nome
		}
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func (uc *FulfillmentUseCase) upsertUser(ctx context.Context, email, nome string) (*access.User, error) {
	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Nome == "" && nome != "" {
			existing.Nome = nome
			existing.UpdatedAt = uc.now()
			if err := uc.users.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	user, err := access.NewUser(email, nome)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *FulfillmentUseCase) ensureEnrollment(ctx context.Context, user *access.User, funnelSessionID, paymentID string) error {
	enrolled, err := uc.users.HasEnrollment(ctx, user.ID, access.ProgramaDesafio7Dias)
	if err != nil {
		return err
	}
	if enrolled {
		return nil
	}
	e := access.NewEnrollment(user.ID, access.ProgramaDesafio7Dias, funnelSessionID, paymentID)
	return uc.users.SaveEnrollment(ctx, e)
}

func (uc *FulfillmentUseCase) sendAccessEmail(ctx context.Context, user *access.User, url string) error {
	msg := BuildAccessEmail(user.Nome, user.Email, url)
	result, err := uc.sender.Send(ctx, msg)
	if err != nil {
		logger.Error("Falha ao enviar email de acesso", "userId", user.ID, "erro", err)
		return err
	}
	if !result.Success {
		logger.Error("Email de acesso rejeitado", "userId", user.ID, "erro", result.Error)
		return errors.New(result.Error)
	}
	logger.Info("Email de acesso enviado", "userId", user.ID, "messageId", result.MessageID)
	return nil
}
