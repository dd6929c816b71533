package ports

import (
	"context"
	"time"

	"github.com/jeanlucaslima/meditha/internal/domain/access"
	"github.com/jeanlucaslima/meditha/internal/domain/billing"
	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
	"github.com/jeanlucaslima/meditha/internal/domain/lead"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

// SessionRepository define o registro em memória das sessões vivas do quiz.
type SessionRepository interface {
	SaveSession(store *quiz.Store) error
	FindSessionByID(id string) (*quiz.Store, error)
	DeleteSession(id string) error
}

// IdempotencyStore guarda chaves de requisições já processadas.
type IdempotencyStore interface {
	// Check retorna true se a chave ainda não foi processada.
	Check(key string) bool

	// Mark registra a chave como processada.
	Mark(key string)
}

// LeadRepository define as operações de persistência para leads capturados.
type LeadRepository interface {
	// Save grava o lead (upsert por sessionId).
	Save(ctx context.Context, l *lead.Lead) error

	// FindBySessionID busca um lead pela sessão do funil. Retorna nil se não encontrar.
	FindBySessionID(ctx context.Context, sessionID string) (*lead.Lead, error)

	// FindByEmail busca um lead pelo email.
	FindByEmail(ctx context.Context, email string) (*lead.Lead, error)
}

// PaymentRepository define persistência para pagamentos confirmados.
type PaymentRepository interface {
	Save(ctx context.Context, p *billing.Payment) error
	FindByID(ctx context.Context, id string) (*billing.Payment, error)
}

// WebhookEventRepository define persistência e idempotência de eventos de webhook.
type WebhookEventRepository interface {
	// Exists informa se o evento já foi recebido (chave de idempotência).
	Exists(ctx context.Context, eventID string) (bool, error)

	Save(ctx context.Context, e *billing.WebhookEvent) error

	// MarkProcessed registra o desfecho do processamento do evento.
	MarkProcessed(ctx context.Context, eventID, note string) error
}

// UserRepository define persistência de compradores e matrículas.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*access.User, error)
	FindByID(ctx context.Context, id string) (*access.User, error)
	Save(ctx context.Context, u *access.User) error
	Update(ctx context.Context, u *access.User) error

	SaveEnrollment(ctx context.Context, e *access.Enrollment) error
	HasEnrollment(ctx context.Context, userID, program string) (bool, error)
}

// MagicTokenRepository define persistência de magic tokens (apenas hashes).
type MagicTokenRepository interface {
	Save(ctx context.Context, t *access.MagicToken) error
	FindByHash(ctx context.Context, tokenHash string) (*access.MagicToken, error)
	MarkUsed(ctx context.Context, tokenHash string) error

	// DeleteExpired remove tokens expirados antes do instante dado.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// EventRepository define o registro append-only de eventos do funil.
type EventRepository interface {
	Save(ctx context.Context, e *funnel.Event) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]*funnel.Event, error)

	// CountBySessionAndName suporta eventos idempotentes por sessão (ex: offer_view).
	CountBySessionAndName(ctx context.Context, sessionID, name string) (int, error)
}

// CheckoutSessionInput são os dados para criar uma sessão de checkout.
type CheckoutSessionInput struct {
	FunnelSessionID string
	Variant         string
	CustomerEmail   string
	CustomerNome    string
	IdempotencyKey  string
}

// CheckoutSession é a visão do provedor de pagamento usada pelo domínio.
type CheckoutSession struct {
	ID              string
	URL             string
	Paid            bool
	CustomerEmail   string
	AmountTotal     int64
	PaymentIntentID string
	Metadata        map[string]string
}

// CheckoutProvider define o contrato com o provedor de pagamento.
type CheckoutProvider interface {
	// CreateSession cria uma sessão de checkout e retorna a URL de redirecionamento.
	CreateSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error)

	// RetrieveSession busca uma sessão existente pelo id do provedor.
	RetrieveSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// EmailMessage é a mensagem a enviar.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// EmailSendResult é o desfecho do envio.
type EmailSendResult struct {
	Success   bool
	MessageID string
	Error     string
}

// EmailSender define o contrato de envio de email transacional.
// Falha de envio é um resultado, não um erro fatal.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (*EmailSendResult, error)
}

// TokenService define o contrato para geração e validação de tokens de sessão.
type TokenService interface {
	// GenerateToken gera um token de acesso para o ID do usuário fornecido.
	GenerateToken(userID string) (string, int64, error)

	// ValidateToken valida o token e retorna o ID do usuário se válido.
	ValidateToken(tokenString string) (string, error)
}

// RateLimiter limita requisições por chave dentro de uma janela fixa.
type RateLimiter interface {
	Allow(key string) bool
}
