package billing

import "time"

// Status de um pagamento registrado via webhook.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Valor padrão da oferta (R$ 67,00 em centavos).
const (
	DefaultAmount   = 6700
	DefaultCurrency = "BRL"
)

// Payment é o registro de um checkout concluído.
type Payment struct {
	ID              string    `json:"id"` // payment intent (ou checkout session como fallback)
	StripeSessionID string    `json:"stripeSessionId"`
	FunnelSessionID string    `json:"funnelSessionId"`
	Status          string    `json:"status"`
	AmountCents     int64     `json:"amountCents"`
	Currency        string    `json:"currency"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"createdAt"`
}

// WebhookEvent é um evento de webhook persistido para idempotência e auditoria.
type WebhookEvent struct {
	ID          string    `json:"id"` // id do evento no provedor
	Type        string    `json:"type"`
	Payload     string    `json:"payload"` // JSON bruto do evento
	Processed   bool      `json:"processed"`
	ProcessNote string    `json:"processNote,omitempty"`
	ReceivedAt  time.Time `json:"receivedAt"`
}
