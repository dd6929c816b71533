package payment

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/jeanlucaslima/meditha/internal/infra/config"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

// StripeCheckoutProvider implementa CheckoutProvider sobre o Stripe
// Checkout hospedado. O funil só conhece a URL de redirecionamento.
type StripeCheckoutProvider struct {
	cfg config.StripeConfig
}

func NewStripeCheckoutProvider(cfg config.StripeConfig) *StripeCheckoutProvider {
	stripe.Key = cfg.SecretKey
	return &StripeCheckoutProvider{cfg: cfg}
}

var _ ports.CheckoutProvider = (*StripeCheckoutProvider)(nil)

func (p *StripeCheckoutProvider) CreateSession(ctx context.Context, input ports.CheckoutSessionInput) (*ports.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.cfg.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail:     stripe.String(input.CustomerEmail),
		ClientReferenceID: stripe.String(input.FunnelSessionID),
		SuccessURL:        stripe.String(p.cfg.SuccessURL),
		CancelURL:         stripe.String(p.cfg.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("sessionId", input.FunnelSessionID)
	params.AddMetadata("variant", input.Variant)
	params.AddMetadata("nome", input.CustomerNome)
	if input.IdempotencyKey != "" {
		params.SetIdempotencyKey(input.IdempotencyKey)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(s), nil
}

func (p *StripeCheckoutProvider) RetrieveSession(ctx context.Context, id string) (*ports.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	s, err := session.Get(id, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(s), nil
}

// VerifyWebhook valida a assinatura do Stripe e converte o evento para
// a visão que o fulfillment entende.
func (p *StripeCheckoutProvider) VerifyWebhook(payload []byte, sigHeader string) (eventID, eventType string, checkout *ports.CheckoutSession, err error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.cfg.WebhookSecret)
	if err != nil {
		return "", "", nil, err
	}

	if event.Type == "checkout.session.completed" || event.Type == "checkout.session.expired" {
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return "", "", nil, err
		}
		return event.ID, string(event.Type), fromStripeSession(&s), nil
	}

	return event.ID, string(event.Type), nil, nil
}

func fromStripeSession(s *stripe.CheckoutSession) *ports.CheckoutSession {
	out := &ports.CheckoutSession{
		ID:          s.ID,
		URL:         s.URL,
		Paid:        s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal: s.AmountTotal,
		Metadata:    s.Metadata,
	}
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		out.CustomerEmail = s.CustomerDetails.Email
	} else {
		out.CustomerEmail = s.CustomerEmail
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out
}
