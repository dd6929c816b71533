package handlers

import (
	"io"
	"net/http"

	"github.com/jeanlucaslima/meditha/internal/adapters/payment"
	"github.com/jeanlucaslima/meditha/internal/application/usecases"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
)

// Limite de leitura do corpo do webhook (64 KiB cobre qualquer evento).
const maxWebhookBody = 64 << 10

// WebhookHandler recebe os webhooks do Stripe.
type WebhookHandler struct {
	provider      *payment.StripeCheckoutProvider
	fulfillmentUC *usecases.FulfillmentUseCase
}

func NewWebhookHandler(provider *payment.StripeCheckoutProvider, fulfillmentUC *usecases.FulfillmentUseCase) *WebhookHandler {
	return &WebhookHandler{provider: provider, fulfillmentUC: fulfillmentUC}
}

// HandleStripe godoc
// @Summary Recebe webhooks do Stripe
// @Description Verifica a assinatura e processa o evento uma única vez. Retenta em caso de falha (5xx).
// @Tags Webhook
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Assinatura inválida"
// @Failure 500 {object} map[string]string "Falha no processamento"
// @Router /api/webhook/stripe [post]
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "corpo da requisição ilegível")
		return
	}

	eventID, eventType, session, err := h.provider.VerifyWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		logger.Warn("Webhook com assinatura inválida", "erro", err)
		respondError(w, http.StatusBadRequest, "assinatura inválida")
		return
	}

	input := usecases.WebhookInput{
		EventID: eventID,
		Type:    eventType,
		Payload: string(payload),
		Session: session,
	}
	if err := h.fulfillmentUC.ProcessWebhook(r.Context(), input); err != nil {
		// 5xx faz o Stripe reenviar o evento
		respondError(w, http.StatusInternalServerError, "falha ao processar o evento")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
