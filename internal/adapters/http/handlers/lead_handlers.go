package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jeanlucaslima/meditha/internal/application/usecases"
	"github.com/jeanlucaslima/meditha/internal/domain/lead"
)

// LeadHandler expõe a captura de lead do funil.
type LeadHandler struct {
	submitUC *usecases.SubmitLeadUseCase
}

func NewLeadHandler(submitUC *usecases.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{submitUC: submitUC}
}

// Submit godoc
// @Summary Captura o lead ao deixar o passo 6 do funil
// @Description Grava nome, email, consentimento e o recorte de respostas. Reenvio da mesma sessão sobrescreve.
// @Tags Lead
// @Accept json
// @Produce json
// @Param body body usecases.SubmitLeadInput true "Payload de captura"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Erro de validação"
// @Failure 429 {object} map[string]string "Muitas requisições"
// @Failure 500 {object} map[string]string "Erro interno"
// @Router /api/lead [post]
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input usecases.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.submitUC.Execute(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, usecases.ErrMuitasRequisicoes):
			respondError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, usecases.ErrRequisicaoInvalida),
			errors.Is(err, lead.ErrSessionIDObrigatorio),
			errors.Is(err, lead.ErrNomeCurto),
			errors.Is(err, lead.ErrEmailInvalido),
			errors.Is(err, lead.ErrConsentObrigatorio),
			errors.Is(err, lead.ErrCompletedAtAusente):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
