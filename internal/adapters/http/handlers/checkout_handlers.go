package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jeanlucaslima/meditha/internal/application/usecases"
)

// CheckoutHandler expõe a criação da sessão de checkout.
type CheckoutHandler struct {
	createUC *usecases.CreateCheckoutUseCase
}

func NewCheckoutHandler(createUC *usecases.CreateCheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{createUC: createUC}
}

// Create godoc
// @Summary Cria a sessão de checkout da oferta
// @Description Valida a sessão do funil e devolve a URL de pagamento hospedada.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param body body usecases.CreateCheckoutInput true "Sessão e variante"
// @Success 200 {object} usecases.CreateCheckoutOutput
// @Failure 400 {object} map[string]string "Erro de validação"
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Failure 409 {object} map[string]string "Requisição duplicada"
// @Failure 502 {object} map[string]string "Erro no provedor de pagamento"
// @Router /api/checkout [post]
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecases.CreateCheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	output, err := h.createUC.Execute(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrSessaoInvalida),
			errors.Is(err, usecases.ErrVarianteInvalida),
			errors.Is(err, usecases.ErrConsentNecessario):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecases.ErrLeadNaoEncontrado):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, usecases.ErrRequisicaoDuplicada):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, usecases.ErrProvedorPagamento):
			respondError(w, http.StatusBadGateway, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	respondJSON(w, http.StatusOK, output)
}
