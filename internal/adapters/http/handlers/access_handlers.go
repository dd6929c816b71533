package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jeanlucaslima/meditha/internal/adapters/http/middlewares"
	"github.com/jeanlucaslima/meditha/internal/application/usecases"
	"github.com/jeanlucaslima/meditha/internal/domain/access"
)

// AccessHandler agrupa os handlers da área de membros.
type AccessHandler struct {
	accessUC *usecases.AccessUseCase
}

func NewAccessHandler(accessUC *usecases.AccessUseCase) *AccessHandler {
	return &AccessHandler{accessUC: accessUC}
}

// Resend godoc
// @Summary Reenvia o email com o magic link de acesso
// @Description Aceita o id do checkout recém-concluído (cs_...) ou o email da compra.
// @Tags Acesso
// @Accept json
// @Produce json
// @Param body body usecases.ResendAccessInput true "Checkout ou email"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Requisição inválida"
// @Failure 404 {object} map[string]string "Compra não encontrada"
// @Failure 429 {object} map[string]string "Muitas requisições"
// @Router /api/acesso/reenviar [post]
func (h *AccessHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var input usecases.ResendAccessInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.accessUC.ResendAccess(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, usecases.ErrEmailObrigatorio),
			errors.Is(err, usecases.ErrCheckoutNaoPago):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecases.ErrAcessoNaoDisponivel):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, usecases.ErrMuitasRequisicoes):
			respondError(w, http.StatusTooManyRequests, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

type consumeTokenRequest struct {
	Token string `json:"token"`
}

// Consume godoc
// @Summary Troca o magic link por uma sessão de membro
// @Description Valida o token de uso único e devolve o JWT da área de membros.
// @Tags Acesso
// @Accept json
// @Produce json
// @Param body body consumeTokenRequest true "Token do magic link"
// @Success 200 {object} usecases.ConsumeMagicTokenOutput
// @Failure 400 {object} map[string]string "Token ausente"
// @Failure 401 {object} map[string]string "Token inválido, usado ou expirado"
// @Router /api/acesso/trocar [post]
func (h *AccessHandler) Consume(w http.ResponseWriter, r *http.Request) {
	var req consumeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	output, err := h.accessUC.ConsumeMagicToken(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrTokenObrigatorio):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, access.ErrTokenNaoEncontrado),
			errors.Is(err, access.ErrTokenJaUsado),
			errors.Is(err, access.ErrTokenExpirado):
			respondError(w, http.StatusUnauthorized, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	respondJSON(w, http.StatusOK, output)
}

// GetMe godoc
// @Summary Devolve o usuário da sessão autenticada
// @Tags Acesso
// @Produce json
// @Security BearerAuth
// @Success 200 {object} access.User
// @Failure 401 {object} map[string]string "Não autenticado"
// @Failure 404 {object} map[string]string "Usuário não encontrado"
// @Router /api/acesso/me [get]
func (h *AccessHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middlewares.UserIDKey).(string)
	if !ok || userID == "" {
		respondError(w, http.StatusUnauthorized, "Autenticação requerida")
		return
	}

	user, err := h.accessUC.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecases.ErrAcessoNaoDisponivel) {
			respondError(w, http.StatusNotFound, "Usuário não encontrado")
			return
		}
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
