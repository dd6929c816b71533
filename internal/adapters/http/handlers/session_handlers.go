package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jeanlucaslima/meditha/internal/application/usecases"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

// SessionHandler agrupa os handlers do ciclo de vida da sessão do quiz.
type SessionHandler struct {
	sessionUC *usecases.SessionUseCase
}

func NewSessionHandler(sessionUC *usecases.SessionUseCase) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC}
}

type startSessionRequest struct {
	SessionID string `json:"sessionId,omitempty"`
}

// Start godoc
// @Summary Inicia ou retoma uma sessão do quiz
// @Description Retoma a sessão pelo sessionId; sem id (ou com id desconhecido) inicia uma nova.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param body body startSessionRequest false "Sessão a retomar"
// @Success 200 {object} usecases.SessionView
// @Failure 500 {object} map[string]string "Erro interno"
// @Router /quiz/sessions [post]
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	// Corpo vazio é válido: inicia sessão nova
	_ = json.NewDecoder(r.Body).Decode(&req)

	view, err := h.sessionUC.StartOrResume(r.Context(), req.SessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Get godoc
// @Summary Consulta o estado atual da sessão
// @Tags Quiz
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} usecases.SessionView
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Router /quiz/sessions/{id} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionUC.StartOrResume(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Answer godoc
// @Summary Grava uma resposta do passo atual
// @Description Value para seleção única; Values para seleção múltipla.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param body body usecases.AnswerInput true "Resposta"
// @Success 200 {object} usecases.SessionView
// @Failure 400 {object} map[string]string "Campo ou valor inválido"
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Router /quiz/sessions/{id}/answers [post]
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var input usecases.AnswerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	input.SessionID = chi.URLParam(r, "id")

	view, err := h.sessionUC.Answer(r.Context(), input)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Lead godoc
// @Summary Grava nome, email e consentimento na sessão
// @Tags Quiz
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param body body usecases.LeadInput true "Dados de contato"
// @Success 200 {object} usecases.SessionView
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Router /quiz/sessions/{id}/lead [post]
func (h *SessionHandler) Lead(w http.ResponseWriter, r *http.Request) {
	var input usecases.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	input.SessionID = chi.URLParam(r, "id")

	view, err := h.sessionUC.SetLead(r.Context(), input)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Next godoc
// @Summary Avança a sessão para o próximo passo
// @Description Valida o passo atual; quando a validação falha, a sessão não avança e o erro vem em validationError.
// @Tags Quiz
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} usecases.SessionView
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Router /quiz/sessions/{id}/next [post]
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionUC.Next(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Prev godoc
// @Summary Retrocede a sessão para o passo anterior
// @Tags Quiz
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} usecases.SessionView
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Router /quiz/sessions/{id}/prev [post]
func (h *SessionHandler) Prev(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionUC.Prev(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Reset godoc
// @Summary Reinicia o quiz com uma sessão nova
// @Tags Quiz
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} usecases.SessionView
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Router /quiz/sessions/{id}/reset [post]
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionUC.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Content godoc
// @Summary Devolve o conteúdo personalizado de um passo
// @Tags Quiz
// @Produce json
// @Param id path string true "ID da sessão"
// @Param step path int true "Número do passo (1 a 18)"
// @Success 200 {object} quiz.Step
// @Failure 400 {object} map[string]string "Passo inválido"
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Router /quiz/sessions/{id}/steps/{step} [get]
func (h *SessionHandler) Content(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		respondError(w, http.StatusBadRequest, usecases.ErrPassoInvalido.Error())
		return
	}

	content, err := h.sessionUC.Content(r.Context(), chi.URLParam(r, "id"), step)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, content)
}

func (h *SessionHandler) respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecases.ErrSessaoNaoEncontrada):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecases.ErrPassoInvalido),
		errors.Is(err, quiz.ErrCampoDesconhecido),
		errors.Is(err, quiz.ErrValorInvalido):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
