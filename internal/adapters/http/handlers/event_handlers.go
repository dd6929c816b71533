package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jeanlucaslima/meditha/internal/application/usecases"
)

// EventHandler expõe a telemetria do funil.
type EventHandler struct {
	eventUC *usecases.EventUseCase
}

func NewEventHandler(eventUC *usecases.EventUseCase) *EventHandler {
	return &EventHandler{eventUC: eventUC}
}

// Track godoc
// @Summary Registra um evento do funil enviado pelo cliente
// @Description Aceita apenas os nomes de evento conhecidos; props não devem conter PII.
// @Tags Eventos
// @Accept json
// @Produce json
// @Param body body usecases.TrackInput true "Evento"
// @Success 202 {object} map[string]bool
// @Failure 400 {object} map[string]string "Evento inválido"
// @Router /api/events [post]
func (h *EventHandler) Track(w http.ResponseWriter, r *http.Request) {
	var input usecases.TrackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.eventUC.Track(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, usecases.ErrSessaoObrigatoria),
			errors.Is(err, usecases.ErrEventoDesconhecido):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]bool{"ok": true})
}

// ListBySession godoc
// @Summary Lista os eventos de uma sessão do funil
// @Tags Eventos
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "ID da sessão"
// @Param limit query int false "Máximo de eventos (padrão 500)"
// @Success 200 {array} funnel.Event
// @Failure 400 {object} map[string]string "Sessão ausente"
// @Router /api/events/{sessionId} [get]
func (h *EventHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := h.eventUC.ListBySession(r.Context(), chi.URLParam(r, "sessionId"), limit)
	if err != nil {
		if errors.Is(err, usecases.ErrSessaoObrigatoria) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	respondJSON(w, http.StatusOK, events)
}
