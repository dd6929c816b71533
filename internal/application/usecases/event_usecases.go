package usecases

import (
	"context"
	"errors"

	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

var (
	ErrEventoDesconhecido = errors.New("nome de evento desconhecido")
	ErrSessaoObrigatoria  = errors.New("o sessionId é obrigatório")
)

// Nomes aceitos vindos do cliente. Eventos fora desta lista são
// rejeitados para manter o registro limpo.
var knownEvents = map[string]bool{
	funnel.EventQuizStart:       true,
	funnel.EventQuizStep:        true,
	funnel.EventQuizAnswer:      true,
	funnel.EventBranchTaken:     true,
	funnel.EventValidationError: true,
	funnel.EventBackNavigation:  true,
	funnel.EventQuizComplete:    true,
	funnel.EventLeadSubmitted:   true,
	funnel.EventOfferView:       true,
	funnel.EventOfferClick:      true,
}

// EventUseCase registra e consulta a telemetria do funil.
type EventUseCase struct {
	events ports.EventRepository
}

func NewEventUseCase(events ports.EventRepository) *EventUseCase {
	return &EventUseCase{events: events}
}

// TrackInput é um evento enviado pelo cliente do funil.
type TrackInput struct {
	SessionID string            `json:"sessionId"`
	Name      string            `json:"name"`
	Step      int               `json:"step"`
	Props     map[string]string `json:"props,omitempty"`
}

// Track valida e grava um evento do cliente. Props nunca devem conter
// PII; o cliente envia apenas valores de opção e contagens.
func (uc *EventUseCase) Track(ctx context.Context, input TrackInput) error {
	if input.SessionID == "" {
		return ErrSessaoObrigatoria
	}
	if !knownEvents[input.Name] {
		return ErrEventoDesconhecido
	}

	e := funnel.NewEvent(input.SessionID, input.Name, input.Step, input.Props)
	if err := uc.events.Save(ctx, e); err != nil {
		logger.Error("Falha ao gravar evento do cliente", "sessionId", input.SessionID, "name", input.Name, "erro", err)
		return err
	}
	return nil
}

// ListBySession devolve os eventos de uma sessão, mais antigos primeiro.
func (uc *EventUseCase) ListBySession(ctx context.Context, sessionID string, limit int) ([]*funnel.Event, error) {
	if sessionID == "" {
		return nil, ErrSessaoObrigatoria
	}
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	return uc.events.ListBySessionID(ctx, sessionID, limit)
}
