package funnel

import (
	"time"

	"github.com/google/uuid"
)

// Nomes dos eventos do funil. A carga útil nunca inclui PII: respostas
// de seleção múltipla são reduzidas a contagens antes do registro.
const (
	EventQuizStart       = "quiz_start"
	EventQuizStep        = "quiz_step"
	EventQuizAnswer      = "quiz_answer"
	EventBranchTaken     = "quiz_branch_taken"
	EventValidationError = "quiz_validation_error"
	EventBackNavigation  = "quiz_back_navigation"
	EventQuizComplete    = "quiz_complete"
	EventLeadSubmitted   = "quiz_lead_submitted"
	EventOfferView       = "offer_view"
	EventOfferClick      = "offer_click"
)

// Event é um registro append-only de telemetria do funil.
type Event struct {
	ID        string            `json:"id"`
	SessionID string            `json:"sessionId"`
	Name      string            `json:"name"`
	Step      int               `json:"step"`
	Props     map[string]string `json:"props,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewEvent cria um evento com id próprio e timestamp atual.
func NewEvent(sessionID, name string, step int, props map[string]string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Name:      name,
		Step:      step,
		Props:     props,
		CreatedAt: time.Now(),
	}
}
