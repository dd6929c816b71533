package usecases

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

var (
	ErrSessaoNaoEncontrada = errors.New("sessão do quiz não encontrada")
	ErrPassoInvalido       = errors.New("passo inválido")
)

// SessionUseCase expõe o ciclo de vida de uma sessão do quiz: criar ou
// retomar, responder, navegar e reiniciar. Cada sessão viva é um Store
// próprio, registrado pelo sessionId.
type SessionUseCase struct {
	sessions   ports.SessionRepository
	events     ports.EventRepository
	newStorage func() quiz.Storage
	now        func() time.Time
}

func NewSessionUseCase(sessions ports.SessionRepository, events ports.EventRepository, newStorage func() quiz.Storage) *SessionUseCase {
	return &SessionUseCase{
		sessions:   sessions,
		events:     events,
		newStorage: newStorage,
		now:        time.Now,
	}
}

// SessionView é a visão da sessão devolvida ao funil após cada operação.
type SessionView struct {
	State           quiz.State    `json:"state"`
	Step            quiz.Step     `json:"step"`
	StepType        quiz.StepType `json:"stepType"`
	Progress        int           `json:"progress"`
	Variant         string        `json:"variant"`
	CanGoBack       bool          `json:"canGoBack"`
	IsFinal         bool          `json:"isFinal"`
	ValidationError string        `json:"validationError,omitempty"`
}

// StartOrResume retoma a sessão pelo id ou inicia uma nova quando o id
// está vazio ou não é mais conhecido.
func (uc *SessionUseCase) StartOrResume(ctx context.Context, sessionID string) (*SessionView, error) {
	if sessionID != "" {
		if store, err := uc.sessions.FindSessionByID(sessionID); err == nil && store != nil {
			return uc.view(store), nil
		}
	}

	store := quiz.NewStore(uc.newStorage())
	if err := uc.sessions.SaveSession(store); err != nil {
		logger.Error("Falha ao registrar sessão do quiz", "erro", err)
		return nil, err
	}

	state := store.GetState()
	uc.track(ctx, funnel.NewEvent(state.SessionID, funnel.EventQuizStart, state.Step, map[string]string{
		"variant": string(funnel.VariantFor(state.SessionID)),
	}))

	logger.Info("Sessão do quiz iniciada", "sessionId", state.SessionID)
	return uc.view(store), nil
}

// AnswerInput é uma resposta de um passo. Value para seleção única,
// Values para seleção múltipla.
type AnswerInput struct {
	SessionID string   `json:"sessionId"`
	Field     string   `json:"field"`
	Value     string   `json:"value,omitempty"`
	Values    []string `json:"values,omitempty"`
}

// Answer grava a resposta na sessão e registra o evento sem PII.
func (uc *SessionUseCase) Answer(ctx context.Context, input AnswerInput) (*SessionView, error) {
	store, err := uc.find(input.SessionID)
	if err != nil {
		return nil, err
	}

	field := quiz.Field(input.Field)
	props := map[string]string{"field": input.Field}

	if input.Values != nil {
		if err := store.SetMultiAnswer(field, input.Values); err != nil {
			return nil, err
		}
		props["count"] = strconv.Itoa(len(input.Values))
	} else {
		if err := store.SetAnswer(field, input.Value); err != nil {
			return nil, err
		}
		props["value"] = input.Value
	}

	uc.track(ctx, funnel.NewEvent(input.SessionID, funnel.EventQuizAnswer, store.CurrentStep(), props))
	return uc.view(store), nil
}

// LeadInput são os campos de contato do passo 6 gravados na sessão.
type LeadInput struct {
	SessionID string `json:"sessionId"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Consent   bool   `json:"consent"`
}

// SetLead grava nome, email e consentimento no estado da sessão. A
// captura persistente do lead é responsabilidade do SubmitLeadUseCase.
func (uc *SessionUseCase) SetLead(ctx context.Context, input LeadInput) (*SessionView, error) {
	store, err := uc.find(input.SessionID)
	if err != nil {
		return nil, err
	}
	store.SetLead(input.Nome, input.Email, input.Consent)
	return uc.view(store), nil
}

// Next avança a sessão e registra os eventos de navegação: erro de
// validação, passo, ramificação, conclusão e primeira visão da oferta.
func (uc *SessionUseCase) Next(ctx context.Context, sessionID string) (*SessionView, error) {
	store, err := uc.find(sessionID)
	if err != nil {
		return nil, err
	}

	before := store.GetState()
	res := store.Next()

	if !res.CanProceed {
		uc.track(ctx, funnel.NewEvent(sessionID, funnel.EventValidationError, before.Step, map[string]string{
			"error": res.ValidationError,
		}))
		return uc.view(store), nil
	}

	// No passo terminal Next é idempotente e não gera navegação nova.
	if res.TargetStep == before.Step {
		return uc.view(store), nil
	}

	uc.track(ctx, funnel.NewEvent(sessionID, funnel.EventQuizStep, res.TargetStep, map[string]string{
		"from": strconv.Itoa(before.Step),
	}))

	if res.TargetStep != before.Step+1 {
		state := store.GetState()
		uc.track(ctx, funnel.NewEvent(sessionID, funnel.EventBranchTaken, res.TargetStep, map[string]string{
			"from":   strconv.Itoa(before.Step),
			"branch": quiz.BranchInfo(&state),
		}))
	}

	if res.TargetStep == quiz.UltimoPasso {
		if before.CompletedAt == 0 {
			uc.track(ctx, funnel.NewEvent(sessionID, funnel.EventQuizComplete, res.TargetStep, nil))
		}
		uc.trackOfferView(ctx, sessionID)
	}

	return uc.view(store), nil
}

// Prev retrocede a sessão e registra a navegação de volta.
func (uc *SessionUseCase) Prev(ctx context.Context, sessionID string) (*SessionView, error) {
	store, err := uc.find(sessionID)
	if err != nil {
		return nil, err
	}

	before := store.CurrentStep()
	res := store.Prev()
	if res.CanProceed {
		uc.track(ctx, funnel.NewEvent(sessionID, funnel.EventBackNavigation, res.TargetStep, map[string]string{
			"from": strconv.Itoa(before),
		}))
	}
	return uc.view(store), nil
}

// Reset descarta a sessão atual e re-registra o Store sob o novo id.
func (uc *SessionUseCase) Reset(ctx context.Context, sessionID string) (*SessionView, error) {
	store, err := uc.find(sessionID)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.DeleteSession(sessionID); err != nil {
		logger.Error("Falha ao remover sessão antiga", "sessionId", sessionID, "erro", err)
	}
	store.Reset()
	if err := uc.sessions.SaveSession(store); err != nil {
		logger.Error("Falha ao re-registrar sessão", "sessionId", store.SessionID(), "erro", err)
		return nil, err
	}

	state := store.GetState()
	uc.track(ctx, funnel.NewEvent(state.SessionID, funnel.EventQuizStart, state.Step, map[string]string{
		"variant": string(funnel.VariantFor(state.SessionID)),
		"reset":   "true",
	}))

	logger.Info("Sessão do quiz reiniciada", "sessionId", state.SessionID, "anterior", sessionID)
	return uc.view(store), nil
}

// Content devolve o conteúdo personalizado de um passo específico.
func (uc *SessionUseCase) Content(ctx context.Context, sessionID string, step int) (*quiz.Step, error) {
	store, err := uc.find(sessionID)
	if err != nil {
		return nil, err
	}
	if step < quiz.PrimeiroPasso || step > quiz.UltimoPasso {
		return nil, ErrPassoInvalido
	}
	state := store.GetState()
	content := quiz.PersonalizedContent(step, &state)
	return &content, nil
}

func (uc *SessionUseCase) find(sessionID string) (*quiz.Store, error) {
	if sessionID == "" {
		return nil, ErrSessaoNaoEncontrada
	}
	store, err := uc.sessions.FindSessionByID(sessionID)
	if err != nil || store == nil {
		return nil, ErrSessaoNaoEncontrada
	}
	return store, nil
}

func (uc *SessionUseCase) view(store *quiz.Store) *SessionView {
	state := store.GetState()
	content := quiz.PersonalizedContent(state.Step, &state)
	return &SessionView{
		State:           state,
		Step:            content,
		StepType:        quiz.TypeOfStep(state.Step),
		Progress:        quiz.Progress(state.Step),
		Variant:         string(funnel.VariantFor(state.SessionID)),
		CanGoBack:       quiz.CanGoBack(state.Step),
		IsFinal:         quiz.IsFinalStep(state.Step),
		ValidationError: store.LastValidationError(),
	}
}

// trackOfferView registra a primeira visão da oferta; visões repetidas
// da mesma sessão não geram novo evento.
func (uc *SessionUseCase) trackOfferView(ctx context.Context, sessionID string) {
	count, err := uc.events.CountBySessionAndName(ctx, sessionID, funnel.EventOfferView)
	if err != nil {
		logger.Error("Falha ao consultar eventos da sessão", "sessionId", sessionID, "erro", err)
		return
	}
	if count > 0 {
		return
	}
	uc.track(ctx, funnel.NewEvent(sessionID, funnel.EventOfferView, quiz.UltimoPasso, nil))
}

func (uc *SessionUseCase) track(ctx context.Context, e *funnel.Event) {
	if err := uc.events.Save(ctx, e); err != nil {
		logger.Error("Falha ao registrar evento do funil", "sessionId", e.SessionID, "name", e.Name, "erro", err)
	}
}
