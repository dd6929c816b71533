package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

func newSessionFixture() (*SessionUseCase, *fakeSessionRepo, *fakeEventRepo) {
	repo := newFakeSessionRepo()
	events := &fakeEventRepo{}
	uc := NewSessionUseCase(repo, events, func() quiz.Storage { return newMemStorage() })
	return uc, repo, events
}

func TestStartOrResume_NovaSessao(t *testing.T) {
	uc, repo, events := newSessionFixture()

	view, err := uc.StartOrResume(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, quiz.PrimeiroPasso, view.State.Step)
	assert.Equal(t, quiz.StepPresentation, view.StepType)
	assert.False(t, view.CanGoBack)
	assert.NotEmpty(t, view.State.SessionID)
	assert.Contains(t, []string{"A", "B"}, view.Variant)
	assert.NotNil(t, repo.stores[view.State.SessionID])

	require.Len(t, events.saved, 1)
	assert.Equal(t, funnel.EventQuizStart, events.saved[0].Name)
	assert.Equal(t, view.Variant, events.saved[0].Props["variant"])
}

func TestStartOrResume_RetomaSessaoExistente(t *testing.T) {
	uc, _, events := newSessionFixture()

	first, err := uc.StartOrResume(context.Background(), "")
	require.NoError(t, err)

	second, err := uc.StartOrResume(context.Background(), first.State.SessionID)
	require.NoError(t, err)

	assert.Equal(t, first.State.SessionID, second.State.SessionID)
	assert.Len(t, events.saved, 1, "retomada não gera novo quiz_start")
}

func TestStartOrResume_IDDesconhecidoIniciaNova(t *testing.T) {
	uc, _, _ := newSessionFixture()

	view, err := uc.StartOrResume(context.Background(), "inexistente")
	require.NoError(t, err)
	assert.NotEqual(t, "inexistente", view.State.SessionID)
}

func TestAnswer_SelecaoUnica(t *testing.T) {
	uc, _, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")

	out, err := uc.Answer(context.Background(), AnswerInput{
		SessionID: view.State.SessionID,
		Field:     "idade",
		Value:     "29-38",
	})
	require.NoError(t, err)
	assert.Equal(t, quiz.Idade29a38, out.State.Idade)

	last := events.saved[len(events.saved)-1]
	assert.Equal(t, funnel.EventQuizAnswer, last.Name)
	assert.Equal(t, "idade", last.Props["field"])
	assert.Equal(t, "29-38", last.Props["value"])
}

func TestAnswer_SelecaoMultipla(t *testing.T) {
	uc, _, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")

	out, err := uc.Answer(context.Background(), AnswerInput{
		SessionID: view.State.SessionID,
		Field:     "impactos",
		Values:    []string{"memoria", "humor"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"memoria", "humor"}, out.State.Impactos)

	last := events.saved[len(events.saved)-1]
	assert.Equal(t, "2", last.Props["count"])
	assert.NotContains(t, last.Props, "value", "valores de múltipla escolha não vão para a telemetria")
}

func TestAnswer_ValorInvalido(t *testing.T) {
	uc, _, _ := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")

	_, err := uc.Answer(context.Background(), AnswerInput{
		SessionID: view.State.SessionID,
		Field:     "idade",
		Value:     "13",
	})
	assert.ErrorIs(t, err, quiz.ErrValorInvalido)

	_, err = uc.Answer(context.Background(), AnswerInput{
		SessionID: view.State.SessionID,
		Field:     "inexistente",
		Value:     "x",
	})
	assert.ErrorIs(t, err, quiz.ErrCampoDesconhecido)
}

func TestNext_AvancaERegistra(t *testing.T) {
	uc, _, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")

	out, err := uc.Next(context.Background(), view.State.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.State.Step)
	assert.Empty(t, out.ValidationError)

	last := events.saved[len(events.saved)-1]
	assert.Equal(t, funnel.EventQuizStep, last.Name)
	assert.Equal(t, 2, last.Step)
	assert.Equal(t, "1", last.Props["from"])
}

func TestNext_ErroDeValidacao(t *testing.T) {
	uc, _, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")

	// Passo 2 exige a faixa etária
	_, err := uc.Next(context.Background(), view.State.SessionID)
	require.NoError(t, err)
	out, err := uc.Next(context.Background(), view.State.SessionID)
	require.NoError(t, err)

	assert.Equal(t, 2, out.State.Step)
	assert.Equal(t, "Por favor, selecione sua faixa etária", out.ValidationError)

	last := events.saved[len(events.saved)-1]
	assert.Equal(t, funnel.EventValidationError, last.Name)
	assert.Equal(t, out.ValidationError, last.Props["error"])
}

func TestNext_RamificacaoRegistrada(t *testing.T) {
	uc, repo, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")
	sessionID := view.State.SessionID

	// Leva a sessão ao passo 4 com o diagnóstico "sem problemas"
	store := repo.stores[sessionID]
	store.SetIdade(quiz.Idade29a38)
	store.SetDiagnostico(quiz.DiagnosticoSemProblemas)
	store.SetStep(4)

	out, err := uc.Next(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 6, out.State.Step, "sem problemas pula o passo 5")

	names := events.names()
	assert.Contains(t, names, funnel.EventBranchTaken)
	last := events.saved[len(events.saved)-1]
	assert.Equal(t, "4", last.Props["from"])
	assert.Contains(t, last.Props["branch"], "no_problems")
}

func TestNext_ConclusaoEOfertaUmaVez(t *testing.T) {
	uc, repo, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")
	sessionID := view.State.SessionID

	store := repo.stores[sessionID]
	store.SetStep(17)

	out, err := uc.Next(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, quiz.UltimoPasso, out.State.Step)
	assert.True(t, out.IsFinal)

	names := events.names()
	assert.Contains(t, names, funnel.EventQuizComplete)
	assert.Contains(t, names, funnel.EventOfferView)

	// Revisitar a oferta não repete quiz_complete nem offer_view
	store.SetStep(17)
	_, err = uc.Next(context.Background(), sessionID)
	require.NoError(t, err)

	count := 0
	for _, name := range events.names() {
		if name == funnel.EventOfferView {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestNext_PassoTerminalNaoRepeteEventos(t *testing.T) {
	uc, repo, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")
	sessionID := view.State.SessionID

	repo.stores[sessionID].SetStep(17)
	_, err := uc.Next(context.Background(), sessionID)
	require.NoError(t, err)
	baseline := len(events.saved)

	// Next na oferta é idempotente: permanece em 18 sem nova telemetria
	for i := 0; i < 3; i++ {
		out, err := uc.Next(context.Background(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, quiz.UltimoPasso, out.State.Step)
	}

	assert.Len(t, events.saved, baseline)
	for _, name := range events.names() {
		assert.NotEqual(t, funnel.EventBranchTaken, name)
	}
}

func TestPrev_RegistraNavegacao(t *testing.T) {
	uc, _, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")

	_, err := uc.Next(context.Background(), view.State.SessionID)
	require.NoError(t, err)
	out, err := uc.Prev(context.Background(), view.State.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.State.Step)

	last := events.saved[len(events.saved)-1]
	assert.Equal(t, funnel.EventBackNavigation, last.Name)
	assert.Equal(t, "2", last.Props["from"])
}

func TestReset_TrocaDeSessao(t *testing.T) {
	uc, repo, events := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")
	oldID := view.State.SessionID

	out, err := uc.Reset(context.Background(), oldID)
	require.NoError(t, err)

	assert.NotEqual(t, oldID, out.State.SessionID)
	assert.Equal(t, quiz.PrimeiroPasso, out.State.Step)
	assert.Nil(t, repo.stores[oldID])
	assert.NotNil(t, repo.stores[out.State.SessionID])

	last := events.saved[len(events.saved)-1]
	assert.Equal(t, funnel.EventQuizStart, last.Name)
	assert.Equal(t, "true", last.Props["reset"])
}

func TestContent_Personalizado(t *testing.T) {
	uc, repo, _ := newSessionFixture()
	view, _ := uc.StartOrResume(context.Background(), "")
	sessionID := view.State.SessionID

	repo.stores[sessionID].SetLead("Maria", "maria@example.com", true)

	step, err := uc.Content(context.Background(), sessionID, 15)
	require.NoError(t, err)
	assert.Contains(t, step.Title, "Maria")

	_, err = uc.Content(context.Background(), sessionID, 0)
	assert.ErrorIs(t, err, ErrPassoInvalido)
	_, err = uc.Content(context.Background(), sessionID, 19)
	assert.ErrorIs(t, err, ErrPassoInvalido)
}

func TestSessaoNaoEncontrada(t *testing.T) {
	uc, _, _ := newSessionFixture()

	_, err := uc.Next(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessaoNaoEncontrada)
	_, err = uc.Prev(context.Background(), "desconhecida")
	assert.ErrorIs(t, err, ErrSessaoNaoEncontrada)
	_, err = uc.Answer(context.Background(), AnswerInput{SessionID: "desconhecida", Field: "idade", Value: "29-38"})
	assert.ErrorIs(t, err, ErrSessaoNaoEncontrada)
}
