package quiz

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage implementa Storage em memória para os testes.
type fakeStorage struct {
	mu    sync.Mutex
	items map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: make(map[string]string)}
}

func (f *fakeStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
	return nil
}

func (f *fakeStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	return v, ok
}

func (f *fakeStorage) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
}

func TestNewStore_SessaoNova(t *testing.T) {
	st := NewStore(newFakeStorage())

	state := st.GetState()
	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, PrimeiroPasso, state.Step)
	assert.Greater(t, state.StartedAt, int64(0))
	assert.Zero(t, state.CompletedAt)
}

func TestNewStore_RestauraSessaoPersistida(t *testing.T) {
	storage := newFakeStorage()

	first := NewStore(storage)
	first.SetIdade(Idade39a49)
	first.SetStep(3)
	sessionID := first.SessionID()

	// Novo Store sobre o mesmo storage retoma a mesma sessão
	second := NewStore(storage)
	state := second.GetState()
	assert.Equal(t, sessionID, state.SessionID)
	assert.Equal(t, 3, state.Step)
	assert.Equal(t, Idade39a49, state.Idade)
}

func TestNewStore_EstadoCorrompidoIniciaNova(t *testing.T) {
	storage := newFakeStorage()
	require.NoError(t, storage.Set(StorageKey, "{nao é json"))

	st := NewStore(storage)
	state := st.GetState()
	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, PrimeiroPasso, state.Step)
}

func TestStore_SettersDerivamFlags(t *testing.T) {
	st := NewStore(newFakeStorage())

	st.SetDiagnostico(DiagnosticoSemProblemas)
	st.SetRemedios(RemediosFrequente)
	st.SetAnsiedade(AnsiedadeSempre)
	st.SetConhecimento(ConhecimentoTentei)
	st.SetMicro(MicroMedoFalhar)

	flags := st.GetState().Flags
	assert.True(t, flags.BranchNoProblems)
	assert.True(t, flags.BranchHeavyRemedios)
	assert.True(t, flags.BranchHighAnsiedade)
	assert.True(t, flags.Experienced)
	assert.True(t, flags.Reassurance)
}

func TestStore_FlagsNuncaSaoRebaixadas(t *testing.T) {
	st := NewStore(newFakeStorage())

	st.SetAnsiedade(AnsiedadeSempre)
	require.True(t, st.GetState().Flags.BranchHighAnsiedade)

	// Trocar a resposta não limpa a flag já levantada
	st.SetAnsiedade(AnsiedadeNunca)
	assert.True(t, st.GetState().Flags.BranchHighAnsiedade)
	assert.Equal(t, AnsiedadeNunca, st.GetState().Ansiedade)
}

func TestStore_NextBloqueadoGuardaErro(t *testing.T) {
	st := NewStore(newFakeStorage())
	st.SetStep(2)

	res := st.Next()
	assert.False(t, res.CanProceed)
	assert.Equal(t, 2, st.CurrentStep())
	assert.Equal(t, "Por favor, selecione sua faixa etária", st.LastValidationError())

	// Responder e avançar limpa o erro
	st.SetIdade(Idade18a28)
	res = st.Next()
	assert.True(t, res.CanProceed)
	assert.Equal(t, 3, st.CurrentStep())
	assert.Empty(t, st.LastValidationError())
}

func TestStore_PrevLimpaErroDeValidacao(t *testing.T) {
	st := NewStore(newFakeStorage())
	st.SetIdade(Idade18a28)
	st.SetStep(4)

	res := st.Next() // diagnóstico vazio: bloqueia
	require.False(t, res.CanProceed)
	require.NotEmpty(t, st.LastValidationError())

	st.Prev()
	assert.Empty(t, st.LastValidationError())
	assert.Equal(t, 3, st.CurrentStep())
}

func TestStore_SetStepMarcaConclusaoUmaVez(t *testing.T) {
	frozen := time.Now()
	st := NewStore(newFakeStorage(), WithNow(func() time.Time { return frozen }))

	st.SetStep(UltimoPasso)
	completedAt := st.GetState().CompletedAt
	require.Equal(t, frozen.UnixMilli(), completedAt)

	// Voltar e alcançar o 18 de novo não sobrescreve
	st.SetStep(17)
	st.SetStep(UltimoPasso)
	assert.Equal(t, completedAt, st.GetState().CompletedAt)
}

func TestStore_SubscribeRecebeSnapshots(t *testing.T) {
	st := NewStore(newFakeStorage())

	var got []State
	unsubscribe := st.Subscribe(func(s State) { got = append(got, s) })

	st.SetIdade(Idade50Mais)
	require.Len(t, got, 1)
	assert.Equal(t, Idade50Mais, got[0].Idade)

	// Snapshot é cópia: mutar o recebido não afeta o Store
	got[0].Idade = Idade18a28
	assert.Equal(t, Idade50Mais, st.GetState().Idade)

	unsubscribe()
	st.SetIdade(Idade29a38)
	assert.Len(t, got, 1)
}

func TestStore_SetAnswerDespachoEnumerado(t *testing.T) {
	st := NewStore(newFakeStorage())

	require.NoError(t, st.SetAnswer(FieldIdade, "29-38"))
	assert.Equal(t, Idade29a38, st.GetState().Idade)

	assert.ErrorIs(t, st.SetAnswer(FieldIdade, "inexistente"), ErrValorInvalido)
	assert.ErrorIs(t, st.SetAnswer(Field("cor_favorita"), "azul"), ErrCampoDesconhecido)

	require.NoError(t, st.SetMultiAnswer(FieldImpactos, []string{"humor", "foco"}))
	assert.Equal(t, []string{"humor", "foco"}, st.GetState().Impactos)

	assert.ErrorIs(t, st.SetMultiAnswer(FieldIdade, []string{"x"}), ErrCampoDesconhecido)
}

func TestStore_ResetIniciaSessaoNova(t *testing.T) {
	storage := newFakeStorage()
	st := NewStore(storage)
	st.SetIdade(Idade18a28)
	st.SetStep(5)
	oldID := st.SessionID()

	st.Reset()

	state := st.GetState()
	assert.NotEqual(t, oldID, state.SessionID)
	assert.Equal(t, PrimeiroPasso, state.Step)
	assert.Empty(t, state.Idade)

	// Persistência aponta para a sessão nova
	restored := NewStore(storage)
	assert.Equal(t, state.SessionID, restored.SessionID())
}

func TestStore_ShouldSkipStep(t *testing.T) {
	st := NewStore(newFakeStorage())
	st.SetDiagnostico(DiagnosticoSemProblemas)

	for _, step := range []int{5, 7, 8, 9} {
		assert.True(t, st.ShouldSkipStep(step), "passo %d", step)
	}
	assert.False(t, st.ShouldSkipStep(10))

	other := NewStore(newFakeStorage())
	other.SetAnsiedade(AnsiedadeNunca)
	assert.True(t, other.ShouldSkipStep(9))
	assert.False(t, other.ShouldSkipStep(8))
}

func TestStore_IsStepValidDelegaParaEngine(t *testing.T) {
	st := NewStore(newFakeStorage())

	assert.True(t, st.IsStepValid(1))
	assert.False(t, st.IsStepValid(6))

	st.SetLead("Maria", "maria@example.com", true)
	assert.True(t, st.IsStepValid(6))
}
