package quiz

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// StorageKey é a chave fixa sob a qual o estado da sessão é persistido.
const StorageKey = "dormir_quiz_state"

var (
	ErrCampoDesconhecido = errors.New("campo de resposta desconhecido")
	ErrValorInvalido     = errors.New("valor inválido para o campo")
)

// Storage é o contrato de persistência por aba usado pelo Store.
// Espelha a semântica de um session storage: escrita síncrona local.
type Storage interface {
	Set(key, value string) error
	Get(key string) (string, bool)
	Remove(key string)
}

// Listener recebe um snapshot do estado a cada mutação.
type Listener func(State)

// Field identifica um campo de resposta para despacho explícito.
// Substitui o despacho dinâmico por nome de método da versão original.
type Field string

const (
	FieldIdade          Field = "idade"
	FieldDiagnostico    Field = "diagnostico"
	FieldHoras          Field = "horas"
	FieldRemedios       Field = "remedios"
	FieldAnsiedade      Field = "ansiedade"
	FieldImpactos       Field = "impactos"
	FieldConsequencias  Field = "consequencias"
	FieldDesejos        Field = "desejos"
	FieldConhecimento   Field = "conhecimento"
	FieldDirecionamento Field = "direcionamento"
	FieldMicro          Field = "micro"
)

// Store é o dono do estado vivo da sessão do quiz.
// Toda mutação passa pelos setters; leituras externas recebem cópias.
// Não há instância global: o chamador constrói e injeta o Store.
type Store struct {
	mu        sync.Mutex
	state     *State
	listeners map[int]Listener
	nextID    int
	storage   Storage
	now       func() time.Time

	// Último erro de validação devolvido por Next; limpo ao navegar.
	lastValidationError string
}

// StoreOption configura o Store na construção.
type StoreOption func(*Store)

// WithNow injeta o relógio (testes).
func WithNow(now func() time.Time) StoreOption {
	return func(st *Store) { st.now = now }
}

// NewStore constrói o Store tentando restaurar uma sessão persistida.
// Estado ausente ou estruturalmente inválido inicia sessão nova em
// silêncio (erro de persistência nunca chega ao usuário).
func NewStore(storage Storage, opts ...StoreOption) *Store {
	st := &Store{
		listeners: make(map[int]Listener),
		storage:   storage,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(st)
	}

	if restored := st.loadFromStorage(); restored != nil {
		st.state = restored
	} else {
		st.state = NewState(st.now())
	}
	st.saveToStorage()

	return st
}

// GetState retorna um snapshot do estado atual.
func (st *Store) GetState() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Snapshot()
}

// CurrentStep retorna o passo atual.
func (st *Store) CurrentStep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Step
}

// SessionID retorna o identificador da sessão.
func (st *Store) SessionID() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.SessionID
}

// LastValidationError retorna o erro de validação pendente, se houver.
func (st *Store) LastValidationError() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.lastValidationError
}

// Subscribe registra um observador e devolve a função de cancelamento.
// O observador é chamado de forma síncrona a cada mutação, sempre com
// um snapshot (nunca referência viva).
func (st *Store) Subscribe(l Listener) func() {
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	st.listeners[id] = l
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.listeners, id)
		st.mu.Unlock()
	}
}

// mutate aplica a mutação, persiste e notifica, nessa ordem.
func (st *Store) mutate(fn func(*State)) {
	st.mu.Lock()
	fn(st.state)
	st.saveToStorage()
	snapshot := st.state.Snapshot()
	listeners := make([]Listener, 0, len(st.listeners))
	for _, l := range st.listeners {
		listeners = append(listeners, l)
	}
	st.mu.Unlock()

	for _, l := range listeners {
		notify(l, snapshot)
	}
}

// notify isola pânico de observador: um listener quebrado não
// interrompe os demais nem o Store.
func notify(l Listener, s State) {
	defer func() { _ = recover() }()
	l(s)
}

// SetStep move o cursor diretamente. Ao alcançar o passo final pela
// primeira vez, marca a conclusão da sessão.
func (st *Store) SetStep(step int) {
	st.mutate(func(s *State) {
		s.Step = step
		if step == UltimoPasso && s.CompletedAt == 0 {
			s.CompletedAt = st.now().UnixMilli()
		}
	})
}

// Next valida e avança o cursor conforme o engine. O erro de validação,
// se houver, fica disponível em LastValidationError.
func (st *Store) Next() NavigationResult {
	st.mu.Lock()
	res := NextStep(st.state)
	st.mu.Unlock()

	if !res.CanProceed {
		st.mu.Lock()
		st.lastValidationError = res.ValidationError
		st.mu.Unlock()
		return res
	}

	st.mu.Lock()
	st.lastValidationError = ""
	st.mu.Unlock()
	st.SetStep(res.TargetStep)
	return res
}

// Prev retrocede o cursor re-derivando o predecessor das flags atuais.
// Voltar limpa o erro de validação pendente.
func (st *Store) Prev() NavigationResult {
	st.mu.Lock()
	res := PrevStep(st.state)
	st.lastValidationError = ""
	st.mu.Unlock()

	if res.CanProceed {
		st.SetStep(res.TargetStep)
	}
	return res
}

// --- Setters por campo (cada um deriva sua flag, quando houver) ---

func (st *Store) SetIdade(v Idade) {
	st.mutate(func(s *State) { s.Idade = v })
}

// SetDiagnostico grava a resposta e levanta a flag do caminho rápido
// quando o respondente não tem problemas de sono.
func (st *Store) SetDiagnostico(v Diagnostico) {
	st.mutate(func(s *State) {
		s.Diagnostico = v
		if v == DiagnosticoSemProblemas {
			s.Flags.Merge(Flags{BranchNoProblems: true})
		}
	})
}

func (st *Store) SetHoras(v Horas) {
	st.mutate(func(s *State) { s.Horas = v })
}

func (st *Store) SetRemedios(v Remedios) {
	st.mutate(func(s *State) {
		s.Remedios = v
		if v == RemediosFrequente {
			s.Flags.Merge(Flags{BranchHeavyRemedios: true})
		}
	})
}

func (st *Store) SetAnsiedade(v Ansiedade) {
	st.mutate(func(s *State) {
		s.Ansiedade = v
		if v == AnsiedadeSempre || v == AnsiedadeMuitas {
			s.Flags.Merge(Flags{BranchHighAnsiedade: true})
		}
	})
}

func (st *Store) SetImpactos(v []string) {
	st.mutate(func(s *State) { s.Impactos = cloneStrings(v) })
}

func (st *Store) SetConsequencias(v []string) {
	st.mutate(func(s *State) { s.Consequencias = cloneStrings(v) })
}

func (st *Store) SetDesejos(v []string) {
	st.mutate(func(s *State) { s.Desejos = cloneStrings(v) })
}

func (st *Store) SetConhecimento(v Conhecimento) {
	st.mutate(func(s *State) {
		s.Conhecimento = v
		if v == ConhecimentoTentei {
			s.Flags.Merge(Flags{Experienced: true})
		}
	})
}

func (st *Store) SetDirecionamento(v Direcionamento) {
	st.mutate(func(s *State) { s.Direcionamento = v })
}

func (st *Store) SetMicro(v MicroCompromisso) {
	st.mutate(func(s *State) {
		s.Micro = v
		if v == MicroMedoFalhar {
			s.Flags.Merge(Flags{Reassurance: true})
		}
	})
}

// SetLead grava os três campos de captura de uma vez.
func (st *Store) SetLead(nome, email string, consent bool) {
	st.mutate(func(s *State) {
		s.Nome = nome
		s.Email = email
		s.Consent = consent
	})
}

// SetAnswer despacha um valor de escolha única para o campo informado.
// Despacho enumerado e explícito; valor fora do conjunto fechado do
// campo é rejeitado.
func (st *Store) SetAnswer(field Field, value string) error {
	switch field {
	case FieldIdade:
		v, ok := ParseIdade(value)
		if !ok {
			return ErrValorInvalido
		}
		st.SetIdade(v)
	case FieldDiagnostico:
		v, ok := ParseDiagnostico(value)
		if !ok {
			return ErrValorInvalido
		}
		st.SetDiagnostico(v)
	case FieldHoras:
		v, ok := ParseHoras(value)
		if !ok {
			return ErrValorInvalido
		}
		st.SetHoras(v)
	case FieldRemedios:
		v, ok := ParseRemedios(value)
		if !ok {
			return ErrValorInvalido
		}
		st.SetRemedios(v)
	case FieldAnsiedade:
		v, ok := ParseAnsiedade(value)
		if !ok {
			return ErrValorInvalido
		}
		st.SetAnsiedade(v)
	case FieldConhecimento:
		v, ok := ParseConhecimento(value)
		if !ok {
			return ErrValorInvalido
		}
		st.SetConhecimento(v)
	case FieldDirecionamento:
		v, ok := ParseDirecionamento(value)
		if !ok {
			return ErrValorInvalido
		}
		st.SetDirecionamento(v)
	case FieldMicro:
		v, ok := ParseMicro(value)
		if !ok {
			return ErrValorInvalido
		}
		st.SetMicro(v)
	default:
		return ErrCampoDesconhecido
	}
	return nil
}

// SetMultiAnswer despacha uma seleção múltipla para o campo informado.
func (st *Store) SetMultiAnswer(field Field, values []string) error {
	switch field {
	case FieldImpactos:
		st.SetImpactos(values)
	case FieldConsequencias:
		st.SetConsequencias(values)
	case FieldDesejos:
		st.SetDesejos(values)
	default:
		return ErrCampoDesconhecido
	}
	return nil
}

// Complete marca a sessão como concluída.
func (st *Store) Complete() {
	st.mutate(func(s *State) {
		if s.CompletedAt == 0 {
			s.CompletedAt = st.now().UnixMilli()
		}
	})
}

// Reset descarta a sessão e inicia outra, com novo sessionId.
func (st *Store) Reset() {
	st.mu.Lock()
	st.state = NewState(st.now())
	st.lastValidationError = ""
	st.saveToStorage()
	snapshot := st.state.Snapshot()
	listeners := make([]Listener, 0, len(st.listeners))
	for _, l := range st.listeners {
		listeners = append(listeners, l)
	}
	st.mu.Unlock()

	for _, l := range listeners {
		notify(l, snapshot)
	}
}

// IsStepValid delega para a validação do engine sobre o estado vivo.
// Fonte única de regras: nada é re-implementado aqui.
func (st *Store) IsStepValid(step int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return ValidateStep(st.state, step).IsValid
}

// ShouldSkipStep indica se o passo será pulado pela ramificação atual.
func (st *Store) ShouldSkipStep(step int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	switch step {
	case 5, 7, 8:
		return st.state.Flags.BranchNoProblems
	case 9:
		return st.state.Flags.BranchNoProblems || st.state.Ansiedade == AnsiedadeNunca
	default:
		return false
	}
}

// --- Persistência ---

func (st *Store) saveToStorage() {
	if st.storage == nil {
		return
	}
	raw, err := json.Marshal(st.state)
	if err != nil {
		return
	}
	_ = st.storage.Set(StorageKey, string(raw))
}

func (st *Store) loadFromStorage() *State {
	if st.storage == nil {
		return nil
	}
	raw, ok := st.storage.Get(StorageKey)
	if !ok {
		return nil
	}

	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil
	}
	if !s.IsStructurallyValid() {
		return nil
	}
	return &s
}

// ClearStorage remove o estado persistido (testes e reinício explícito).
func (st *Store) ClearStorage() {
	if st.storage != nil {
		st.storage.Remove(StorageKey)
	}
}

// --- Parse dos conjuntos fechados de resposta ---

func ParseIdade(v string) (Idade, bool) {
	switch Idade(v) {
	case Idade18a28, Idade29a38, Idade39a49, Idade50Mais:
		return Idade(v), true
	}
	return "", false
}

func ParseDiagnostico(v string) (Diagnostico, bool) {
	switch Diagnostico(v) {
	case DiagnosticoDemoro, DiagnosticoAcordoVarias, DiagnosticoAcordoCansado, DiagnosticoSemProblemas:
		return Diagnostico(v), true
	}
	return "", false
}

func ParseHoras(v string) (Horas, bool) {
	switch Horas(v) {
	case HorasMenos5, Horas5a6, Horas7a8, HorasMais8:
		return Horas(v), true
	}
	return "", false
}

func ParseRemedios(v string) (Remedios, bool) {
	switch Remedios(v) {
	case RemediosFrequente, RemediosTenteiNaoResolveu, RemediosPensei, RemediosNunca:
		return Remedios(v), true
	}
	return "", false
}

func ParseAnsiedade(v string) (Ansiedade, bool) {
	switch Ansiedade(v) {
	case AnsiedadeSempre, AnsiedadeMuitas, AnsiedadeRaramente, AnsiedadeNunca:
		return Ansiedade(v), true
	}
	return "", false
}

func ParseConhecimento(v string) (Conhecimento, bool) {
	switch Conhecimento(v) {
	case ConhecimentoNada, ConhecimentoPouco, ConhecimentoTentei:
		return Conhecimento(v), true
	}
	return "", false
}

func ParseDirecionamento(v string) (Direcionamento, bool) {
	switch Direcionamento(v) {
	case DirecionamentoProfundo, DirecionamentoRapidoSemRemedio, DirecionamentoEnergia, DirecionamentoReduzirAnsiedade:
		return Direcionamento(v), true
	}
	return "", false
}

func ParseMicro(v string) (MicroCompromisso, bool) {
	switch MicroCompromisso(v) {
	case MicroDecidido, MicroMudarHabitos, MicroMedoFalhar:
		return MicroCompromisso(v), true
	}
	return "", false
}
