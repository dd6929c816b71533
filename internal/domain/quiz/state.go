package quiz

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Limites do funil.
const (
	PrimeiroPasso = 1
	UltimoPasso   = 18
)

// MinNomeLength é o tamanho mínimo do nome no passo de captura de lead.
const MinNomeLength = 2

// Regex simplificado para validação de email (mesma regra do formulário).
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmailValid valida a sintaxe de um email.
func IsEmailValid(email string) bool {
	return emailRegex.MatchString(email)
}

// Idade representa a faixa etária do respondente.
type Idade string

const (
	Idade18a28  Idade = "18-28"
	Idade29a38  Idade = "29-38"
	Idade39a49  Idade = "39-49"
	Idade50Mais Idade = "50+"
)

// Diagnostico descreve o problema de sono relatado no passo 4.
type Diagnostico string

const (
	DiagnosticoDemoro        Diagnostico = "demoro"
	DiagnosticoAcordoVarias  Diagnostico = "acordo_varias"
	DiagnosticoAcordoCansado Diagnostico = "acordo_cansado"
	DiagnosticoSemProblemas  Diagnostico = "sem_problemas"
)

// Horas de sono por noite (passo 5).
type Horas string

const (
	HorasMenos5 Horas = "<5"
	Horas5a6    Horas = "5-6"
	Horas7a8    Horas = "7-8"
	HorasMais8  Horas = ">8"
)

// Remedios indica o uso de remédios para dormir (passo 7).
type Remedios string

const (
	RemediosFrequente         Remedios = "frequente"
	RemediosTenteiNaoResolveu Remedios = "tentei_nao_resolveu"
	RemediosPensei            Remedios = "pensei"
	RemediosNunca             Remedios = "nunca"
)

// Ansiedade indica a frequência de ansiedade (passo 8).
type Ansiedade string

const (
	AnsiedadeSempre    Ansiedade = "sempre"
	AnsiedadeMuitas    Ansiedade = "muitas"
	AnsiedadeRaramente Ansiedade = "raramente"
	AnsiedadeNunca     Ansiedade = "nunca"
)

// Conhecimento sobre higiene do sono (passo 13).
type Conhecimento string

const (
	ConhecimentoNada   Conhecimento = "nada"
	ConhecimentoPouco  Conhecimento = "pouco"
	ConhecimentoTentei Conhecimento = "tentei"
)

// Direcionamento é a preferência de solução (passo 14).
type Direcionamento string

const (
	DirecionamentoProfundo         Direcionamento = "profundo"
	DirecionamentoRapidoSemRemedio Direcionamento = "rapido_sem_remedio"
	DirecionamentoEnergia          Direcionamento = "energia"
	DirecionamentoReduzirAnsiedade Direcionamento = "reduzir_ansiedade"
)

// MicroCompromisso é a disposição para mudar hábitos (passo 16).
type MicroCompromisso string

const (
	MicroDecidido     MicroCompromisso = "decidido"
	MicroMudarHabitos MicroCompromisso = "mudar_habitos"
	MicroMedoFalhar   MicroCompromisso = "medo_falhar"
)

// Flags são as decisões de ramificação derivadas das respostas.
// São irreversíveis dentro da sessão: uma vez true, permanecem true.
// Nenhum setter do Store limpa uma flag já levantada.
type Flags struct {
	BranchNoProblems    bool `json:"branch_no_problems,omitempty"`
	BranchHeavyRemedios bool `json:"branch_heavy_remedios,omitempty"`
	BranchHighAnsiedade bool `json:"branch_high_ansiedade,omitempty"`
	Experienced         bool `json:"experienced,omitempty"`
	Reassurance         bool `json:"reassurance,omitempty"`
}

// Merge levanta em f as flags ativas em other. Flags nunca são rebaixadas.
func (f *Flags) Merge(other Flags) {
	f.BranchNoProblems = f.BranchNoProblems || other.BranchNoProblems
	f.BranchHeavyRemedios = f.BranchHeavyRemedios || other.BranchHeavyRemedios
	f.BranchHighAnsiedade = f.BranchHighAnsiedade || other.BranchHighAnsiedade
	f.Experienced = f.Experienced || other.Experienced
	f.Reassurance = f.Reassurance || other.Reassurance
}

// State é o estado completo de uma sessão do funil.
// Campos de resposta ficam vazios até o passo correspondente ser respondido.
type State struct {
	// Dados da sessão
	SessionID   string `json:"sessionId"`
	StartedAt   int64  `json:"startedAt"`             // epoch ms
	CompletedAt int64  `json:"completedAt,omitempty"` // definido ao alcançar o passo 18
	Step        int    `json:"step"`                  // 1..18

	// Captura de lead (passo 6)
	Nome    string `json:"nome,omitempty"`
	Email   string `json:"email,omitempty"`
	Consent bool   `json:"consent,omitempty"`

	// Respostas do quiz
	Idade          Idade            `json:"idade,omitempty"`
	Diagnostico    Diagnostico      `json:"diagnostico,omitempty"`
	Horas          Horas            `json:"horas,omitempty"`
	Remedios       Remedios         `json:"remedios,omitempty"`
	Ansiedade      Ansiedade        `json:"ansiedade,omitempty"`
	Impactos       []string         `json:"impactos,omitempty"`
	Consequencias  []string         `json:"consequencias,omitempty"`
	Desejos        []string         `json:"desejos,omitempty"`
	Conhecimento   Conhecimento     `json:"conhecimento,omitempty"`
	Direcionamento Direcionamento   `json:"direcionamento,omitempty"`
	Micro          MicroCompromisso `json:"micro,omitempty"`

	// Flags de ramificação
	Flags Flags `json:"flags"`
}

// NewState cria um estado novo no passo 1 com sessão gerada.
func NewState(now time.Time) *State {
	return &State{
		SessionID: uuid.NewString(),
		StartedAt: now.UnixMilli(),
		Step:      PrimeiroPasso,
	}
}

// Snapshot retorna uma cópia do estado, com slices clonados.
// Observadores nunca recebem referência viva ao estado do Store.
func (s *State) Snapshot() State {
	cp := *s
	cp.Impactos = cloneStrings(s.Impactos)
	cp.Consequencias = cloneStrings(s.Consequencias)
	cp.Desejos = cloneStrings(s.Desejos)
	return cp
}

// IsStructurallyValid verifica se um estado restaurado da persistência
// tem a forma mínima para retomar a sessão.
func (s *State) IsStructurallyValid() bool {
	return s.SessionID != "" && s.StartedAt > 0 &&
		s.Step >= PrimeiroPasso && s.Step <= UltimoPasso
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
