package lead

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

var (
	ErrSessionIDObrigatorio = errors.New("o sessionId é obrigatório e deve ser um UUID v4")
	ErrNomeCurto            = errors.New("o nome deve ter pelo menos 2 caracteres")
	ErrEmailInvalido        = errors.New("o email é inválido")
	ErrConsentObrigatorio   = errors.New("o consentimento é obrigatório")
	ErrCompletedAtAusente   = errors.New("o completedAt é obrigatório")
)

// Answers é o recorte de respostas enviado junto com o lead.
type Answers struct {
	Idade          string   `json:"idade,omitempty"`
	Diagnostico    string   `json:"diagnostico,omitempty"`
	Horas          string   `json:"horas,omitempty"`
	Remedios       string   `json:"remedios,omitempty"`
	Ansiedade      string   `json:"ansiedade,omitempty"`
	Impactos       []string `json:"impactos,omitempty"`
	Consequencias  []string `json:"consequencias,omitempty"`
	Desejos        []string `json:"desejos,omitempty"`
	Conhecimento   string   `json:"conhecimento,omitempty"`
	Direcionamento string   `json:"direcionamento,omitempty"`
	Micro          string   `json:"micro,omitempty"`
}

// Meta carrega a origem e a variante A/B da captura.
type Meta struct {
	Variant   string            `json:"variant,omitempty"`
	Source    string            `json:"source,omitempty"`
	IssuedAt  int64             `json:"issuedAt,omitempty"`
	UTMParams map[string]string `json:"utmParams,omitempty"`
}

// Lead é o registro de captura enviado ao deixar o passo 6 do funil.
type Lead struct {
	SessionID   string     `json:"sessionId"`
	Nome        string     `json:"nome"`
	Email       string     `json:"email"`
	Consent     bool       `json:"consent"`
	Answers     Answers    `json:"answers"`
	Flags       quiz.Flags `json:"flags"`
	Meta        Meta       `json:"meta"`
	StartedAt   int64      `json:"startedAt"`
	CompletedAt int64      `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// New valida e constrói um Lead a partir do payload de captura.
func New(sessionID, nome, email string, consent bool, startedAt, completedAt int64) (*Lead, error) {
	if sessionID == "" || !isUUIDv4(sessionID) {
		return nil, ErrSessionIDObrigatorio
	}
	if len(strings.TrimSpace(nome)) < quiz.MinNomeLength {
		return nil, ErrNomeCurto
	}
	if !quiz.IsEmailValid(email) {
		return nil, ErrEmailInvalido
	}
	if !consent {
		return nil, ErrConsentObrigatorio
	}
	if completedAt == 0 {
		return nil, ErrCompletedAtAusente
	}

	return &Lead{
		SessionID:   sessionID,
		Nome:        strings.TrimSpace(nome),
		Email:       email,
		Consent:     true,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		CreatedAt:   time.Now(),
	}, nil
}

// AnswersFromState monta o recorte de respostas a partir do estado do quiz.
func AnswersFromState(s quiz.State) Answers {
	return Answers{
		Idade:          string(s.Idade),
		Diagnostico:    string(s.Diagnostico),
		Horas:          string(s.Horas),
		Remedios:       string(s.Remedios),
		Ansiedade:      string(s.Ansiedade),
		Impactos:       s.Impactos,
		Consequencias:  s.Consequencias,
		Desejos:        s.Desejos,
		Conhecimento:   string(s.Conhecimento),
		Direcionamento: string(s.Direcionamento),
		Micro:          string(s.Micro),
	}
}

// MaskEmail mascara o email para logs (ex: t***@example.com).
func MaskEmail(email string) string {
	user, domain, ok := strings.Cut(email, "@")
	if !ok || len(user) <= 1 {
		return email
	}
	stars := len(user) - 1
	if stars > 3 {
		stars = 3
	}
	return user[:1] + strings.Repeat("*", stars) + "@" + domain
}

func isUUIDv4(v string) bool {
	id, err := uuid.Parse(v)
	if err != nil {
		return false
	}
	return id.Version() == 4
}
