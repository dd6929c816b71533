package lead

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

func validArgs() (string, string, string, bool, int64, int64) {
	started := time.Now().Add(-5 * time.Minute).UnixMilli()
	return uuid.NewString(), "Maria Silva", "maria@example.com", true, started, time.Now().UnixMilli()
}

func TestNew_LeadValido(t *testing.T) {
	sessionID, nome, email, consent, started, completed := validArgs()

	l, err := New(sessionID, nome, email, consent, started, completed)
	require.NoError(t, err)

	assert.Equal(t, sessionID, l.SessionID)
	assert.Equal(t, "Maria Silva", l.Nome)
	assert.Equal(t, "maria@example.com", l.Email)
	assert.True(t, l.Consent)
	assert.Equal(t, started, l.StartedAt)
	assert.Equal(t, completed, l.CompletedAt)
	assert.False(t, l.CreatedAt.IsZero())
}

func TestNew_NormalizaNome(t *testing.T) {
	sessionID, _, email, consent, started, completed := validArgs()

	l, err := New(sessionID, "  João  ", email, consent, started, completed)
	require.NoError(t, err)
	assert.Equal(t, "João", l.Nome)
}

func TestNew_Validacoes(t *testing.T) {
	sessionID, nome, email, _, started, completed := validArgs()

	tests := []struct {
		name      string
		sessionID string
		nome      string
		email     string
		consent   bool
		completed int64
		wantErr   error
	}{
		{"sessionId vazio", "", nome, email, true, completed, ErrSessionIDObrigatorio},
		{"sessionId não UUID", "abc-123", nome, email, true, completed, ErrSessionIDObrigatorio},
		{"sessionId UUID v1", "c232ab00-9414-11ec-b3c8-9f6bdeced846", nome, email, true, completed, ErrSessionIDObrigatorio},
		{"nome curto", sessionID, "A", email, true, completed, ErrNomeCurto},
		{"nome só espaços", sessionID, "   ", email, true, completed, ErrNomeCurto},
		{"email inválido", sessionID, nome, "nao-é-email", true, completed, ErrEmailInvalido},
		{"sem consentimento", sessionID, nome, email, false, completed, ErrConsentObrigatorio},
		{"sem completedAt", sessionID, nome, email, true, 0, ErrCompletedAtAusente},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sessionID, tt.nome, tt.email, tt.consent, started, tt.completed)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAnswersFromState(t *testing.T) {
	s := quiz.NewState(time.Now())
	s.Idade = quiz.Idade29a38
	s.Remedios = quiz.RemediosFrequente
	s.Impactos = []string{"memoria", "humor"}
	s.Direcionamento = quiz.DirecionamentoEnergia

	a := AnswersFromState(*s)
	assert.Equal(t, "29-38", a.Idade)
	assert.Equal(t, "frequente", a.Remedios)
	assert.Equal(t, []string{"memoria", "humor"}, a.Impactos)
	assert.Equal(t, "energia", a.Direcionamento)
	assert.Empty(t, a.Horas)
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"teste@example.com", "t***@example.com"},
		{"ab@example.com", "a*@example.com"},
		{"a@example.com", "a@example.com"},
		{"sem-arroba", "sem-arroba"},
		{"muitolongo@example.com", "m***@example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskEmail(tt.in), tt.in)
	}
}
