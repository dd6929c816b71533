package access

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

// ProgramaDesafio7Dias é o programa liberado após a compra.
const ProgramaDesafio7Dias = "desafio_7_dias"

var (
	ErrEmailInvalido = errors.New("o email é inválido")
	ErrNomeVazio     = errors.New("o nome é obrigatório")
)

// User é um comprador com acesso à área de membros.
// O acesso é por magic link: não há senha.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nome      string    `json:"nome"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser cria uma nova instância de User com validações.
func NewUser(email, nome string) (*User, error) {
	if !quiz.IsEmailValid(email) {
		return nil, ErrEmailInvalido
	}
	if nome == "" {
		return nil, ErrNomeVazio
	}

	now := time.Now()
	return &User{
		ID:        uuid.NewString(),
		Email:     email,
		Nome:      nome,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Enrollment vincula um usuário a um programa comprado.
type Enrollment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Program   string    `json:"program"`
	SessionID string    `json:"sessionId"` // sessão do funil que originou a compra
	PaymentID string    `json:"paymentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEnrollment cria a matrícula de um usuário em um programa.
func NewEnrollment(userID, program, sessionID, paymentID string) *Enrollment {
	return &Enrollment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Program:   program,
		SessionID: sessionID,
		PaymentID: paymentID,
		CreatedAt: time.Now(),
	}
}
