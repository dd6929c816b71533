package access

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// TTL do magic link. Depois disso o token é inválido e removível.
const MagicTokenTTL = 24 * time.Hour

var (
	ErrTokenNaoEncontrado = errors.New("token não encontrado")
	ErrTokenJaUsado       = errors.New("token já foi usado")
	ErrTokenExpirado      = errors.New("token expirado")
)

// MagicToken é um token de acesso de uso único enviado por email.
// Apenas o hash SHA-256 é persistido; o valor em claro existe somente
// na URL enviada ao comprador.
type MagicToken struct {
	TokenHash string    `json:"-"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerateToken gera 32 bytes aleatórios em hex.
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken calcula o hash SHA-256 do token para armazenamento.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewMagicToken cria o registro persistível de um token recém-gerado.
func NewMagicToken(token, userID, email string, now time.Time) *MagicToken {
	return &MagicToken{
		TokenHash: HashToken(token),
		UserID:    userID,
		Email:     email,
		ExpiresAt: now.Add(MagicTokenTTL),
		CreatedAt: now,
	}
}

// Validate verifica se o token pode ser consumido agora.
func (t *MagicToken) Validate(now time.Time) error {
	if t.Used {
		return ErrTokenJaUsado
	}
	if now.After(t.ExpiresAt) {
		return ErrTokenExpirado
	}
	return nil
}
