package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Duração da sessão de membro emitida ao consumir um magic link.
const sessionTTL = 7 * 24 * time.Hour

// JWTService implementa a interface TokenService.
type JWTService struct {
	secretKey []byte
	issuer    string
}

// NewJWTService cria uma nova instância de JWTService.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secretKey: []byte(secret),
		issuer:    "meditha-api",
	}
}

// GenerateToken gera o JWT de sessão da área de membros.
func (s *JWTService) GenerateToken(userID string) (string, int64, error) {
	now := time.Now()
	expirationTime := now.Add(sessionTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"iss": s.issuer,
		"exp": expirationTime.Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", 0, err
	}

	return signedToken, expirationTime.UnixMilli(), nil
}

// ValidateToken valida o token JWT e retorna o ID do usuário.
func (s *JWTService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Valida o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inválido")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("token inválido")
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("token sem ID de usuário (sub)")
	}
	return userID, nil
}
