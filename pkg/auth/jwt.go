package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
)

// minSecretLength: минимальная длина HMAC-секрета
const minSecretLength = 16

// JWTService проверяет токены, выпущенные сервисом авторизации.
// Subject токена: uuid пользователя.
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWTService создает сервис JWT. issuer может быть пустым, тогда издатель не проверяется.
func NewJWTService(secret, issuer string) (*JWTService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}
	return &JWTService{secret: []byte(secret), issuer: issuer}, nil
}

// GenerateToken выпускает токен для пользователя. Используется в тестах и инструментах разработки.
func (s *JWTService) GenerateToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken проверяет токен и возвращает uuid пользователя.
// Истекший токен: apperrors.ErrExpiredToken, любой другой сбой, apperrors.ErrUnauthorized.
func (s *JWTService) ParseToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				log.Printf("[JWT] Ошибка: Токен имеет неверный формат")
				return uuid.Nil, fmt.Errorf("%w: token is malformed", apperrors.ErrUnauthorized)
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				log.Printf("[JWT] Ошибка: Токен истек для пользователя %s", claims.Subject)
				return uuid.Nil, apperrors.ErrExpiredToken
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				log.Printf("[JWT] Ошибка: Неверная подпись токена")
				return uuid.Nil, fmt.Errorf("%w: signature is invalid", apperrors.ErrUnauthorized)
			}
		}
		log.Printf("[JWT] Ошибка при разборе токена: %v", err)
		return uuid.Nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return uuid.Nil, fmt.Errorf("%w: unexpected issuer %q", apperrors.ErrUnauthorized, claims.Issuer)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", apperrors.ErrUnauthorized)
	}

	return userID, nil
}
