package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
)

// UserIDKey: ключ контекста Gin с uuid пользователя
const UserIDKey = "user_id"

// TokenParser проверяет токен и возвращает uuid пользователя
type TokenParser interface {
	ParseToken(tokenString string) (uuid.UUID, error)
}

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	parser     TokenParser
	cookieName string
}

// NewAuthMiddleware создает middleware. cookieName: cookie с токеном, если нет заголовка Authorization.
func NewAuthMiddleware(parser TokenParser, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{parser: parser, cookieName: cookieName}
}

// RequireAuth проверяет токен и кладёт uuid пользователя в контекст
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		// Заголовок имеет приоритет над cookie
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
				return
			}
			token = parts[1]
		} else if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
			token = cookie
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
			return
		}

		userID, err := m.parser.ParseToken(token)
		if err != nil {
			errorType := "token_invalid"
			if errors.Is(err, apperrors.ErrExpiredToken) {
				errorType = "token_expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": errorType})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext возвращает uuid пользователя, установленный RequireAuth
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
