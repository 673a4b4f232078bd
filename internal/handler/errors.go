package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/middleware"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
	"github.com/yourusername/marathi-api/internal/service"
)

// handleError переводит ошибку сервиса в HTTP ответ
func handleError(c *gin.Context, component string, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseCreationFailed):
		log.Printf("[%s] Не удалось собрать упражнение: %v", component, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Couldn't load exercise", "error_type": "exercise_unavailable"})
	case errors.Is(err, alphabet.ErrLetterNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "unknown_letter"})
	case errors.Is(err, alphabet.ErrInsufficientCatalog):
		log.Printf("[%s] Недостаточно букв в каталоге: %v", component, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "insufficient_catalog"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "validation"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID достаёт uuid пользователя, установленный middleware авторизации.
// Если его нет, отвечает 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
