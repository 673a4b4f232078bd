package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/marathi-api/internal/domain/repository"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests: максимальное количество запросов за Window
	MaxRequests int
	// Window: временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix: префикс для ключей в Redis
	KeyPrefix string
}

// DefaultAnswerRateLimitConfig возвращает конфигурацию по умолчанию для отправки ответов
func DefaultAnswerRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 120,
		Window:      1 * time.Minute,
		KeyPrefix:   "rl:answers",
	}
}

// RateLimiter ограничивает частоту запросов с фиксированным окном в Redis
type RateLimiter struct {
	cache repository.CacheRepository
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(cache repository.CacheRepository) *RateLimiter {
	return &RateLimiter{cache: cache}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из uuid пользователя (или IP для анонимных запросов) и шаблона маршрута.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.ClientIP()
		if userID, ok := UserIDFromContext(c); ok {
			subject = userID.String()
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, subject, path)

		count, err := rl.cache.Increment(key)
		if err != nil {
			// При ошибке Redis пропускаем запрос (fail-open), но логируем
			log.Printf("[RateLimiter] Redis error for key %s: %v. Allowing request (fail-open).", key, err)
			c.Next()
			return
		}

		// Первый запрос в окне устанавливает TTL
		if count == 1 {
			if err := rl.cache.Expire(key, cfg.Window); err != nil {
				log.Printf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
			}
		}

		remaining := max(cfg.MaxRequests-int(count), 0)
		retryAfter := int(cfg.Window.Seconds())

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > cfg.MaxRequests {
			log.Printf("[RateLimiter] Rate limit exceeded for %s path=%s. Count=%d, Limit=%d",
				subject, path, count, cfg.MaxRequests)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"error_type":  "rate_limited",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
