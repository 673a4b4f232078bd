package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/marathi-api/internal/domain/entity"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) ParseToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Delete(key string) error {
	return m.Called(key).Error(0)
}

func (m *MockCache) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) SetJSON(key string, value interface{}, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *MockCache) GetJSON(key string, dest interface{}) error {
	return m.Called(key, dest).Error(0)
}

func (m *MockCache) Expire(key string, expiration time.Duration) error {
	return m.Called(key, expiration).Error(0)
}

func newAuthRouter(parser TokenParser) *gin.Engine {
	r := gin.New()
	r.GET("/me", NewAuthMiddleware(parser, "auth-token").RequireAuth(), func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID.String())
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		setup      func(req *http.Request)
		parse      func(p *MockTokenParser)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "Bearer токен",
			setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") },
			parse: func(p *MockTokenParser) {
				p.On("ParseToken", "good").Return(userID, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   userID.String(),
		},
		{
			name:  "Токен из cookie",
			setup: func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "auth-token", Value: "from-cookie"}) },
			parse: func(p *MockTokenParser) {
				p.On("ParseToken", "from-cookie").Return(userID, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   userID.String(),
		},
		{
			name:       "Нет токена",
			setup:      func(req *http.Request) {},
			parse:      func(p *MockTokenParser) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "token_missing",
		},
		{
			name:       "Неверный формат заголовка",
			setup:      func(req *http.Request) { req.Header.Set("Authorization", "Token abc") },
			parse:      func(p *MockTokenParser) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "token_format",
		},
		{
			name:  "Истекший токен",
			setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer old") },
			parse: func(p *MockTokenParser) {
				p.On("ParseToken", "old").Return(uuid.Nil, apperrors.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "token_expired",
		},
		{
			name:  "Неверный токен",
			setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer bad") },
			parse: func(p *MockTokenParser) {
				p.On("ParseToken", "bad").Return(uuid.Nil, apperrors.ErrUnauthorized)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "token_invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(MockTokenParser)
			tt.parse(parser)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			newAuthRouter(parser).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			parser.AssertExpectations(t)
		})
	}
}

func TestExtractModuleParam(t *testing.T) {
	r := gin.New()
	r.GET("/exercises/:module", ExtractModuleParam("module"), func(c *gin.Context) {
		module, ok := ModuleFromContext(c)
		assert.True(t, ok)
		c.String(http.StatusOK, string(module))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exercises/latin-to-marathi", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(entity.ModuleLatinToMarathi), w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exercises/klingon", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_module")
}

func newLimitedRouter(cache *MockCache, cfg RateLimitConfig) *gin.Engine {
	r := gin.New()
	r.POST("/answers", NewRateLimiter(cache).Limit(cfg), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRateLimiter_Limit(t *testing.T) {
	cfg := RateLimitConfig{MaxRequests: 2, Window: time.Minute, KeyPrefix: "rl:test"}

	tests := []struct {
		name       string
		count      int64
		incrErr    error
		wantStatus int
	}{
		{name: "Первый запрос ставит TTL", count: 1, wantStatus: http.StatusNoContent},
		{name: "В пределах лимита", count: 2, wantStatus: http.StatusNoContent},
		{name: "Превышение лимита", count: 3, wantStatus: http.StatusTooManyRequests},
		{name: "Redis недоступен", incrErr: errors.New("dial tcp: refused"), wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := new(MockCache)
			cache.On("Increment", mock.MatchedBy(func(key string) bool {
				return len(key) > len("rl:test:")
			})).Return(tt.count, tt.incrErr)
			if tt.count == 1 {
				cache.On("Expire", mock.Anything, time.Minute).Return(nil)
			}

			w := httptest.NewRecorder()
			newLimitedRouter(cache, cfg).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/answers", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			cache.AssertExpectations(t)
			if tt.wantStatus == http.StatusTooManyRequests {
				assert.Equal(t, "60", w.Header().Get("Retry-After"))
				assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
			}
		})
	}
}

func TestRateLimiter_KeyByUser(t *testing.T) {
	userID := uuid.New()
	cache := new(MockCache)
	cache.On("Increment", "rl:answers:"+userID.String()+":/answers").Return(int64(5), nil)

	r := gin.New()
	r.POST("/answers", func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		c.Next()
	}, NewRateLimiter(cache).Limit(DefaultAnswerRateLimitConfig()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/answers", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "115", w.Header().Get("X-RateLimit-Remaining"))
	cache.AssertExpectations(t)
}
