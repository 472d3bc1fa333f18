package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gowarehouse/internal/pkg/cache"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/middleware"
	"gowarehouse/internal/pkg/token"
)

// MockCacheClient é uma implementação mock de cache.Client.
type MockCacheClient struct {
	mock.Mock
}

func (m *MockCacheClient) GetInt(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheClient) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheClient) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := token.NewService("segredo", time.Hour)
	tok, err := svc.GenerateToken("neo")
	require.NoError(t, err)

	var seen string
	handler := middleware.NewAuthMiddleware(svc)(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetPlayerClaimsFromContext(r.Context())
		require.True(t, ok)
		seen = claims.Nickname
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/warehouses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "neo", seen)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	svc := token.NewService("segredo", time.Hour)
	handler := middleware.NewAuthMiddleware(svc)(okHandler)

	for name, header := range map[string]string{
		"ausente":    "",
		"sem bearer": "Token abc",
		"inválido":   "Bearer abc.def.ghi",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/warehouses", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestRateLimiter_FirstRequestStartsCounter(t *testing.T) {
	client := new(MockCacheClient)
	client.On("GetInt", mock.Anything, "rate-limit:10.0.0.1").Return(0, cache.ErrCacheMiss)
	client.On("Set", mock.Anything, "rate-limit:10.0.0.1", 1, time.Minute).Return(nil)

	h := middleware.RateLimiter(client, 3, time.Minute, logger.NewNop())(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Remaining"))
	client.AssertExpectations(t)
}

func TestRateLimiter_BlocksAtLimit(t *testing.T) {
	client := new(MockCacheClient)
	client.On("GetInt", mock.Anything, "rate-limit:10.0.0.1").Return(3, nil)

	h := middleware.RateLimiter(client, 3, time.Minute, logger.NewNop())(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	client.AssertNotCalled(t, "Incr", mock.Anything, mock.Anything)
}

func TestRateLimiter_IncrementsBelowLimit(t *testing.T) {
	client := new(MockCacheClient)
	client.On("GetInt", mock.Anything, "rate-limit:10.0.0.1").Return(1, nil)
	client.On("Incr", mock.Anything, "rate-limit:10.0.0.1").Return(int64(2), nil)

	h := middleware.RateLimiter(client, 3, time.Minute, logger.NewNop())(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	client.AssertExpectations(t)
}

func TestRateLimiter_FailsOpenOnCacheError(t *testing.T) {
	client := new(MockCacheClient)
	client.On("GetInt", mock.Anything, mock.Anything).Return(0, errors.New("redis down"))

	h := middleware.RateLimiter(client, 3, time.Minute, logger.NewNop())(http.HandlerFunc(okHandler))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
