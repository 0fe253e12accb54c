package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tonyspizza/config"
	"tonyspizza/infras/otel/mocks"
	"tonyspizza/shared/cache"
	cacheMocks "tonyspizza/shared/cache/mocks"
	"tonyspizza/transport/http/middleware"
)

func ok() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func limiterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestAppMiddleware_RateLimit(t *testing.T) {
	const key = "limiter:10.0.0.1:unknown"

	tests := []struct {
		name          string
		setupMock     func(c *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name: "first request opens a window",
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil)
				c.EXPECT().Save(gomock.Any(), key, 1, 60).Return(nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "1",
		},
		{
			name: "over the limit",
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), key, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 2

						return nil
					})
			},
			wantCode: http.StatusTooManyRequests,
		},
		{
			name: "redis failure lets the request through",
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(errors.New("redis down"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(redisCache)

			mw := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), redisCache)

			req := httptest.NewRequest(http.MethodGet, "/tables/", nil)
			req.RemoteAddr = "10.0.0.1:52114"

			rec := httptest.NewRecorder()
			mw.RateLimit()(ok()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestAppMiddleware_RateLimitIgnoresForwardingHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	mw := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), redisCache)

	const key = "limiter:10.0.0.1:unknown"

	redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil).Times(3)
	redisCache.EXPECT().Save(gomock.Any(), key, 1, 60).Return(nil).Times(3)

	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2, 10.0.0.1", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodGet, "/tables/", nil)
		req.RemoteAddr = "10.0.0.1:52114"
		req.Header.Set("X-Forwarded-For", spoofed)
		req.Header.Set("X-Real-IP", spoofed)

		rec := httptest.NewRecorder()
		mw.RateLimit()(ok()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestAppMiddleware_RateLimitDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mw := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl))

	rec := httptest.NewRecorder()
	mw.RateLimit()(ok()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAppMiddleware_CORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://tonyspizza.example"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet}

	mw := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/tables/", nil)
	req.Header.Set("Origin", "https://tonyspizza.example")

	rec := httptest.NewRecorder()
	mw.CORS()(ok()).ServeHTTP(rec, req)

	assert.Equal(t, "https://tonyspizza.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAppMiddleware_TracingAndAccessLogKeepStatus(t *testing.T) {
	mw := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil)
	teapot := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	mw.Tracing(mw.AccessLog(teapot)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
