package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tonyspizza/config"
	"tonyspizza/infras/otel/mocks"
	authMocks "tonyspizza/internal/domains/auth/service/mocks"
	bookingMocks "tonyspizza/internal/domains/booking/service/mocks"
	tableMocks "tonyspizza/internal/domains/table/service/mocks"
	"tonyspizza/internal/handlers/auth"
	"tonyspizza/internal/handlers/booking"
	"tonyspizza/internal/handlers/index"
	"tonyspizza/internal/handlers/table"
	"tonyspizza/shared/cache"
	cacheMocks "tonyspizza/shared/cache/mocks"
	"tonyspizza/transport/http/middleware"
	"tonyspizza/transport/http/render"
	"tonyspizza/transport/http/router"
)

func newServer(t *testing.T) *HTTP {
	t.Helper()

	return newServerWith(t, &config.Config{}, nil)
}

func newServerWith(t *testing.T, cfg *config.Config, redisCache cache.RedisCache) *HTTP {
	t.Helper()

	ctrl := gomock.NewController(t)
	otel := mocks.NewOtel()
	renderer := render.New(cfg)

	authSvc := authMocks.NewMockAuth(ctrl)
	tableSvc := tableMocks.NewMockTable(ctrl)
	bookingSvc := bookingMocks.NewMockBooking(ctrl)

	r := router.New(
		router.DomainHandlers{
			Index:   index.New(renderer),
			Table:   table.New(tableSvc, renderer, otel),
			Auth:    auth.New(authSvc, renderer, cfg, otel),
			Booking: booking.New(bookingSvc, tableSvc, renderer, otel),
		},
		middleware.NewAppMiddleware(otel, cfg, redisCache),
		middleware.NewAuthMiddleware(authSvc, otel, cfg, renderer),
		renderer,
	)

	return New(cfg, r)
}

func get(h *HTTP, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHTTP_Health(t *testing.T) {
	h := newServer(t)

	rec := get(h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OK")
	assert.Equal(t, ServerStateReady, h.State())

	h.setState(ServerStateInGracePeriod)
	rec = get(h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVER PREPARING TO SHUT DOWN")

	h.setState(ServerStateInCleanupPeriod)
	rec = get(h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVER UNHEALTHY")
}

func TestHTTP_Routing(t *testing.T) {
	h := newServer(t)

	t.Run("home page is public", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(h, "/").Code)
	})

	t.Run("bookings need a login", func(t *testing.T) {
		rec := get(h, "/bookings/create/")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/accounts/login/?next=%2Fbookings%2Fcreate%2F", rec.Header().Get("Location"))
	})

	t.Run("unknown pages render not found", func(t *testing.T) {
		rec := get(h, "/menu/")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "<html")
	})
}

func TestHTTP_ClientAddress(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		wantKey    string
	}{
		{
			name:    "peer address without a trusted proxy",
			wantKey: "limiter:10.0.0.1:unknown",
		},
		{
			name:       "forwarded address behind a trusted proxy",
			trustProxy: true,
			wantKey:    "limiter:203.0.113.7:unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.TrustProxy = tt.trustProxy
			cfg.App.RateLimiter.Enable = true
			cfg.App.RateLimiter.MaxRequests = 5
			cfg.App.RateLimiter.WindowSeconds = 60

			redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
			redisCache.EXPECT().Get(gomock.Any(), tt.wantKey, gomock.Any()).Return(cache.Nil)
			redisCache.EXPECT().Save(gomock.Any(), tt.wantKey, 1, 60).Return(nil)

			h := newServerWith(t, cfg, redisCache)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:52114"
			req.Header.Set("X-Forwarded-For", "203.0.113.7")

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
