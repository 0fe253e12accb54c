//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	goRedis "github.com/redis/go-redis/v9"

	"tonyspizza/config"
	"tonyspizza/infras/jwt"
	"tonyspizza/infras/otel"
	"tonyspizza/infras/postgres"
	"tonyspizza/infras/redis"
	authService "tonyspizza/internal/domains/auth/service"
	bookingRepository "tonyspizza/internal/domains/booking/repository"
	bookingService "tonyspizza/internal/domains/booking/service"
	tableRepository "tonyspizza/internal/domains/table/repository"
	tableService "tonyspizza/internal/domains/table/service"
	userRepository "tonyspizza/internal/domains/user/repository"
	authHandler "tonyspizza/internal/handlers/auth"
	bookingHandler "tonyspizza/internal/handlers/booking"
	indexHandler "tonyspizza/internal/handlers/index"
	tableHandler "tonyspizza/internal/handlers/table"
	"tonyspizza/shared/cache"
	"tonyspizza/transport/http"
	"tonyspizza/transport/http/middleware"
	"tonyspizza/transport/http/render"
	"tonyspizza/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	wire.Bind(new(goRedis.UniversalClient), new(*goRedis.Client)),
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	render.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	tableDomain,
	bookingDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	indexHandler.New,
	tableHandler.New,
	authHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
