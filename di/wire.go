//go:build wireinject
// +build wireinject

package di

import (
	"gooman/config"
	"gooman/infras/jwt"
	"gooman/infras/kafka"
	"gooman/infras/otel"
	"gooman/infras/postgres"
	"gooman/infras/redis"
	"gooman/infras/s3"
	"gooman/permissions"
	"gooman/shared/cache"
	"gooman/transport/http"
	"gooman/transport/http/middleware"
	"gooman/transport/http/router"

	"github.com/google/wire"

	authService "gooman/internal/domains/auth/service"
	bookingRepository "gooman/internal/domains/booking/repository"
	bookingService "gooman/internal/domains/booking/service"
	listingRepository "gooman/internal/domains/listing/repository"
	listingService "gooman/internal/domains/listing/service"
	profileRepository "gooman/internal/domains/profile/repository"
	profileService "gooman/internal/domains/profile/service"
	userRepository "gooman/internal/domains/user/repository"
	userService "gooman/internal/domains/user/service"
	authHandler "gooman/internal/handlers/auth"
	bookingHandler "gooman/internal/handlers/booking"
	listingHandler "gooman/internal/handlers/listing"
	profileHandler "gooman/internal/handlers/profile"
	userHandler "gooman/internal/handlers/user"
	bookingWorker "gooman/internal/workers/booking"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	profileRepository.New,
	authService.New,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var accountDomain = wire.NewSet(
	profileService.New,
	userService.New,
)

var domains = wire.NewSet(
	authDomain,
	listingDomain,
	bookingDomain,
	accountDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	listingHandler.New,
	bookingHandler.New,
	profileHandler.New,
	userHandler.New,
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

func InitializeWorker() *bookingWorker.Worker {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		bookingWorker.New,
	)

	return &bookingWorker.Worker{}
}
