//go:build wireinject
// +build wireinject

package di

import (
	"heritage/config"
	"heritage/infras/jwt"
	"heritage/infras/otel"
	"heritage/infras/redis"
	"heritage/infras/s3"
	"heritage/shared/cache"
	"heritage/transport/http"
	"heritage/transport/http/middleware"
	"heritage/transport/http/router"

	bookingRepository "heritage/internal/domains/booking/repository"
	bookingService "heritage/internal/domains/booking/service"
	gateService "heritage/internal/domains/gate/service"
	inventoryService "heritage/internal/domains/inventory/service"
	refdataService "heritage/internal/domains/refdata/service"

	availabilityHandler "heritage/internal/handlers/availability"
	bookingHandler "heritage/internal/handlers/booking"
	gateHandler "heritage/internal/handlers/gate"
	refdataHandler "heritage/internal/handlers/refdata"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewGateMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var inventoryDomain = wire.NewSet(
	inventoryService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.NewBookings,
	bookingRepository.NewRoomLines,
	bookingRepository.NewAdvances,
	bookingService.New,
)

var refdataDomain = wire.NewSet(
	refdataService.New,
)

var gateDomain = wire.NewSet(
	gateService.New,
)

var domains = wire.NewSet(
	inventoryDomain,
	bookingDomain,
	refdataDomain,
	gateDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	bookingHandler.New,
	refdataHandler.New,
	gateHandler.New,
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
