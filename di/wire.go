//go:build wireinject
// +build wireinject

package di

import (
	"hoodly/config"
	"hoodly/infras/jwt"
	"hoodly/infras/kafka"
	"hoodly/infras/otel"
	"hoodly/infras/postgres"
	"hoodly/infras/redis"
	"hoodly/infras/s3"
	"hoodly/permissions"
	"hoodly/shared/cache"
	"hoodly/transport/http"
	"hoodly/transport/http/middleware"
	"hoodly/transport/http/router"

	"github.com/google/wire"

	"hoodly/internal/domains/activity/event"
	activityRepository "hoodly/internal/domains/activity/repository"
	activityService "hoodly/internal/domains/activity/service"
	bookingRepository "hoodly/internal/domains/booking/repository"
	bookingService "hoodly/internal/domains/booking/service"
	businessRepository "hoodly/internal/domains/business/repository"
	businessService "hoodly/internal/domains/business/service"
	inquiryRepository "hoodly/internal/domains/inquiry/repository"
	inquiryService "hoodly/internal/domains/inquiry/service"
	reviewRepository "hoodly/internal/domains/review/repository"
	reviewService "hoodly/internal/domains/review/service"

	activityHandler "hoodly/internal/handlers/activity"
	bookingHandler "hoodly/internal/handlers/booking"
	businessHandler "hoodly/internal/handlers/business"
	inquiryHandler "hoodly/internal/handlers/inquiry"
	reviewHandler "hoodly/internal/handlers/review"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
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

var businessDomain = wire.NewSet(
	businessRepository.New,
	businessRepository.NewPayout,
	businessRepository.NewCatalog,
	businessService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var inquiryDomain = wire.NewSet(
	inquiryRepository.New,
	inquiryService.New,
)

var activityDomain = wire.NewSet(
	activityRepository.New,
	activityService.New,
	event.NewRecorder,
)

var domains = wire.NewSet(
	businessDomain,
	bookingDomain,
	reviewDomain,
	inquiryDomain,
	activityDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	businessHandler.New,
	bookingHandler.New,
	reviewHandler.New,
	inquiryHandler.New,
	activityHandler.New,
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
