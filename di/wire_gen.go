// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"lodge/config"
	"lodge/infras/jwt"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	"lodge/internal/domains/auth/service"
	repository4 "lodge/internal/domains/booking/repository"
	service5 "lodge/internal/domains/booking/service"
	repository2 "lodge/internal/domains/category/repository"
	service3 "lodge/internal/domains/category/service"
	repository3 "lodge/internal/domains/room/repository"
	service4 "lodge/internal/domains/room/service"
	"lodge/internal/domains/user/repository"
	service2 "lodge/internal/domains/user/service"
	"lodge/internal/handlers/auth"
	"lodge/internal/handlers/booking"
	"lodge/internal/handlers/category"
	"lodge/internal/handlers/room"
	"lodge/internal/handlers/user"
	"lodge/internal/workers"
	"lodge/permissions"
	"lodge/shared/cache"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *App {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceUser := service2.New(repositoryUser, configConfig, redisCache, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	repositoryCategory := repository2.New(connection, otelOtel)
	serviceCategory := service3.New(repositoryCategory, configConfig, redisCache, otelOtel)
	categoryHandler := category.New(serviceCategory, otelOtel)
	repositoryRoom := repository3.New(connection, otelOtel)
	serviceRoom := service4.New(repositoryRoom, repositoryCategory, configConfig, redisCache, otelOtel)
	roomHandler := room.New(serviceRoom, otelOtel)
	repositoryBooking := repository4.New(connection, otelOtel)
	publisher := kafka.New(configConfig)
	serviceBooking := service5.New(repositoryBooking, repositoryRoom, repositoryUser, configConfig, redisCache, otelOtel, publisher)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:     handler,
		User:     userHandler,
		Category: categoryHandler,
		Room:     roomHandler,
		Booking:  bookingHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, connection, appMiddleware, authRole)
	sweeper := workers.NewSweeper(serviceBooking, configConfig, otelOtel)
	app := &App{
		HTTP:    httpHTTP,
		Sweeper: sweeper,
	}
	return app
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New)

var middlewares = wire.NewSet(permissions.Get, middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var userDomain = wire.NewSet(repository.New, service2.New)

var authDomain = wire.NewSet(service.New)

var categoryDomain = wire.NewSet(repository2.New, service3.New)

var roomDomain = wire.NewSet(repository3.New, service4.New)

var bookingDomain = wire.NewSet(repository4.New, service5.New)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	categoryDomain,
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, user.New, category.New, room.New, booking.New, router.New)
