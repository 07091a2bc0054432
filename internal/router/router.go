package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"roompla/internal/config"
	"roompla/internal/handler"
	"roompla/internal/middleware"
)

// RegisterRoutes wires all endpoints onto the Echo instance.
//
// POST /login is unauthenticated but rate limited per client IP; everything
// under /rooms requires a valid bearer token. /healthz is open for load
// balancers and monitoring.
func RegisterRoutes(e *echo.Echo, authHandler *handler.AuthHandler, occHandler *handler.OccupancyHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.GET("/healthz", handler.Health)

	e.POST("/login", authHandler.Login, middleware.NewTokenBucket(rlCfg, rdb))

	authed := e.Group("")
	authed.Use(middleware.JWTAuth(jwtSecret))
	authed.GET("/rooms", occHandler.ListRooms)
	authed.PUT("/rooms/:room/occupancies", occHandler.Create)
	authed.GET("/rooms/:room/occupancies", occHandler.List)
	authed.PUT("/rooms/:room/occupancies/:id", occHandler.Update)
	authed.DELETE("/rooms/:room/occupancies/:id", occHandler.Delete)
}
