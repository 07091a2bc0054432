package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"roompla/internal/auth"
	"roompla/internal/config"
	"roompla/internal/database"
	"roompla/internal/directory"
	"roompla/internal/handler"
	"roompla/internal/queue"
	"roompla/internal/repository"
	"roompla/internal/router"
	"roompla/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	occupancies := repository.NewOccupancyRepo(db)

	// The directory is optional; without LDAP_URL only locally configured
	// users can log in.
	var dir auth.Directory
	if cfg.LDAPURL != "" {
		dir = directory.NewLDAP(cfg.LDAPURL, cfg.LDAPOrg, cfg.LDAPFilter)
	}
	authenticator := auth.NewAuthenticator(users, dir, cfg.JWTSecret, cfg.TokenTTLMin)

	occupancyService := service.NewOccupancyService(occupancies)

	authHandler := handler.NewAuthHandler(authenticator)
	occHandler := handler.NewOccupancyHandler(occupancyService)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, login rate limiting disabled")
	}

	// Record committed bookings from the broker in the background.
	go queue.StartBookedConsumer()

	e := echo.New()
	router.RegisterRoutes(e, authHandler, occHandler, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
