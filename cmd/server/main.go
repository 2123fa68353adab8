package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pizza-order-service/internal/config"
	"github.com/iliyamo/pizza-order-service/internal/database"
	"github.com/iliyamo/pizza-order-service/internal/handler"
	"github.com/iliyamo/pizza-order-service/internal/middleware"
	"github.com/iliyamo/pizza-order-service/internal/repository"
	"github.com/iliyamo/pizza-order-service/internal/router"
	"github.com/iliyamo/pizza-order-service/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if db == nil {
		log.Fatalf("invalid database configuration: %v", err)
	}
	if err != nil {
		// Degraded start: requests will surface internal errors until
		// the database comes back, but the process stays up.
		log.Printf("database unreachable, starting degraded: %v", err)
	} else if err := database.Bootstrap(context.Background(), db, cfg); err != nil {
		log.Printf("database bootstrap failed, starting degraded: %v", err)
	}

	rdb := config.NewRedisClient() // nil disables caching and rate limiting
	if rdb == nil {
		log.Printf("redis unavailable, caching and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	franchises := repository.NewFranchiseRepo(db)
	orders := repository.NewOrderRepo(db, cfg.ListPerPage)
	factory := service.NewFactoryClient(cfg.FactoryURL, cfg.FactoryAPIKey)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(rlCfg, rdb))

	router.RegisterRoutes(e, cfg)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, sessions), cfg.JWTSecret, sessions)
	router.RegisterFranchise(e, handler.NewFranchiseHandler(franchises), cfg.JWTSecret, sessions, cacheCfg, rdb)
	router.RegisterOrder(e, handler.NewOrderHandler(orders, factory), cfg.JWTSecret, sessions, cacheCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
