package main // Entry point package

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/duka-bookkeeping/internal/config"
	"github.com/iliyamo/duka-bookkeeping/internal/database"
	"github.com/iliyamo/duka-bookkeeping/internal/handler"
	"github.com/iliyamo/duka-bookkeeping/internal/middleware"
	"github.com/iliyamo/duka-bookkeeping/internal/queue"
	"github.com/iliyamo/duka-bookkeeping/internal/repository"
	"github.com/iliyamo/duka-bookkeeping/internal/router"
	"github.com/iliyamo/duka-bookkeeping/internal/service"
	"github.com/iliyamo/duka-bookkeeping/migrations"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	log := zerolog.New(os.Stdout).With().Timestamp().Str("role", "server").Logger()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() { _ = db.Close() }()

	if err := migrations.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	rdb := config.NewRedisClient(cfg)
	if rdb == nil {
		log.Info().Msg("redis unavailable, response cache disabled")
	}

	audit := service.NewAuditPublisher(cfg.RabbitURL, log)
	if audit == nil {
		log.Info().Msg("rabbitmq not configured, audit events disabled")
	} else {
		go queue.StartActivityConsumer(cfg.RabbitURL, log)
	}

	users := repository.NewUserRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(log))

	router.Register(e, router.Deps{
		Cfg:      cfg,
		Users:    users,
		Auth:     handler.NewAuthHandler(cfg, users),
		Outlets:  handler.NewOutletHandler(repository.NewOutletRepo(db), audit),
		Goods:    handler.NewGoodHandler(repository.NewGoodRepo(db), audit),
		Services: handler.NewServiceHandler(repository.NewServiceRepo(db), audit),
		Accounts: handler.NewAccountHandler(repository.NewAccountRepo(db), audit),
		Redis:    rdb,
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
