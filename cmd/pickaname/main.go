package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"pickaname/internal/api"
	"pickaname/internal/config"
	"pickaname/internal/db"
	"pickaname/internal/services"
)

func main() {
	cfg := config.Load()
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("database init failed")
	}

	handler := api.NewHandler(database, log, cfg.CookieSecure, cfg.CookieDomain)

	app := fiber.New(fiber.Config{
		AppName:               "Pick-A-Name",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api.RegisterRoutes(app, handler)

	janitor := services.NewJanitor(database, log, cfg.JanitorInterval)
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	janitor.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
