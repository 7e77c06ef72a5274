package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/koe-app/koe/internal/api"
	"github.com/koe-app/koe/internal/config"
	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/livequery"
	"github.com/koe-app/koe/internal/services"
)

func main() {
	cfg := config.Load()
	location := cfg.Location()
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	store := db.NewStore(database, livequery.NewHub())
	handler := api.NewHandler(store, location)
	if cfg.LLMBaseURL != "" {
		handler.EnableGeneration(services.NewLLMClient(cfg.LLMBaseURL, cfg.LLMTimeout))
	} else {
		log.Printf("no language endpoint configured, report and echo generation disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:               "Koe",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	prometheus := fiberprometheus.New("koe")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Koe listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
