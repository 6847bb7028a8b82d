// Package main is the entry point of the payment API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobpay/internal/config"
	"jobpay/internal/logger"
	"jobpay/internal/repositories"
	"jobpay/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	config.LoadEnv()

	log, err := logger.New(config.Environment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := repositories.InitDB(log); err != nil {
		log.Fatal("failed to initialize databases", "error", err)
	}
	defer repositories.Close(log)

	if err := repositories.CacheService.HealthCheck(context.Background()); err != nil {
		// Caller lookups fall back to the database on cache errors.
		log.Warn("redis unavailable at startup", "error", err)
	}

	stopStats := make(chan struct{})
	go logPoolStats(log, stopStats)
	defer close(stopStats)

	app := fiber.New(fiber.Config{
		AppName:               "jobpay",
		DisableStartupMessage: config.IsProduction(),
		ReadTimeout:           config.GetDurationEnv("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:          config.GetDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, profile_id",
		AllowMethods: "GET,POST",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, repositories.DB, repositories.CacheService, log)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}()

	port := config.GetEnv("PORT", "3000")
	log.Info("starting server", "port", port, "env", config.Environment())
	if err := app.Listen(":" + port); err != nil {
		log.Error("server stopped", "error", err)
	}
}

func logPoolStats(log *logger.Logger, stop <-chan struct{}) {
	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Warn("pool stats disabled", "error", err)
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			stats := sqlDB.Stats()
			log.Debug("db pool stats",
				"open", stats.OpenConnections,
				"idle", stats.Idle,
				"in_use", stats.InUse,
				"wait_count", stats.WaitCount,
				"wait_duration", stats.WaitDuration.String())

			redisStats := repositories.CacheService.GetStats()
			log.Debug("redis pool stats",
				"hits", redisStats.Hits,
				"misses", redisStats.Misses,
				"timeouts", redisStats.Timeouts,
				"total_conns", redisStats.TotalConns,
				"idle_conns", redisStats.IdleConns)
		}
	}
}
