// Package routes wires repositories, services and handlers into the fiber app.
package routes

import (
	"strconv"
	"time"

	"jobpay/internal/config"
	"jobpay/internal/handlers"
	"jobpay/internal/logger"
	"jobpay/internal/middleware"
	"jobpay/internal/repositories"
	"jobpay/internal/repositories/cache"
	"jobpay/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// SetupRoutes registers every endpoint. cacheService may be nil, in which
// case profiles are always read from the database.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheService *cache.CacheService, log *logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	var profileCache repositories.ProfileCache
	var cacheHealth handlers.CacheHealth
	if cacheService != nil {
		profileCache = cacheService
		cacheHealth = cacheService
	}

	profileRepo := repositories.NewProfileRepository(db, profileCache, log)
	jobRepo := repositories.NewJobRepository(db)
	contractRepo := repositories.NewContractRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	paymentService := payment.NewService(
		paymentRepo,
		profileRepo,
		payment.NewLoggingMetricsCollector(log),
		log,
	)

	healthHandler := handlers.NewHealthHandler(db, cacheHealth, log)
	paymentHandler := handlers.NewPaymentHandler(paymentService, jobRepo, log)
	contractHandler := handlers.NewContractHandler(contractRepo, log)
	profileMiddleware := middleware.NewProfileMiddleware(profileRepo, config.GetEnv("JWT_SECRET", ""), log)

	app.Get("/health", healthHandler.HealthCheck)

	identify := profileMiddleware.Handler

	app.Get("/contracts", identify, contractHandler.ListContracts)
	app.Get("/contracts/:id", identify, contractHandler.GetContract)
	app.Get("/jobs/unpaid", identify, paymentHandler.ListUnpaid)

	// Money-moving endpoints are rate limited per caller.
	moneyLimiter := limiter.New(limiter.Config{
		Max:        config.GetIntEnv("PAYMENT_RATE_LIMIT", 30),
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if profile, ok := middleware.CallerProfile(c); ok {
				return "profile:" + strconv.FormatUint(uint64(profile.ID), 10)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
	app.Post("/jobs/:id/pay", identify, moneyLimiter, paymentHandler.PayJob)
	app.Post("/balances/deposit/:userId", identify, moneyLimiter, paymentHandler.Deposit)
}
