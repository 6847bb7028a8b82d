package handlers

import (
	"context"
	"time"

	"jobpay/internal/logger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// CacheHealth is implemented by the redis cache service.
type CacheHealth interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	db    *gorm.DB
	cache CacheHealth
	log   *logger.Logger
}

func NewHealthHandler(db *gorm.DB, cache CacheHealth, log *logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &HealthHandler{db: db, cache: cache, log: log}
}

// HealthCheck handles GET /health. The database is required; redis only
// degrades the report.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	services := fiber.Map{"database": "connected", "redis": "disabled"}
	status := fiber.StatusOK

	if err := h.pingDB(ctx); err != nil {
		h.log.Error("database health check failed", "error", err)
		services["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}

	if h.cache != nil {
		services["redis"] = "connected"
		if err := h.cache.HealthCheck(ctx); err != nil {
			h.log.Warn("redis health check failed", "error", err)
			services["redis"] = "unavailable"
		}
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "unavailable"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"services": services,
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
