package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PingFunc checks the database connection.
type PingFunc func(ctx context.Context) error

// HealthHandler reports process and database health.
type HealthHandler struct {
	ping PingFunc
	log  *zap.Logger
	now  func() time.Time
}

// NewHealthHandler creates a HealthHandler. A nil ping means the service runs
// without a database and reports it as disabled.
func NewHealthHandler(ping PingFunc, log *zap.Logger) *HealthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthHandler{ping: ping, log: log, now: time.Now}
}

// RegisterRoutes registers GET /health on router.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 when the database responds and 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status := fiber.StatusOK
	body := fiber.Map{
		"status":   "healthy",
		"time":     h.now().Format(time.RFC3339),
		"database": "disabled",
	}

	if h.ping != nil {
		if err := h.ping(c.UserContext()); err != nil {
			h.log.Warn("database ping failed", zap.Error(err))
			status = fiber.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = "down"
		} else {
			body["database"] = "up"
		}
	}
	return c.Status(status).JSON(body)
}
