package server

import (
	"net/http"

	"inventory/internal/config"
	"inventory/internal/handlers"
	"inventory/internal/metrics"
	"inventory/internal/middleware"
	"inventory/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewApp builds the fiber application with middleware, the product API under
// /products and /api/v1/products, health, metrics and the browser UI.
func NewApp(cfg config.Config, log *zap.Logger, m *metrics.Metrics, products *handlers.ProductHandler, health *handlers.HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "inventory",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(log),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	if m != nil {
		app.Use(m.Middleware())
	}
	if limit := middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow); limit != nil {
		app.Use(limit)
	}

	health.RegisterRoutes(app)
	if m != nil {
		app.Get("/metrics", m.Handler())
	}

	products.RegisterRoutes(app)
	products.RegisterRoutes(app.Group("/api/v1"))

	// Registered last so API routes win; unknown paths fall through to 404.
	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(web.Files),
		Index: "index.html",
	}))

	return app
}
