package server

import (
	"context"
	"errors"
	"net"

	"inventory/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Run binds the listener on start and shuts fiber down on stop, bounded by
// the configured shutdown timeout.
func Run(lc fx.Lifecycle, app *fiber.App, cfg config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.AppPort)
			if err != nil {
				return err
			}
			log.Info("http server listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := app.Listener(ln); err != nil && !errors.Is(err, net.ErrClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down http server")
			return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
		},
	})
}
