package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/spf13/cobra"

	fiberadapter "github.com/lborres/rolegate/adapters/fiber"
	"github.com/lborres/rolegate/services"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the session, plan and event API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := fiber.New(fiber.Config{AppName: "rolegate"})
			app.Use(recover.New())
			app.Use(logger.New(logger.Config{
				Format:     "${time}|${status}|${latency}|${ip}|${method}|${path}\n",
				TimeFormat: "2006/01/02 15:04:05",
				TimeZone:   "Local",
			}))

			adapter := fiberadapter.New(app, a.gate, fiberadapter.Config{
				BasePath:     a.cfg.Server.BasePath,
				SecureCookie: a.cfg.Server.SecureCookie,
			})
			if err := adapter.RegisterRoutes(services.NewEndpointRegistry()); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			go func() {
				<-ctx.Done()
				if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
					a.log.Error("shutdown failed", "error", err)
				}
			}()

			a.log.Info("listening", "addr", a.cfg.Server.Addr, "storage", a.cfg.Storage.Backend, "users", a.cfg.Users.Source)
			return app.Listen(a.cfg.Server.Addr, fiber.ListenConfig{DisableStartupMessage: true})
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
