package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"collablearn/internal/config"
	"collablearn/internal/database/migration"
	"collablearn/internal/database/seeder"
	"collablearn/internal/delivery/http/middleware"
	"collablearn/internal/delivery/http/routes"
	"collablearn/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.RunMigrations {
		migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer migCancel()
		r := migration.Runner{Dir: "migrations"}
		if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	if cfg.Database.RunSeeders {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), time.Minute)
		defer seedCancel()
		if err := seeder.DefaultRunner().Run(seedCtx, c.DB); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("seeding failed: %w", err)
		}
	}

	go c.Hub.Run()
	ws.SetDefaultHub(c.Hub)

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	routes.NewRegistry(cfg, c.DB, c.Cache, c.Hub, c.Logger).Register(f)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	if f == nil {
		return
	}

	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
