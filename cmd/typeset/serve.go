package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-typeset"
	renderhttp "github.com/goliatone/go-typeset/adapters/http"
	"github.com/goliatone/go-typeset/config"
)

// ServeCmd runs the HTTP render endpoint.
type ServeCmd struct {
	Host     string `help:"Listen host." default:"${host}" env:"TYPESET_HOST"`
	Port     string `help:"Listen port." default:"${port}" env:"PORT,TYPESET_PORT"`
	BasePath string `help:"Route for render requests." default:"${base_path}" env:"TYPESET_BASE_PATH"`
	BodyMB   int    `help:"Largest accepted request body in MiB." default:"64" env:"TYPESET_BODY_LIMIT_MB"`
}

// Run serves until interrupted.
func (c *ServeCmd) Run(cfg *config.Config) error {
	app, closer := newApp(cfg, c.BodyMB)
	defer closer.Close()
	logger := typeset.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	logger.Infof("typeset listening on %s%s", cfg.Server.Addr(), cfg.Server.BasePath)
	return app.Listen(cfg.Server.Addr())
}

func newApp(cfg *config.Config, bodyMB int) (*fiber.App, io.Closer) {
	if bodyMB <= 0 {
		bodyMB = 64
	}
	app := fiber.New(fiber.Config{
		AppName:               "typeset",
		BodyLimit:             bodyMB * 1024 * 1024,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	renderer, closer := newRenderer(cfg.Render)

	handler := renderhttp.NewHandler(renderhttp.Config{
		BasePath: cfg.Server.BasePath,
		Renderer: renderer,
		Logger:   typeset.Logger(),
	})
	handler.RegisterRoutes(app)
	return app, closer
}
