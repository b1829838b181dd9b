package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/joinform/internal/app"
	"github.com/nfrund/joinform/internal/config"
	appmiddleware "github.com/nfrund/joinform/internal/middleware"
	"github.com/nfrund/joinform/internal/module"
	"github.com/nfrund/joinform/internal/rendering"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E         *echo.Echo
	Cfg       config.Provider
	Container *app.Container
	Registry  *prometheus.Registry

	modules []module.Module
	cancel  context.CancelFunc
}

// New builds the echo instance, registers the modules and boots them.
// modules defaults to AppModules(true).
func New(cfg config.Provider, opts app.Options, modules ...module.Module) (*Server, error) {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if len(modules) == 0 {
		modules = AppModules(true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	container := app.New(ctx, cfg, opts)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = do.MustInvoke[rendering.Renderer](container.Injector).(echo.Renderer)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(appmiddleware.RequestLog())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	setupErrorHandling(e)

	s := &Server{
		E:         e,
		Cfg:       cfg,
		Container: container,
		Registry:  opts.Registry,
		modules:   modules,
		cancel:    cancel,
	}
	s.RegisterRoutes()

	if err := s.bootModules(ctx); err != nil {
		cancel()
		container.Close()
		return nil, fmt.Errorf("boot modules: %w", err)
	}
	slog.Info("Server initialised", "modules", len(modules))
	return s, nil
}

// Close shuts the modules down and releases the services.
func (s *Server) Close(ctx context.Context) {
	s.shutdownModules(ctx)
	s.cancel()
	s.Container.Close()
}
