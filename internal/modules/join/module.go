// Package join is the module serving the self-service join form.
package join

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/joinform/internal/config"
	"github.com/nfrund/joinform/internal/handlers"
	"github.com/nfrund/joinform/internal/metrics"
	"github.com/nfrund/joinform/internal/middleware"
	"github.com/nfrund/joinform/internal/module"
	"github.com/nfrund/joinform/internal/registration"
	"github.com/nfrund/joinform/internal/rendering"
	"github.com/nfrund/joinform/internal/siteconfig"
	"github.com/samber/do/v2"
)

// Paths served by the module. The confirmation page path is configurable.
const (
	JoinPath   = "/join"
	FieldsPath = "/join/fields"
)

// Module registers the join form routes and keeps the site settings fresh.
type Module struct {
	module.BaseModule

	// Watch enables reloading the site settings file on change.
	Watch  bool
	cancel context.CancelFunc
}

// New creates the join module.
func New(watch bool) *Module {
	return &Module{Watch: watch}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "join"
}

// Register provides the join handler.
func (m *Module) Register(i do.Injector) error {
	do.Provide(i, func(i do.Injector) (*handlers.JoinHandler, error) {
		return handlers.NewJoinHandler(
			do.MustInvoke[*siteconfig.Store](i),
			do.MustInvoke[*registration.Service](i),
			do.MustInvoke[rendering.Renderer](i),
			do.MustInvoke[*metrics.Metrics](i),
			JoinPath,
		), nil
	})
	return nil
}

// Boot adds the routes and starts the settings watcher.
func (m *Module) Boot(ctx context.Context, router *echo.Group, i do.Injector) error {
	h, err := do.Invoke[*handlers.JoinHandler](i)
	if err != nil {
		return err
	}
	cfg := do.MustInvoke[config.Provider](i)

	router.GET(JoinPath, h.JoinGet)
	router.POST(JoinPath, h.JoinPost, middleware.RateLimiter(cfg.GetRateLimit()))
	router.GET(FieldsPath, h.FieldsGet)
	router.GET(cfg.GetRegisteredPath(), h.RegisteredGet)

	if m.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		m.cancel = cancel
		if err := do.MustInvoke[*siteconfig.Store](i).Watch(watchCtx); err != nil {
			cancel()
			return err
		}
	}

	slog.Info("Join module booted", "path", JoinPath)
	return nil
}

// Shutdown stops the settings watcher.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
