// Package app wires the application services together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nfrund/joinform/internal/accounts"
	"github.com/nfrund/joinform/internal/config"
	"github.com/nfrund/joinform/internal/domain"
	"github.com/nfrund/joinform/internal/email"
	"github.com/nfrund/joinform/internal/membership"
	"github.com/nfrund/joinform/internal/metrics"
	"github.com/nfrund/joinform/internal/pubsub"
	"github.com/nfrund/joinform/internal/registration"
	"github.com/nfrund/joinform/internal/rendering"
	"github.com/nfrund/joinform/internal/siteconfig"
	"github.com/nfrund/joinform/web/src/templates/layouts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// Options controls how the container builds its services.
type Options struct {
	// Fs is the filesystem the site settings are read from.
	Fs afero.Fs
	// Registry receives the application metrics.
	Registry *prometheus.Registry
}

// Container is the injector plus the cleanup of the services it built.
type Container struct {
	do.Injector

	mu      sync.Mutex
	closers []func() error
}

func (c *Container) onClose(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, fn)
}

// Close releases the built services in reverse build order.
func (c *Container) Close() {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	for idx := len(closers) - 1; idx >= 0; idx-- {
		if err := closers[idx](); err != nil {
			slog.Error("Failed to close service", "error", err)
		}
	}
}

// New registers the core services. Services are built lazily on first use;
// ctx bounds the store connection.
func New(ctx context.Context, cfg config.Provider, opts Options) *Container {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	i := do.New()
	c := &Container{Injector: i}
	do.ProvideValue(i, cfg)
	do.ProvideValue(i, opts.Registry)

	do.Provide(i, func(i do.Injector) (*siteconfig.Store, error) {
		store := siteconfig.New(opts.Fs, cfg.GetSiteConfigPath())
		if err := store.Load(); err != nil {
			return nil, err
		}
		return store, nil
	})

	do.Provide(i, func(i do.Injector) (domain.AccountStore, error) {
		store, err := accounts.NewStore(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("account store: %w", err)
		}
		c.onClose(store.Close)
		slog.Info("Account store ready", "driver", cfg.GetStoreDriver())
		return store, nil
	})

	do.Provide(i, func(i do.Injector) (domain.EmailSender, error) {
		return email.NewEmailService(cfg)
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		bridge := pubsub.NewWatermillBridge()
		c.onClose(bridge.Close)
		return bridge, nil
	})

	do.Provide(i, func(i do.Injector) (*metrics.Metrics, error) {
		return metrics.New(do.MustInvoke[*prometheus.Registry](i)), nil
	})

	do.Provide(i, func(i do.Injector) (rendering.Renderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})

	do.Provide(i, func(i do.Injector) (*membership.Service, error) {
		return membership.NewService(
			do.MustInvoke[domain.AccountStore](i),
			do.MustInvoke[domain.EmailSender](i),
			do.MustInvoke[*pubsub.WatermillBridge](i),
			membership.Options{
				SiteName: layouts.SiteName,
				LoginURL: cfg.GetAppBaseURL() + "/login",
			},
		)
	})

	do.Provide(i, func(i do.Injector) (*registration.Service, error) {
		return registration.NewService(do.MustInvoke[*membership.Service](i), cfg.GetRegisteredPath()), nil
	})

	return c
}
