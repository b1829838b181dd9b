package server

import (
	"context"
	"fmt"
	"log/slog"
)

// bootModules registers every module with the injector, then boots them on
// the root group.
func (s *Server) bootModules(ctx context.Context) error {
	for _, m := range s.modules {
		if err := m.Register(s.Container.Injector); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	root := s.E.Group("")
	for _, m := range s.modules {
		if err := m.Boot(ctx, root, s.Container.Injector); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		slog.Debug("Module booted", "module", m.Name())
	}
	return nil
}

// shutdownModules stops the modules in reverse boot order.
func (s *Server) shutdownModules(ctx context.Context) {
	for idx := len(s.modules) - 1; idx >= 0; idx-- {
		m := s.modules[idx]
		if err := m.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
		}
	}
}
