package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/joinform/internal/handlers"
	"github.com/nfrund/joinform/internal/modules/join"
	"github.com/nfrund/joinform/web"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up the routes not owned by a module.
func (s *Server) RegisterRoutes() {
	s.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s.E.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, join.JoinPath)
	})
	s.E.GET("/health", handlers.HealthGet)
	s.E.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))
	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
}
