package main

import (
	"log"
	"log/slog"

	"github.com/nfrund/joinform/internal/app"
	"github.com/nfrund/joinform/internal/config"
	"github.com/nfrund/joinform/internal/logging"
	"github.com/nfrund/joinform/internal/server"
)

func main() {
	// config.New loads .env, so LOG_FORMAT and LOG_LEVEL are set afterwards.
	cfg := config.New()
	logging.New()

	s, err := server.New(cfg, app.Options{})
	if err != nil {
		log.Fatalf("Error creating server: %v", err)
	}

	if err := s.Start(cfg.GetServerAddr()); err != nil {
		slog.Error("Server stopped", "error", err)
		log.Fatal(err)
	}
}
