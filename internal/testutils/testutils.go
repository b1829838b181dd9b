// Package testutils holds helpers shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/nfrund/joinform/internal/config"
	"github.com/nfrund/joinform/internal/logging"
)

// ConfigForTests applies .env.test from the module root to the test's
// environment and returns the configuration read from it.
func ConfigForTests(t *testing.T) *config.Config {
	t.Helper()

	root, err := moduleRoot()
	if err != nil {
		t.Fatalf("locate module root: %v", err)
	}
	env, err := godotenv.Read(filepath.Join(root, ".env.test"))
	if err != nil {
		t.Fatalf("read .env.test: %v", err)
	}
	for key, value := range env {
		t.Setenv(key, value)
	}

	logging.New()
	return config.FromEnv()
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
