package accounts

import (
	"context"
	"fmt"

	"github.com/nfrund/joinform/internal/config"
	"github.com/nfrund/joinform/internal/domain"
)

// NewStore creates the account store selected by the configuration.
func NewStore(ctx context.Context, cfg config.Provider) (domain.AccountStore, error) {
	switch cfg.GetStoreDriver() {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		store, err := OpenSQLite(cfg.GetSQLitePath())
		if err != nil {
			return nil, err
		}
		return store, nil
	case "surreal":
		store, err := ConnectSurreal(ctx, SurrealConfig{
			URL:       cfg.GetDBURL(),
			User:      cfg.GetDBUser(),
			Password:  cfg.GetDBPass(),
			Namespace: cfg.GetDBNs(),
			Database:  cfg.GetDBDb(),
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown account store driver: %s", cfg.GetStoreDriver())
	}
}
