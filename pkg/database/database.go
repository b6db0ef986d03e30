package database

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"apluscharge_backend/pkg/config"
	"apluscharge_backend/pkg/logger"
)

// Open picks a backend from the connection string scheme: mongodb URLs go to
// MongoDB, everything else is treated as a PostgreSQL DSN.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (Store, error) {
	log = logger.OrNop(log)
	if !cfg.Configured() {
		return nil, fmt.Errorf("DATABASE_URL is not set: %w", ErrStoreUnavailable)
	}

	if isMongoURL(cfg.URL) {
		store, err := OpenMongo(ctx, cfg.URL, cfg.Name, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := OpenPostgres(cfg.URL, log)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func isMongoURL(url string) bool {
	return strings.HasPrefix(url, "mongodb://") || strings.HasPrefix(url, "mongodb+srv://")
}
