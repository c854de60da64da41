// Package open builds the storage backend named in the configuration.
package open

import (
	"context"

	"github.com/aanand-mishra/course-api/internal/config"
	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/aanand-mishra/course-api/internal/storage/memory"
	"github.com/aanand-mishra/course-api/internal/storage/mongodb"
	"github.com/aanand-mishra/course-api/internal/storage/sqlite"
	"github.com/pkg/errors"
)

func Storage(ctx context.Context, cfg config.Storage) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverMongoDB:
		store, err := mongodb.New(ctx, cfg.URI, cfg.Database, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Path, storage.Names...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, errors.Errorf("unknown storage driver '%s'", cfg.Driver)
	}
}
