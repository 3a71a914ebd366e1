package app

import (
	"context"
	"fmt"

	"github.com/99minutos/dashboard-workspace/internal/core/ports"
	mongodb "github.com/99minutos/dashboard-workspace/internal/infrastructure/db/mongo"
	"github.com/99minutos/dashboard-workspace/internal/infrastructure/db/sqlite"
	"github.com/99minutos/dashboard-workspace/internal/infrastructure/http/handlers"
	"github.com/99minutos/dashboard-workspace/internal/pkg/config"
)

const appName = "dashboard-workspace"

// stores is the persistence selected by STORE_DRIVER.
type stores struct {
	driver     string
	dashboards ports.DashboardStore
	users      ports.AuthRepository
	check      handlers.Check
	ensure     func(ctx context.Context) error
	close      func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return &stores{
			driver:     config.DriverSQLite,
			dashboards: sqlite.NewDashboardRepository(db),
			users:      sqlite.NewAuthRepository(db),
			check:      handlers.SQLCheck(db),
			ensure:     func(ctx context.Context) error { return sqlite.Migrate(ctx, db) },
			close:      func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  appName,
		})
		if err != nil {
			return nil, err
		}
		return &stores{
			driver:     config.DriverMongo,
			dashboards: mongodb.NewDashboardRepository(db),
			users:      mongodb.NewAuthRepository(db),
			check:      handlers.MongoCheck(db),
			ensure:     func(ctx context.Context) error { return mongodb.EnsureIndexes(ctx, db) },
			close:      client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// EnsureSchema creates the indexes or tables of the configured store and exits.
func EnsureSchema(ctx context.Context, cfg *config.Config) (string, error) {
	s, err := openStores(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer s.close(context.WithoutCancel(ctx))

	if err := s.ensure(ctx); err != nil {
		return s.driver, err
	}
	return s.driver, nil
}
