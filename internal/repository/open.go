package repository

import (
	"context"
	"fmt"

	"tasks_api/internal/config"
	"tasks_api/internal/db"
)

// Open connects to the backend selected by cfg.StoreDriver and returns an
// instrumented store.
func Open(ctx context.Context, cfg *config.Config) (TaskStore, error) {
	var store TaskStore
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = NewTaskRepository(pool)
	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = NewSQLiteTaskRepository(sqlDB)
	case config.DriverNeo4j:
		driver, err := db.ConnectNeo4j(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, err
		}
		store = NewNeo4jTaskRepository(driver)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return NewInstrumentedStore(store), nil
}
