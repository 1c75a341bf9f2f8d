package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tasks_api/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	_ "modernc.org/sqlite"
)

const connectTimeout = 5 * time.Second

// Connect opens a pgx pool and pings it.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected", "driver", "postgres")
	return pool, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id    TEXT PRIMARY KEY,
	title TEXT NOT NULL
);`

// OpenSQLite opens (or creates) the sqlite file at path and makes sure the
// tasks table exists. ":memory:" gives a private in-process database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer; also keeps a :memory: database on one connection
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create tasks table: %w", err)
	}

	logger.Info("database connected", "driver", "sqlite", "path", path)
	return sqlDB, nil
}

const neo4jTaskConstraint = `CREATE CONSTRAINT task_id IF NOT EXISTS FOR (t:Task) REQUIRE t.id IS UNIQUE`

// ConnectNeo4j creates a driver, verifies connectivity and makes sure the
// Task id uniqueness constraint exists.
func ConnectNeo4j(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	// ids are unique per label; concurrent CREATEs of the same id fail on commit
	_, err = neo4j.ExecuteQuery(verifyCtx, driver, neo4jTaskConstraint, nil, neo4j.EagerResultTransformer)
	if err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("create task id constraint: %w", err)
	}

	logger.Info("database connected", "driver", "neo4j", "uri", uri)
	return driver, nil
}
