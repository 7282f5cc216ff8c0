package database

import (
	"fmt"

	"ai-quizzer/internal/logger"

	_ "github.com/godror/godror" // Oracle driver (cgo, ODPI-C)
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go)
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver for local runs and tests
)

const (
	DriverOracle = "oracle"
	DriverGodror = "godror"
	DriverSQLite = "sqlite"
)

func init() {
	// go-ora registers as "oracle", which sqlx does not know; it takes
	// :name placeholders like the other Oracle drivers.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// NewSQLXDB opens and pings a database for one of the supported drivers.
// Repositories write queries with ? placeholders and Rebind them.
func NewSQLXDB(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverOracle, DriverGodror, DriverSQLite:
	case "":
		driver = DriverOracle
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// A single connection keeps :memory: databases shared and avoids
		// SQLITE_BUSY on concurrent writers.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
		}
	}

	logger.Get().Info("Successfully connected to database", zap.String("driver", driver))
	return db, nil
}
