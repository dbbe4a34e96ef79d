package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// buildMySQLDSN constructs a MySQL DSN from the storage config.
func buildMySQLDSN(cfg Config, password string) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	// Format: user:password@tcp(host:port)/dbname?parseTime=true
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		cfg.Username, password, cfg.Host, port, cfg.Database,
	)
	if cfg.SSLMode == "require" {
		dsn += "&tls=true"
	}
	return dsn
}

// buildPostgresDSN constructs a Postgres connection string from the storage config.
func buildPostgresDSN(cfg Config, password string) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, port, cfg.Username, password, cfg.Database, sslMode,
	)
}

func openRemoteSQL(driverName, dsn string, d dialect) (*SQLStore, error) {
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}

	s, err := newSQLStore(conn, d)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// OpenMySQL connects to a MySQL server and prepares the notes schema.
func OpenMySQL(cfg Config, password string) (*SQLStore, error) {
	return openRemoteSQL("mysql", buildMySQLDSN(cfg, password), mysqlDialect)
}

// OpenPostgres connects to a Postgres server and prepares the notes schema.
func OpenPostgres(cfg Config, password string) (*SQLStore, error) {
	return openRemoteSQL("postgres", buildPostgresDSN(cfg, password), postgresDialect)
}
