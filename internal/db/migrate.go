package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net"
	"strconv"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// ConnConfig converts go-pg options to a pgx config used by goose.
func ConnConfig(opt *pg.Options) (pgx.ConnConfig, error) {
	host, portStr, err := net.SplitHostPort(opt.Addr)
	if err != nil {
		return pgx.ConnConfig{}, fmt.Errorf("parse database addr %q: %w", opt.Addr, err)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return pgx.ConnConfig{}, fmt.Errorf("parse database port %q: %w", portStr, err)
	}

	return pgx.ConnConfig{
		Host:      host,
		Port:      uint16(port),
		Database:  opt.Database,
		User:      opt.User,
		Password:  opt.Password,
		TLSConfig: opt.TLSConfig,
	}, nil
}

func openMigrationDB(ctx context.Context, config pgx.ConnConfig) (*sql.DB, error) {
	sqldb := stdlib.OpenDB(config)
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return sqldb, nil
}

// Migrate applies all embedded migrations.
func Migrate(ctx context.Context, config pgx.ConnConfig) error {
	sqldb, err := openMigrationDB(ctx, config)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := goose.UpContext(ctx, sqldb, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// MigrationStatus prints the state of every migration through goose's logger.
func MigrationStatus(ctx context.Context, config pgx.ConnConfig) error {
	sqldb, err := openMigrationDB(ctx, config)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := goose.StatusContext(ctx, sqldb, migrationsDir); err != nil {
		return fmt.Errorf("goose status: %w", err)
	}

	return nil
}
