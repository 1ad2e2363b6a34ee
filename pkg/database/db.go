package database

import (
	"context"
	"database/sql"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
)

// DB is the slice of sqlx that the repositories consume
type DB interface {
	Close() error
	DriverName() string
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	Ping() error
	PingContext(ctx context.Context) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	Stats() sql.DBStats
	Unsafe() *sqlx.DB
}

type DatabaseInstance struct {
	*sqlx.DB
	logger ectologger.Logger
}

func NewDatabaseInstance(db *sqlx.DB, logger ectologger.Logger) DB {
	return &DatabaseInstance{
		DB:     db,
		logger: logger,
	}
}
